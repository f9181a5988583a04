package ws

import (
	"fmt"
	"log"

	"go-settlers/dto"
	"go-settlers/game"
	"go-settlers/utils"

	"github.com/gorilla/websocket"
)

var colorOrder = []game.PlayerColor{
	game.ColorRed, game.ColorBlue, game.ColorOrange, game.ColorWhite, game.ColorGreen,
}

var colorNames = []string{"red", "blue", "orange", "white", "green"}

// pickColor 前端没选颜色时按顺序补一个空闲的，非法颜色也当没选
func pickColor(room *game.Room, want string) game.PlayerColor {
	if utils.StringInSlice(want, colorNames) {
		return game.PlayerColor(want)
	}
	used := make(map[game.PlayerColor]bool)
	for _, p := range room.Players {
		used[p.Color] = true
	}
	for _, c := range colorOrder {
		if !used[c] {
			return c
		}
	}
	return colorOrder[0]
}

// 校验身份并把玩家接入房间：老玩家换绑连接，新玩家走大厅加入
func validateAndJoinRoom(roomID, userID, name, color, password string, conn *websocket.Conn) (*dto.PlayerConn, error) {
	roomLock.Lock()
	defer roomLock.Unlock()

	room, ok := Managers[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: 房间不存在", game.ErrNotFound)
	}
	if room.IsBanned(userID) {
		return nil, fmt.Errorf("%w: 你已被请出该房间", game.ErrRule)
	}
	if room.Password != "" && password != room.Password {
		return nil, fmt.Errorf("%w: 房间密码错误", game.ErrRule)
	}

	playerID := newConnID()

	if room.FindPlayerByUserID(userID) != nil {
		// 重连：引擎把旧身份换绑到新连接 ID
		room.ReconnectPlayer(userID, playerID)
		for i, pc := range Rooms[roomID] {
			if pc.UserID == userID {
				pc.Conn.Close()
				Rooms[roomID][i].PlayerID = playerID
				Rooms[roomID][i].Conn = &dto.RealConn{Conn: conn}
				Rooms[roomID][i].Online = true
				joined := Rooms[roomID][i]
				return &joined, nil
			}
		}
		// 连接表里没有（之前彻底断开过），补一条
		joined := dto.PlayerConn{PlayerID: playerID, UserID: userID, Name: name, Conn: &dto.RealConn{Conn: conn}, Online: true}
		Rooms[roomID] = append(Rooms[roomID], joined)
		return &joined, nil
	}

	if err := room.AddPlayer(playerID, userID, name, pickColor(room, color)); err != nil {
		return nil, err
	}
	joined := dto.PlayerConn{PlayerID: playerID, UserID: userID, Name: name, Conn: &dto.RealConn{Conn: conn}, Online: true}
	Rooms[roomID] = append(Rooms[roomID], joined)
	log.Printf("玩家 %s 加入房间 %s\n", name, roomID)
	return &joined, nil
}

// 玩家断开连接后，从连接表移除并通知引擎
func cleanupOnDisconnect(roomID, playerID string, conn *websocket.Conn) {
	roomLock.Lock()
	defer roomLock.Unlock()

	newList := []dto.PlayerConn{}
	for _, pc := range Rooms[roomID] {
		if pc.PlayerID != playerID {
			newList = append(newList, pc)
		}
	}
	Rooms[roomID] = newList

	room, ok := Managers[roomID]
	if !ok {
		return
	}
	room.DisconnectPlayer(playerID)
	broadcastRoomState(roomID)
	log.Printf("玩家 %s 离开房间 %s\n", playerID, roomID)
}
