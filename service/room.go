package service

import (
	"fmt"
	"strings"
	"time"

	"go-settlers/dto"
	"go-settlers/entities"
	"go-settlers/game"
	"go-settlers/repository"
	"go-settlers/ws"

	"github.com/google/uuid"
)

// CreateRoom 建一个新房间：内存里挂引擎，Redis 里挂注册信息
func CreateRoom(hostUserID string, params dto.CreateRoomRequest) (string, error) {
	// 生成唯一 Room ID（例如 8位）
	uuidStr := uuid.New().String()
	roomID := strings.ReplaceAll(uuidStr, "-", "")[:8]

	room := game.NewRoom(roomID, params.Name, params.Password, NewSeed())
	ws.RegisterRoom(room)

	err := ws.SetRoomMeta(repository.Rdb, entities.RoomMeta{
		RoomID:      roomID,
		Name:        params.Name,
		HostUserID:  hostUserID,
		HasPassword: params.Password != "",
		CreatedAt:   time.Now().Unix(),
	})
	if err != nil {
		ws.UnregisterRoom(roomID)
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}
	return roomID, nil
}

// DeleteRoom 房主删房：断开所有连接并清掉 Redis 里的注册信息
func DeleteRoom(userID string, params dto.DeleteRoomRequest) error {
	meta, err := ws.GetRoomMeta(repository.Rdb, params.RoomID)
	if err != nil {
		return err
	}
	if meta.HostUserID != userID {
		return fmt.Errorf("%w: 只有房主可以解散房间", game.ErrRule)
	}
	ws.UnregisterRoom(params.RoomID)
	return ws.DeleteRoomMeta(repository.Rdb, params.RoomID)
}

// GetRoomList 大厅列表，直接从内存引擎拼
func GetRoomList() ([]dto.RoomInfo, error) {
	rooms := []dto.RoomInfo{}
	for _, roomID := range ws.RoomIDs() {
		room, ok := ws.ManagerOf(roomID)
		if !ok {
			continue
		}
		meta, err := ws.GetRoomMeta(repository.Rdb, roomID)
		if err != nil {
			continue
		}

		conns := ws.RoomConns(roomID)
		online := make(map[string]bool, len(conns))
		for _, pc := range conns {
			online[pc.PlayerID] = pc.Online
		}
		players := make([]dto.RoomPlayer, 0, len(room.Players))
		for _, p := range room.Players {
			players = append(players, dto.RoomPlayer{
				PlayerID: p.ID,
				Name:     p.Name,
				Color:    string(p.Color),
				Online:   online[p.ID],
			})
		}

		rooms = append(rooms, dto.RoomInfo{
			RoomID:      roomID,
			Name:        meta.Name,
			HostUserID:  meta.HostUserID,
			Status:      string(room.Status),
			HasPassword: meta.HasPassword,
			PlayerCount: len(room.Players),
			MaxPlayers:  game.MaxPlayers,
			Players:     players,
		})
	}
	return rooms, nil
}

// GetRoomState 单个房间的完整快照
func GetRoomState(roomID string) (*game.GameState, error) {
	state, ok := ws.SnapshotOf(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: 房间不存在", game.ErrNotFound)
	}
	return state, nil
}

// GetOnlinePlayer 全站在线人数
func GetOnlinePlayer() (int, error) {
	onlinePlayer := 0
	for _, roomID := range ws.RoomIDs() {
		for _, player := range ws.RoomConns(roomID) {
			if player.Online {
				onlinePlayer++
			}
		}
	}
	return onlinePlayer, nil
}
