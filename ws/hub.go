package ws

import (
	"encoding/json"
	"log"
	"sync"

	"go-settlers/dto"
	"go-settlers/game"

	"github.com/gorilla/websocket"
)

// Rooms 房间内的所有连接；Managers 每个房间的对局引擎。
// 两张表都只在持有 roomLock 时读写，引擎的命令因此天然串行。
var (
	Rooms    = make(map[string][]dto.PlayerConn)
	Managers = make(map[string]*game.Room)
	roomLock sync.Mutex
)

// RegisterRoom 大厅创建房间后挂进连接表和引擎表
func RegisterRoom(room *game.Room) {
	roomLock.Lock()
	defer roomLock.Unlock()
	Rooms[room.ID] = []dto.PlayerConn{}
	Managers[room.ID] = room
}

// UnregisterRoom 摘除房间并断开所有连接
func UnregisterRoom(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	for _, pc := range Rooms[roomID] {
		pc.Conn.Close()
	}
	delete(Rooms, roomID)
	delete(Managers, roomID)
}

// 构建一条统一格式的消息（type + data）
func buildMessage(msgType string, data map[string]interface{}) []byte {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["type"] = msgType
	msg, _ := json.Marshal(data)
	return msg
}

// sendTo 给单个连接发消息，失败只记日志，由读循环负责清理
func sendTo(conn dto.ConnInterface, msg []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("发送消息失败:", err)
	}
}

// sendError 把引擎拒绝的原因回给发起操作的玩家
func sendError(conn dto.ConnInterface, err error) {
	sendTo(conn, buildMessage("error", map[string]interface{}{
		"message": err.Error(),
	}))
}

// broadcastRaw 广播一条原始消息给房间内所有玩家（调用方需持有 roomLock）
func broadcastRaw(roomID string, msg []byte) {
	for _, pc := range Rooms[roomID] {
		if !pc.Online {
			continue
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Println("广播失败:", pc.PlayerID, err)
		}
	}
}

// broadcastRoomState 把引擎快照整体推给房间内所有玩家
// （调用方需持有 roomLock）
func broadcastRoomState(roomID string) {
	room, ok := Managers[roomID]
	if !ok {
		return
	}
	data, err := json.Marshal(map[string]interface{}{
		"type":  "sync",
		"state": room.Snapshot(),
	})
	if err != nil {
		log.Println("❌ 快照序列化失败:", err)
		return
	}
	broadcastRaw(roomID, data)
}

// BroadcastRoomState 带锁版本，给大厅 service 用
func BroadcastRoomState(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	broadcastRoomState(roomID)
}

// 获取房间中玩家数量
func getRoomPlayerCount(roomID string) int {
	roomLock.Lock()
	defer roomLock.Unlock()
	return len(Rooms[roomID])
}

// RoomConns 导出当前连接列表的副本，大厅列表接口用
func RoomConns(roomID string) []dto.PlayerConn {
	roomLock.Lock()
	defer roomLock.Unlock()
	return append([]dto.PlayerConn(nil), Rooms[roomID]...)
}

// RoomIDs 当前登记过的所有房间号
func RoomIDs() []string {
	roomLock.Lock()
	defer roomLock.Unlock()
	ids := make([]string, 0, len(Rooms))
	for id := range Rooms {
		ids = append(ids, id)
	}
	return ids
}

// ManagerOf 取房间引擎
func ManagerOf(roomID string) (*game.Room, bool) {
	roomLock.Lock()
	defer roomLock.Unlock()
	room, ok := Managers[roomID]
	return room, ok
}

// SnapshotOf 在锁内取房间快照，给 REST 接口用
func SnapshotOf(roomID string) (*game.GameState, bool) {
	roomLock.Lock()
	defer roomLock.Unlock()
	room, ok := Managers[roomID]
	if !ok {
		return nil, false
	}
	return room.Snapshot(), true
}
