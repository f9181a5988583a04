package ws

import "go-settlers/dto"

var _ dto.ConnInterface = (*VirtualConn)(nil) // 编译期断言实现

// VirtualConn 离线占位连接，测试和断线玩家共用。
// 写进来的消息留在 Sent 里，方便测试断言。
type VirtualConn struct {
	PlayerID string
	RoomID   string
	Sent     [][]byte
}

func (v *VirtualConn) WriteMessage(messageType int, data []byte) error {
	v.Sent = append(v.Sent, data)
	return nil
}

func (v *VirtualConn) Close() error {
	return nil
}
