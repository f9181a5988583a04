package dto

import "github.com/gorilla/websocket"

// ConnInterface 抽象出可写连接，方便用虚拟连接做测试和离线玩家
type ConnInterface interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type RealConn struct {
	*websocket.Conn
}

func (r *RealConn) WriteMessage(messageType int, data []byte) error {
	return r.Conn.WriteMessage(messageType, data)
}

func (r *RealConn) Close() error {
	return r.Conn.Close()
}

// PlayerConn 房间内的一个玩家连接
type PlayerConn struct {
	PlayerID string
	UserID   string
	Name     string
	Conn     ConnInterface
	Online   bool
}

// --- WebSocket 消息载荷（mapstructure 解码） ---

// BuildPayload 放置/升级/破坏/修复类消息共用的坐标载荷
type BuildPayload struct {
	Q           int `json:"q"`
	R           int `json:"r"`
	VertexIndex int `json:"vertexIndex"`
	EdgeIndex   int `json:"edgeIndex"`
}

type MoveRobberPayload struct {
	Q int `json:"q"`
	R int `json:"r"`
}

type RobPayload struct {
	TargetID string `json:"targetId"`
}

// PlayCardPayload Resource 只有商贾卡用到（征收的目标资源）
type PlayCardPayload struct {
	Card     string `json:"card"`
	Resource string `json:"resource"`
}

type TraderPickPayload struct {
	Resource string `json:"resource"`
}

type BankTradePayload struct {
	Offer map[string]int `json:"offer"`
}

type BlackMarketPayload struct {
	Resource string `json:"resource"`
}

type TradeCreatePayload struct {
	Give map[string]int `json:"give"`
	Want map[string]int `json:"want"`
}

type TradeActionPayload struct {
	OfferID    string `json:"offerId"`
	AcceptorID string `json:"acceptorId"`
}

type BanPayload struct {
	TargetID string `json:"targetId"`
}
