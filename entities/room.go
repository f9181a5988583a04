package entities

// RoomMeta 写进 Redis 的房间注册信息（room:{id}:info）。
// 对局本体常驻内存，这里只存大厅展示和重启恢复用的元数据。
type RoomMeta struct {
	RoomID      string `json:"roomId"`
	Name        string `json:"name"`
	HostUserID  string `json:"hostUserId"`
	HasPassword bool   `json:"hasPassword"`
	CreatedAt   int64  `json:"createdAt"`
}

// GameRecord 一局结束后的战绩存档
type GameRecord struct {
	RoomID     string   `json:"roomId"`
	RoomName   string   `json:"roomName"`
	WinnerName string   `json:"winnerName"`
	Players    []string `json:"players"`
	FinishedAt int64    `json:"finishedAt"`
}
