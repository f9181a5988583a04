package dto

// RoomPlayer 大厅列表里展示的一个玩家
type RoomPlayer struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Online   bool   `json:"online"`
}

// RoomInfo 大厅里的一个房间条目
type RoomInfo struct {
	RoomID      string       `json:"roomId"`
	Name        string       `json:"name"`
	HostUserID  string       `json:"hostUserId"`
	Status      string       `json:"status"`
	HasPassword bool         `json:"hasPassword"`
	PlayerCount int          `json:"playerCount"`
	MaxPlayers  int          `json:"maxPlayers"`
	Players     []RoomPlayer `json:"players"`
}

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id" binding:"required"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomId" binding:"required"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

type GuestLoginRequest struct {
	Name string `json:"name"`
}

type GuestLoginResponse struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
}
