package game

// GameState 推给前端的房间完整视图，引擎每次操作后整体广播
type GameState struct {
	RoomID              string        `json:"roomId"`
	Name                string        `json:"name"`
	Status              GameStatus    `json:"status"`
	Players             []*Player     `json:"players"`
	HostID              string        `json:"hostId"`
	ActivePlayerID      string        `json:"activePlayerId"`
	SubPhase            SubPhase      `json:"subPhase"`
	Tiles               []*Tile       `json:"tiles"`
	Buildings           []*Building   `json:"buildings"`
	StartRolls          []*StartRoll  `json:"startRolls,omitempty"`
	TradeOffer          *TradeOffer   `json:"tradeOffer,omitempty"`
	LongestRoadPlayerID string        `json:"longestRoadPlayerId"`
	LargestArmyPlayerID string        `json:"largestArmyPlayerId"`
	MonopolistID        string        `json:"monopolistId"`
	WinnerID            string        `json:"winnerId"`
	HasRolled           bool          `json:"hasRolled"`
	DeckRemaining       int           `json:"deckRemaining"`
}

// Snapshot 导出当前房间状态。切片重新装箱避免调用方改到内部切片头，
// 元素仍指向引擎内部对象，只能在房间锁内读取、序列化后再发出去。
func (r *Room) Snapshot() *GameState {
	s := &GameState{
		RoomID:              r.ID,
		Name:                r.Name,
		Status:              r.Status,
		Players:             append([]*Player(nil), r.Players...),
		HostID:              r.HostID,
		ActivePlayerID:      r.ActivePlayerID,
		SubPhase:            r.SubPhase,
		Buildings:           append([]*Building(nil), r.Buildings...),
		StartRolls:          append([]*StartRoll(nil), r.StartRolls...),
		TradeOffer:          r.TradeOffer,
		LongestRoadPlayerID: r.LongestRoadPlayerID,
		LargestArmyPlayerID: r.LargestArmyPlayerID,
		MonopolistID:        r.MonopolistID,
		WinnerID:            r.WinnerID,
		HasRolled:           r.hasRolled,
		DeckRemaining:       len(r.deck),
	}
	if r.Board != nil {
		s.Tiles = append([]*Tile(nil), r.Board.Tiles...)
	}
	return s
}
