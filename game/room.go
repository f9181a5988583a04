package game

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// 房间规模与胜利条件
const (
	MinPlayers   = 3
	MaxPlayers   = 5
	WinThreshold = 10
	// 开局每人发的金币
	startingGold = 7
)

// Room 一个对局的聚合根。引擎假定同一房间的命令被上层串行投递，
// 内部不加锁；每个公开命令要么完整生效要么完整拒绝。
type Room struct {
	ID       string
	Name     string
	Password string

	Board     *Board
	Players   []*Player
	Buildings []*Building

	Status         GameStatus
	ActivePlayerID string
	HostID         string
	SubPhase       SubPhase
	SetupTurnIndex int

	TradeOffer *TradeOffer
	StartRolls []*StartRoll

	WinnerID            string
	LongestRoadPlayerID string
	LargestArmyPlayerID string
	MonopolistID        string // 卡特尔持有者，回合转回时失效

	deck      []DevCardType
	hasRolled bool
	banned    map[string]struct{}
	rng       *rand.Rand

	// 建筑按规范顶点/边 ID 索引，建筑从不删除所以索引不会失效
	buildingAtVertex map[int]*Building
	buildingAtEdge   map[int]*Building
}

// NewRoom 创建房间。种子显式注入，测试可以复现整局的发牌和掷骰。
func NewRoom(id, name, password string, seed uint64) *Room {
	rng := rand.New(rand.NewSource(seed))
	r := &Room{
		ID:               id,
		Name:             name,
		Password:         password,
		Status:           StatusLobby,
		SubPhase:         waitingPhase(),
		banned:           map[string]struct{}{},
		rng:              rng,
		buildingAtVertex: map[int]*Building{},
		buildingAtEdge:   map[int]*Building{},
	}
	r.Board = generateBoard(2, rng)
	r.deck = newDeck(false, rng)
	return r
}

// --- 玩家管理 ---

// AddPlayer 仅限大厅阶段加入，名字（不分大小写）与颜色都必须唯一。
// 第一个进入的玩家成为房主。
func (r *Room) AddPlayer(id, userID, name string, color PlayerColor) error {
	if r.Status != StatusLobby {
		return ruleErr("游戏已开始，无法加入")
	}
	if len(r.Players) >= MaxPlayers {
		return ruleErr("房间已满（最多 %d 人）", MaxPlayers)
	}
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, name) {
			return conflictErr("名字 %s 已被占用", name)
		}
		if p.Color == color {
			return conflictErr("颜色 %s 已被占用", color)
		}
	}
	r.Players = append(r.Players, newPlayer(id, userID, name, color))
	if r.HostID == "" {
		r.HostID = id
	}
	return nil
}

func (r *Room) RemovePlayer(id string) {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.Players = kept
}

// DisconnectPlayer 大厅内直接移除；对局中只打断线标记，等待重连。
// 返回 true 表示玩家已被移除。
func (r *Room) DisconnectPlayer(id string) bool {
	p := r.findPlayer(id)
	if p == nil {
		return false
	}
	if r.Status == StatusLobby {
		r.RemovePlayer(id)
		return true
	}
	p.Disconnected = true
	return false
}

// ReconnectPlayer 用 userID 找回原玩家并把所有身份引用换绑到新连接 ID，
// 建筑、报价、回合状态全部保持连续。
func (r *Room) ReconnectPlayer(userID, newID string) bool {
	p := r.FindPlayerByUserID(userID)
	if p == nil {
		return false
	}
	oldID := p.ID
	p.ID = newID
	p.Disconnected = false

	remap := func(id *string) {
		if *id == oldID {
			*id = newID
		}
	}
	remap(&r.HostID)
	remap(&r.ActivePlayerID)
	remap(&r.WinnerID)
	remap(&r.LongestRoadPlayerID)
	remap(&r.LargestArmyPlayerID)
	remap(&r.MonopolistID)
	for i := range r.SubPhase.Candidates {
		remap(&r.SubPhase.Candidates[i])
	}

	for _, b := range r.Buildings {
		remap(&b.OwnerID)
		if b.OriginalOwnerID != "" {
			remap(&b.OriginalOwnerID)
		}
	}
	if r.TradeOffer != nil {
		remap(&r.TradeOffer.OffererID)
		for i := range r.TradeOffer.Acceptors {
			remap(&r.TradeOffer.Acceptors[i])
		}
	}
	for _, sr := range r.StartRolls {
		remap(&sr.PlayerID)
	}
	log.Printf("🔄 玩家 %s 重连成功（%s → %s）\n", p.Name, oldID, newID)
	return true
}

func (r *Room) FindPlayerByUserID(userID string) *Player {
	for _, p := range r.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// BanPlayer 房主踢人并拉黑，被踢玩家若正在行动则回合回到首位玩家
func (r *Room) BanPlayer(requesterID, targetID string) (string, error) {
	if requesterID != r.HostID {
		return "", ruleErr("只有房主可以踢人")
	}
	if targetID == r.HostID {
		return "", ruleErr("不能踢自己")
	}
	target := r.findPlayer(targetID)
	if target == nil {
		return "", notFoundErr("玩家不存在")
	}
	r.banned[targetID] = struct{}{}
	if target.UserID != "" {
		r.banned[target.UserID] = struct{}{} // 换连接也挡得住
	}
	r.RemovePlayer(targetID)
	if r.ActivePlayerID == targetID && len(r.Players) > 0 {
		r.ActivePlayerID = r.Players[0].ID
		r.SubPhase = waitingPhase()
	}
	return target.Name, nil
}

func (r *Room) IsBanned(id string) bool {
	_, ok := r.banned[id]
	return ok
}

func (r *Room) IsEmpty() bool { return len(r.Players) == 0 }

// --- 开局流程 ---

// StartGame 房主开始游戏，3-5 人。5 人局重新生成大地图和 1.5 倍牌堆。
func (r *Room) StartGame(requesterID string) error {
	if requesterID != r.HostID {
		return ruleErr("只有房主可以开始游戏")
	}
	if r.Status != StatusLobby {
		return ruleErr("游戏已经开始")
	}
	if len(r.Players) < MinPlayers || len(r.Players) > MaxPlayers {
		return ruleErr("需要 %d-%d 名玩家才能开始", MinPlayers, MaxPlayers)
	}

	if len(r.Players) == MaxPlayers {
		r.Board = generateBoard(3, r.rng)
		r.deck = newDeck(true, r.rng)
	}

	r.Status = StatusRollingForStart
	r.StartRolls = make([]*StartRoll, 0, len(r.Players))
	for _, p := range r.Players {
		r.StartRolls = append(r.StartRolls, &StartRoll{PlayerID: p.ID})
	}
	r.ActivePlayerID = r.Players[0].ID // 房主先掷
	return nil
}

// StartRollResult 开局掷骰的结果，传输层据此播报
type StartRollResult struct {
	PlayerID string
	Die1     int
	Die2     int
	Total    int
	Finished bool     // 全员掷完且无平局，进入铺设阶段
	Tied     []string // 需要重掷的平局玩家
}

// RollStartDice 每人按顺序掷一次；最高点平局时只有平局子集重掷，
// 其他人的结果保留。全部分出高下后按点数降序重排座次并发起始金币。
func (r *Room) RollStartDice(playerID string) (*StartRollResult, error) {
	if r.Status != StatusRollingForStart {
		return nil, ruleErr("现在不是掷开局骰子的时候")
	}
	if r.ActivePlayerID != playerID {
		return nil, ruleErr("还没轮到你")
	}
	entry := r.startRollOf(playerID)
	if entry == nil {
		return nil, notFoundErr("你不在掷骰名单里")
	}
	if entry.Roll != nil {
		return nil, conflictErr("你已经掷过了")
	}

	d1 := r.rng.Intn(6) + 1
	d2 := r.rng.Intn(6) + 1
	total := d1 + d2
	entry.Roll = &total
	result := &StartRollResult{PlayerID: playerID, Die1: d1, Die2: d2, Total: total}

	// 还有人没掷：把回合交给下一个未掷的玩家
	for _, sr := range r.StartRolls {
		if sr.Roll == nil {
			r.ActivePlayerID = r.nextUnrolled(playerID)
			return result, nil
		}
	}

	// 全员掷完，找最高点
	maxRoll := -1
	for _, sr := range r.StartRolls {
		if *sr.Roll > maxRoll {
			maxRoll = *sr.Roll
		}
	}
	var top []*StartRoll
	for _, sr := range r.StartRolls {
		if *sr.Roll == maxRoll {
			top = append(top, sr)
		}
	}

	if len(top) > 1 {
		// 平局：只清掉平局玩家的结果让他们重掷
		for _, sr := range top {
			sr.Roll = nil
			result.Tied = append(result.Tied, sr.PlayerID)
		}
		r.ActivePlayerID = top[0].PlayerID
		return result, nil
	}

	// 按点数降序重排座次
	ordered := make([]*Player, 0, len(r.Players))
	rolls := append([]*StartRoll(nil), r.StartRolls...)
	for len(rolls) > 0 {
		best := 0
		for i, sr := range rolls {
			if *sr.Roll > *rolls[best].Roll {
				best = i
			}
		}
		if p := r.findPlayer(rolls[best].PlayerID); p != nil {
			ordered = append(ordered, p)
		}
		rolls = append(rolls[:best], rolls[best+1:]...)
	}
	r.Players = ordered

	for _, p := range r.Players {
		p.Resources[ResourceGold] = startingGold
	}
	r.Status = StatusSetupRound1
	r.SetupTurnIndex = 0
	r.ActivePlayerID = r.Players[0].ID
	r.SubPhase = settlementPhase()
	r.StartRolls = nil
	result.Finished = true
	return result, nil
}

func (r *Room) startRollOf(playerID string) *StartRoll {
	for _, sr := range r.StartRolls {
		if sr.PlayerID == playerID {
			return sr
		}
	}
	return nil
}

func (r *Room) nextUnrolled(afterID string) string {
	idx := r.playerIndex(afterID)
	for i := 1; i <= len(r.Players); i++ {
		p := r.Players[(idx+i)%len(r.Players)]
		if sr := r.startRollOf(p.ID); sr != nil && sr.Roll == nil {
			return p.ID
		}
	}
	return afterID
}

// advanceSetupTurn 蛇形顺序推进铺设：正序一圈再倒序一圈，
// 每人每圈放一个村庄加一条路。2N 手之后进入正式对局。
func (r *Room) advanceSetupTurn() {
	total := len(r.Players)
	r.SetupTurnIndex++
	if r.SetupTurnIndex >= total*2 {
		r.Status = StatusPlaying
		r.ActivePlayerID = r.Players[0].ID
		r.SubPhase = waitingPhase()
		return
	}
	idx := r.SetupTurnIndex
	if idx >= total {
		idx = total*2 - 1 - r.SetupTurnIndex
		r.Status = StatusSetupRound2
	}
	r.ActivePlayerID = r.Players[idx].ID
	r.SubPhase = settlementPhase()
}

// --- 回合收尾 ---

// EndTurn 回合结束：刚买的卡转为可用，回合交给下一位（若下一位是
// 卡特尔持有者则卡特尔到期），重算所有人分数并判定胜负。
func (r *Room) EndTurn(playerID string) error {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return err
	}
	if err := r.requireActive(playerID); err != nil {
		return err
	}
	if err := r.requirePhase(PhaseWaiting); err != nil {
		return err
	}
	if !r.hasRolled {
		return ruleErr("还没掷骰子，不能结束回合")
	}

	p := r.findPlayer(playerID)
	for card, n := range p.NewDevCards {
		if n > 0 {
			p.DevCards[card] += n
			p.NewDevCards[card] = 0
		}
	}

	idx := r.playerIndex(playerID)
	next := r.Players[(idx+1)%len(r.Players)]
	if r.MonopolistID != "" && r.MonopolistID == next.ID {
		r.MonopolistID = ""
	}
	r.ActivePlayerID = next.ID
	r.SubPhase = waitingPhase()
	r.hasRolled = false
	r.TradeOffer = nil

	r.updateAllVictoryPoints()
	if winner := r.checkWinCondition(); winner != "" {
		r.WinnerID = winner
		r.Status = StatusFinished
		log.Printf("🏆 房间 %s 结束，胜者 %s\n", r.ID, winner)
	}
	return nil
}

// --- 通用校验与小工具 ---

func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) player(id string) (*Player, error) {
	if p := r.findPlayer(id); p != nil {
		return p, nil
	}
	return nil, notFoundErr("玩家 %s 不存在", id)
}

func (r *Room) playerIndex(id string) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) requireActive(playerID string) error {
	if r.ActivePlayerID != playerID {
		return ruleErr("还没轮到你")
	}
	return nil
}

func (r *Room) requireStatus(statuses ...GameStatus) error {
	for _, s := range statuses {
		if r.Status == s {
			return nil
		}
	}
	return ruleErr("当前阶段（%s）不允许这个操作", r.Status)
}

func (r *Room) requirePhase(kinds ...SubPhaseKind) error {
	for _, k := range kinds {
		if r.SubPhase.Kind == k {
			return nil
		}
	}
	return ruleErr("当前子阶段（%s）不允许这个操作", r.SubPhase.Kind)
}

func (r *Room) isSetup() bool {
	return r.Status == StatusSetupRound1 || r.Status == StatusSetupRound2
}

// chargePlayer 先整体校验再整体扣款，不会扣出负数
func (r *Room) chargePlayer(playerID string, cost map[ResourceType]int) error {
	p, err := r.player(playerID)
	if err != nil {
		return err
	}
	for res, amt := range cost {
		if p.Resources[res] < amt {
			return ruleErr("资源不足：%s 需要 %d", res, amt)
		}
	}
	for res, amt := range cost {
		p.Resources[res] -= amt
	}
	return nil
}

func newBuildingID() string { return uuid.New().String() }
