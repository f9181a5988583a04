package game

// ResourceType 资源类型（五种可交易资源 + 金币）
type ResourceType string

const (
	ResourceLumber   ResourceType = "lumber"   // 木材（森林产出）
	ResourceConcrete ResourceType = "concrete" // 混凝土（丘陵产出）
	ResourceTextile  ResourceType = "textile"  // 纺织品（牧场产出）
	ResourceFood     ResourceType = "food"     // 食物（农田产出）
	ResourceDiamond  ResourceType = "diamond"  // 钻石（矿山产出）
	ResourceGold     ResourceType = "gold"     // 金币（货币，不参与地块产出）
)

// TradeableResources 所有非金币资源
var TradeableResources = []ResourceType{
	ResourceLumber,
	ResourceConcrete,
	ResourceTextile,
	ResourceFood,
	ResourceDiamond,
}

// isTradeable 是否五种可交易资源之一（金币不算）
func isTradeable(res ResourceType) bool {
	for _, t := range TradeableResources {
		if t == res {
			return true
		}
	}
	return false
}

// TerrainType 地形类型
type TerrainType string

const (
	TerrainForest    TerrainType = "forest"
	TerrainHills     TerrainType = "hills"
	TerrainPasture   TerrainType = "pasture"
	TerrainFields    TerrainType = "fields"
	TerrainMountains TerrainType = "mountains"
	TerrainDesert    TerrainType = "desert" // 沙漠不产出任何资源
)

// TerrainResource 返回地形对应的产出资源，沙漠返回 false
func TerrainResource(t TerrainType) (ResourceType, bool) {
	switch t {
	case TerrainForest:
		return ResourceLumber, true
	case TerrainHills:
		return ResourceConcrete, true
	case TerrainPasture:
		return ResourceTextile, true
	case TerrainFields:
		return ResourceFood, true
	case TerrainMountains:
		return ResourceDiamond, true
	}
	return "", false
}

// BuildingType 建筑类型
type BuildingType string

const (
	BuildingRoad       BuildingType = "road"
	BuildingSettlement BuildingType = "settlement"
	BuildingCity       BuildingType = "city"
	BuildingDebris     BuildingType = "debris" // 被破坏的道路（废墟）
)

// DebrisOwner 废墟的占位所有者
const DebrisOwner = "DEBRIS"

// GameStatus 房间状态机的主状态
type GameStatus string

const (
	StatusLobby           GameStatus = "lobby"
	StatusRollingForStart GameStatus = "rolling_for_start"
	StatusSetupRound1     GameStatus = "setup_round_1"
	StatusSetupRound2     GameStatus = "setup_round_2"
	StatusPlaying         GameStatus = "playing"
	StatusFinished        GameStatus = "finished"
)

// SubPhaseKind 回合子阶段的封闭枚举
type SubPhaseKind string

const (
	PhaseWaiting    SubPhaseKind = "waiting"
	PhaseSettlement SubPhaseKind = "settlement"
	PhaseRoad       SubPhaseKind = "road"
	PhaseCity       SubPhaseKind = "city"
	PhaseRobber     SubPhaseKind = "robber"
	PhaseSabotage   SubPhaseKind = "sabotage"
	PhaseFreeRoad   SubPhaseKind = "free_road"
	PhaseTraderPick SubPhaseKind = "trader_pick"
)

// SubPhase 回合子阶段。Remaining 仅对 free_road / trader_pick 有意义，
// Candidates 仅在收税官落点有多个可抢对象时非空，其余阶段均为零值，
// 非法组合无法通过构造函数产生。
type SubPhase struct {
	Kind       SubPhaseKind `json:"kind"`
	Remaining  int          `json:"remaining,omitempty"`
	Candidates []string     `json:"candidates,omitempty"`
}

func waitingPhase() SubPhase    { return SubPhase{Kind: PhaseWaiting} }
func settlementPhase() SubPhase { return SubPhase{Kind: PhaseSettlement} }
func roadPhase() SubPhase       { return SubPhase{Kind: PhaseRoad} }
func robberPhase() SubPhase     { return SubPhase{Kind: PhaseRobber} }

// robberChoosePhase 收税官已落位，等行动玩家从候选里挑一个抢
func robberChoosePhase(victims []string) SubPhase {
	return SubPhase{Kind: PhaseRobber, Candidates: victims}
}
func sabotagePhase() SubPhase   { return SubPhase{Kind: PhaseSabotage} }

// freeRoadPhase 工程师卡开启：2 条免费道路
func freeRoadPhase() SubPhase { return SubPhase{Kind: PhaseFreeRoad, Remaining: 2} }

// traderPickPhase 商人卡开启：3 次免费选取资源
func traderPickPhase() SubPhase { return SubPhase{Kind: PhaseTraderPick, Remaining: 3} }

// PlayerColor 玩家颜色，房间内唯一
type PlayerColor string

const (
	ColorRed    PlayerColor = "red"
	ColorBlue   PlayerColor = "blue"
	ColorOrange PlayerColor = "orange"
	ColorWhite  PlayerColor = "white"
	ColorGreen  PlayerColor = "green" // 第 5 人
)

// DevCardType 发展卡类型
type DevCardType string

const (
	CardMercenary    DevCardType = "mercenary"     // 雇佣兵：军队+1 并移动收税官
	CardSabotage     DevCardType = "sabotage"      // 破坏：摧毁一条敌方道路
	CardCartel       DevCardType = "cartel"        // 卡特尔：垄断产出直到回合转回
	CardInsurance    DevCardType = "insurance"     // 道路保险：被破坏时自动抵消
	CardVictoryPoint DevCardType = "victory_point" // 胜利点：被动计分，不可打出
	CardEngineer     DevCardType = "engineer"      // 工程师：免费修 2 条路
	CardTrader       DevCardType = "trader"        // 商人：从银行免费拿 3 个资源
	CardMercator     DevCardType = "mercator"      // 商贾：按目标存量从一名对手处征收
)

// allCardTypes 用于初始化空手牌
var allCardTypes = []DevCardType{
	CardMercenary, CardSabotage, CardCartel, CardInsurance,
	CardVictoryPoint, CardEngineer, CardTrader, CardMercator,
}

// Player 房间内的一名玩家。VictoryPoints 每次回合结束重算，
// 不作为可信输入；ArmySize 单调不减。
type Player struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	Name          string               `json:"name"`
	Color         PlayerColor          `json:"color"`
	Resources     map[ResourceType]int `json:"resources"`
	VictoryPoints int                  `json:"victoryPoints"`
	LongestRoad   int                  `json:"longestRoad"`
	ArmySize      int                  `json:"armySize"`
	DevCards      map[DevCardType]int  `json:"devCards"`    // 可用的卡
	NewDevCards   map[DevCardType]int  `json:"newDevCards"` // 本回合刚买的卡（下回合才可用）
	PurchasedVPs  int                  `json:"purchasedVPs"`
	Disconnected  bool                 `json:"disconnected"`
}

func newPlayer(id, userID, name string, color PlayerColor) *Player {
	res := make(map[ResourceType]int, 6)
	for _, r := range TradeableResources {
		res[r] = 0
	}
	res[ResourceGold] = 0

	cards := make(map[DevCardType]int, len(allCardTypes))
	newCards := make(map[DevCardType]int, len(allCardTypes))
	for _, c := range allCardTypes {
		cards[c] = 0
		newCards[c] = 0
	}
	return &Player{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Color:       color,
		Resources:   res,
		DevCards:    cards,
		NewDevCards: newCards,
	}
}

// totalTradeable 非金币资源总数（收税官惩罚用）
func (p *Player) totalTradeable() int {
	total := 0
	for _, r := range TradeableResources {
		total += p.Resources[r]
	}
	return total
}

// Coord 面向客户端的建筑坐标：所在地块的轴坐标 + 角/边序号。
// 未使用的序号为 -1。
type Coord struct {
	Q           int `json:"q"`
	R           int `json:"r"`
	VertexIndex int `json:"vertexIndex"`
	EdgeIndex   int `json:"edgeIndex"`
}

// Building 已放置的建筑。村庄/城市落在规范顶点上（VertexID），
// 道路/废墟落在规范边上（EdgeID）。建筑只会原地变形，从不删除。
type Building struct {
	ID              string       `json:"id"`
	Type            BuildingType `json:"type"`
	OwnerID         string       `json:"ownerId"`
	Coord           Coord        `json:"coord"`
	VertexID        int          `json:"vertexId"`
	EdgeID          int          `json:"edgeId"`
	OriginalOwnerID string       `json:"originalOwnerId,omitempty"` // 废墟修理差价用
}

// TradeOffer 玩家间交易报价，每个房间同时最多一个
type TradeOffer struct {
	ID        string               `json:"id"`
	OffererID string               `json:"offererId"`
	Give      map[ResourceType]int `json:"give"`
	Want      map[ResourceType]int `json:"want"`
	Acceptors []string             `json:"acceptors"`
}

// StartRoll 开局掷骰条目，Roll 为 nil 表示还没掷
type StartRoll struct {
	PlayerID string `json:"playerId"`
	Roll     *int   `json:"roll"`
}
