package game

// 建筑造价
var buildingCosts = map[BuildingType]map[ResourceType]int{
	BuildingRoad:       {ResourceConcrete: 1, ResourceLumber: 1},
	BuildingSettlement: {ResourceConcrete: 1, ResourceLumber: 1, ResourceTextile: 1, ResourceFood: 1},
	BuildingCity:       {ResourceFood: 2, ResourceDiamond: 3},
}

// 每名玩家的建筑上限
const (
	maxSettlements = 5
	maxCities      = 4
	maxRoads       = 15
)

// 废墟修理费：原主只补最便宜的建材，外人要建材加手续费
var (
	repairCostOwner  = map[ResourceType]int{ResourceLumber: 1}
	repairCostOthers = map[ResourceType]int{ResourceLumber: 1, ResourceConcrete: 1, ResourceGold: 2}
)

func (r *Room) countBuildings(playerID string, kind BuildingType) int {
	n := 0
	for _, b := range r.Buildings {
		if b.OwnerID == playerID && b.Type == kind {
			n++
		}
	}
	return n
}

// BuildSettlement 放置村庄。目标顶点必须空置且满足间隔规则
// （相邻顶点上不能有任何村庄/城市）；正式对局中还必须有一条
// 自己的道路端点落在该顶点，并支付造价。铺设阶段免费，第二轮的
// 村庄落成时按相邻产出地块各发一份资源。
func (r *Room) BuildSettlement(playerID string, q, rr, vertexIndex int) error {
	if err := r.requireStatus(StatusSetupRound1, StatusSetupRound2, StatusPlaying); err != nil {
		return err
	}
	if err := r.requireActive(playerID); err != nil {
		return err
	}
	setup := r.isSetup()
	if setup {
		if err := r.requirePhase(PhaseSettlement); err != nil {
			return err
		}
	} else {
		if err := r.requirePhase(PhaseWaiting); err != nil {
			return err
		}
		if r.countBuildings(playerID, BuildingSettlement) >= maxSettlements {
			return ruleErr("村庄数量已达上限（%d）", maxSettlements)
		}
	}

	vertexID, ok := r.Board.VertexID(q, rr, vertexIndex)
	if !ok {
		return notFoundErr("顶点坐标不合法")
	}
	if b := r.buildingAtVertex[vertexID]; b != nil {
		return ruleErr("这个顶点已经有建筑了")
	}
	// 间隔规则：一条边以内不能有其他村庄/城市
	for _, nb := range r.Board.adjacentVertices(vertexID) {
		if r.buildingAtVertex[nb] != nil {
			return ruleErr("离其他建筑太近，至少要隔一条边")
		}
	}
	if !setup {
		if !r.hasOwnRoadEndpointAt(playerID, vertexID) {
			return ruleErr("没有和你的道路相连")
		}
		if err := r.chargePlayer(playerID, buildingCosts[BuildingSettlement]); err != nil {
			return err
		}
	}

	b := &Building{
		ID:       newBuildingID(),
		Type:     BuildingSettlement,
		OwnerID:  playerID,
		Coord:    Coord{Q: q, R: rr, VertexIndex: vertexIndex, EdgeIndex: -1},
		VertexID: vertexID,
		EdgeID:   -1,
	}
	r.Buildings = append(r.Buildings, b)
	r.buildingAtVertex[vertexID] = b

	if setup {
		if r.Status == StatusSetupRound2 {
			r.grantInitialResources(playerID, vertexID)
		}
		r.SubPhase = roadPhase()
	}
	r.updateAllVictoryPoints()
	return nil
}

// hasOwnRoadEndpointAt 该顶点是否是玩家某条道路的端点
func (r *Room) hasOwnRoadEndpointAt(playerID string, vertexID int) bool {
	for _, eid := range r.Board.Vertices[vertexID].Edges {
		if b := r.buildingAtEdge[eid]; b != nil && b.Type == BuildingRoad && b.OwnerID == playerID {
			return true
		}
	}
	return false
}

// grantInitialResources 第二轮村庄落成时，相邻每个产出地块发一份资源
func (r *Room) grantInitialResources(playerID string, vertexID int) {
	p := r.findPlayer(playerID)
	if p == nil {
		return
	}
	for _, ti := range r.Board.Vertices[vertexID].Tiles {
		if res, ok := TerrainResource(r.Board.Tiles[ti].Terrain); ok {
			p.Resources[res]++
		}
	}
}

// BuildRoad 放置道路。目标边必须空置（没有道路也没有废墟），
// 且与自己的村庄/城市或道路共享一个端点；若共享端点上是对手的
// 村庄/城市，则该方向的连接被切断。铺设阶段和 free_road 阶段免费。
func (r *Room) BuildRoad(playerID string, q, rr, edgeIndex int) error {
	if err := r.requireStatus(StatusSetupRound1, StatusSetupRound2, StatusPlaying); err != nil {
		return err
	}
	if err := r.requireActive(playerID); err != nil {
		return err
	}
	setup := r.isSetup()
	freeRoad := r.SubPhase.Kind == PhaseFreeRoad
	if setup {
		if err := r.requirePhase(PhaseRoad); err != nil {
			return err
		}
	} else {
		if err := r.requirePhase(PhaseWaiting, PhaseFreeRoad); err != nil {
			return err
		}
		if r.countBuildings(playerID, BuildingRoad) >= maxRoads {
			return ruleErr("道路数量已达上限（%d）", maxRoads)
		}
	}

	edgeID, ok := r.Board.EdgeID(q, rr, edgeIndex)
	if !ok {
		return notFoundErr("边坐标不合法")
	}
	if r.buildingAtEdge[edgeID] != nil {
		return ruleErr("这条边已经有道路或废墟了")
	}
	if !r.roadConnects(playerID, edgeID) {
		return ruleErr("没有和你的建筑相连")
	}
	if !setup && !freeRoad {
		if err := r.chargePlayer(playerID, buildingCosts[BuildingRoad]); err != nil {
			return err
		}
	}

	b := &Building{
		ID:      newBuildingID(),
		Type:    BuildingRoad,
		OwnerID: playerID,
		Coord:   Coord{Q: q, R: rr, VertexIndex: -1, EdgeIndex: edgeIndex},
		VertexID: -1,
		EdgeID:   edgeID,
	}
	r.Buildings = append(r.Buildings, b)
	r.buildingAtEdge[edgeID] = b

	if freeRoad {
		r.SubPhase.Remaining--
		if r.SubPhase.Remaining <= 0 {
			r.SubPhase = waitingPhase()
		}
	}
	if setup {
		r.advanceSetupTurn()
	}
	r.updateAllVictoryPoints()
	return nil
}

// roadConnects 目标边的某个端点上有自己的村庄/城市，或者经由该端点
// 接上自己的道路。端点上若是对手的建筑，这条通路不算数。
func (r *Room) roadConnects(playerID string, edgeID int) bool {
	e := r.Board.Edges[edgeID]
	for _, vid := range []int{e.A, e.B} {
		if b := r.buildingAtVertex[vid]; b != nil {
			if b.OwnerID == playerID {
				return true
			}
			continue // 对手的路口，过不去
		}
		for _, otherEdge := range r.Board.Vertices[vid].Edges {
			if otherEdge == edgeID {
				continue
			}
			if rb := r.buildingAtEdge[otherEdge]; rb != nil && rb.Type == BuildingRoad && rb.OwnerID == playerID {
				return true
			}
		}
	}
	return false
}

// UpgradeSettlement 村庄原地升级为城市
func (r *Room) UpgradeSettlement(playerID string, q, rr, vertexIndex int) error {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return err
	}
	if err := r.requireActive(playerID); err != nil {
		return err
	}
	if err := r.requirePhase(PhaseWaiting); err != nil {
		return err
	}
	if r.countBuildings(playerID, BuildingCity) >= maxCities {
		return ruleErr("城市数量已达上限（%d）", maxCities)
	}

	vertexID, ok := r.Board.VertexID(q, rr, vertexIndex)
	if !ok {
		return notFoundErr("顶点坐标不合法")
	}
	b := r.buildingAtVertex[vertexID]
	if b == nil {
		return notFoundErr("这里没有建筑")
	}
	if b.OwnerID != playerID {
		return ruleErr("这不是你的建筑")
	}
	if b.Type != BuildingSettlement {
		return ruleErr("只有村庄可以升级为城市")
	}
	if err := r.chargePlayer(playerID, buildingCosts[BuildingCity]); err != nil {
		return err
	}
	b.Type = BuildingCity
	r.updateAllVictoryPoints()
	return nil
}

// SabotageResult 破坏结算。Blocked 表示被保险卡抵消：
// 保险卡已消耗，道路保持原样。
type SabotageResult struct {
	Blocked    bool
	VictimID   string
	VictimName string
}

// SabotageRoad 破坏子阶段中摧毁一条敌方道路为废墟。
// 若受害者有未用的保险卡则自动消耗一张并抵消本次破坏。
func (r *Room) SabotageRoad(playerID string, q, rr, edgeIndex int) (*SabotageResult, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return nil, err
	}
	if err := r.requireActive(playerID); err != nil {
		return nil, err
	}
	if err := r.requirePhase(PhaseSabotage); err != nil {
		return nil, err
	}

	edgeID, ok := r.Board.EdgeID(q, rr, edgeIndex)
	if !ok {
		return nil, notFoundErr("边坐标不合法")
	}
	target := r.buildingAtEdge[edgeID]
	if target == nil || target.Type != BuildingRoad {
		return nil, notFoundErr("这里没有道路")
	}
	if target.OwnerID == playerID {
		return nil, ruleErr("不能破坏自己的道路")
	}

	victim := r.findPlayer(target.OwnerID)
	result := &SabotageResult{VictimID: target.OwnerID}
	if victim != nil {
		result.VictimName = victim.Name
		if victim.DevCards[CardInsurance] > 0 {
			victim.DevCards[CardInsurance]--
			r.SubPhase = waitingPhase()
			result.Blocked = true
			return result, nil
		}
	}

	target.Type = BuildingDebris
	target.OriginalOwnerID = target.OwnerID
	target.OwnerID = DebrisOwner
	r.SubPhase = waitingPhase()
	r.updateAllVictoryPoints()
	return result, nil
}

// RepairDebris 把废墟修回道路，修好后归修理者所有。
// 原主修理只花 1 木材，其他人要 1 木材 + 1 混凝土 + 2 金币。
func (r *Room) RepairDebris(playerID string, q, rr, edgeIndex int) error {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return err
	}
	if err := r.requireActive(playerID); err != nil {
		return err
	}
	if err := r.requirePhase(PhaseWaiting); err != nil {
		return err
	}

	edgeID, ok := r.Board.EdgeID(q, rr, edgeIndex)
	if !ok {
		return notFoundErr("边坐标不合法")
	}
	debris := r.buildingAtEdge[edgeID]
	if debris == nil || debris.Type != BuildingDebris {
		return notFoundErr("这里没有废墟")
	}

	cost := repairCostOthers
	if debris.OriginalOwnerID == playerID {
		cost = repairCostOwner
	}
	if err := r.chargePlayer(playerID, cost); err != nil {
		return err
	}

	debris.Type = BuildingRoad
	debris.OwnerID = playerID
	debris.OriginalOwnerID = ""
	r.updateAllVictoryPoints()
	return nil
}
