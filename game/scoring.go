package game

import "log"

// 两个头衔的最低达标线
const (
	longestRoadMin = 5
	largestArmyMin = 3
)

const titleBonus = 2 // 每个头衔 +2 胜利点

const wealthGoldThreshold = 33 // 金币囤到这个数额外 +1 胜利点

// updateAllVictoryPoints 重算全员分数。先结算两个头衔的归属，
// 再逐人累计。游戏内所有改动资源或建筑的操作结束时都会走到这里。
func (r *Room) updateAllVictoryPoints() {
	r.updateLongestRoadHolder()
	r.updateLargestArmyHolder()
	for _, p := range r.Players {
		p.VictoryPoints = r.calculateVictoryPoints(p)
	}
}

func (r *Room) calculateVictoryPoints(p *Player) int {
	vp := 0
	for _, b := range r.Buildings {
		if b.OwnerID != p.ID {
			continue
		}
		switch b.Type {
		case BuildingSettlement:
			vp++
		case BuildingCity:
			vp += 2
		}
	}
	vp += p.DevCards[CardVictoryPoint] + p.NewDevCards[CardVictoryPoint]
	vp += p.PurchasedVPs
	if r.LongestRoadPlayerID == p.ID {
		vp += titleBonus
	}
	if r.LargestArmyPlayerID == p.ID {
		vp += titleBonus
	}
	if p.Resources[ResourceGold] >= wealthGoldThreshold {
		vp++
	}
	return vp
}

// updateLongestRoadHolder 重算每人的最长连续道路并结算头衔。
// 达标线 5。现任与挑战者打平时头衔不易主；现任掉出并列最高
// 且没有唯一继任者时头衔空悬。
func (r *Room) updateLongestRoadHolder() {
	best := 0
	for _, p := range r.Players {
		p.LongestRoad = r.longestRoadLength(p.ID)
		if p.LongestRoad > best {
			best = p.LongestRoad
		}
	}
	if best < longestRoadMin {
		r.LongestRoadPlayerID = ""
		return
	}

	var contenders []string
	for _, p := range r.Players {
		if p.LongestRoad == best {
			contenders = append(contenders, p.ID)
		}
	}
	for _, id := range contenders {
		if id == r.LongestRoadPlayerID {
			return // 现任保持最高，头衔不动
		}
	}
	if len(contenders) == 1 {
		r.LongestRoadPlayerID = contenders[0]
		log.Printf("🏆 %s 拿下最长道路（%d 段）\n", r.findPlayer(contenders[0]).Name, best)
		return
	}
	r.LongestRoadPlayerID = ""
}

// updateLargestArmyHolder 佣兵数量 ≥3 且唯一最多者持有最大兵团，
// 平手时现任不让位
func (r *Room) updateLargestArmyHolder() {
	best := 0
	for _, p := range r.Players {
		if p.ArmySize > best {
			best = p.ArmySize
		}
	}
	if best < largestArmyMin {
		r.LargestArmyPlayerID = ""
		return
	}

	var contenders []string
	for _, p := range r.Players {
		if p.ArmySize == best {
			contenders = append(contenders, p.ID)
		}
	}
	for _, id := range contenders {
		if id == r.LargestArmyPlayerID {
			return
		}
	}
	if len(contenders) == 1 {
		r.LargestArmyPlayerID = contenders[0]
		log.Printf("🏆 %s 拿下最大兵团（%d 名佣兵）\n", r.findPlayer(contenders[0]).Name, best)
		return
	}
	r.LargestArmyPlayerID = ""
}

// longestRoadLength 玩家最长的一条不重复用边的连续道路。
// 途经的顶点上若有对手的村庄/城市，道路在那里被截断，
// 但仍可以把路修到这样的顶点为止。废墟不算路。
func (r *Room) longestRoadLength(playerID string) int {
	endpoints := map[int]bool{}
	for _, b := range r.Buildings {
		if b.Type == BuildingRoad && b.OwnerID == playerID {
			e := r.Board.Edges[b.EdgeID]
			endpoints[e.A] = true
			endpoints[e.B] = true
		}
	}

	best := 0
	visited := map[int]bool{}
	for v := range endpoints {
		if l := r.walkRoads(playerID, v, visited); l > best {
			best = l
		}
	}
	return best
}

// walkRoads 从顶点 v 出发深度优先延伸，返回能走出的最长边数
func (r *Room) walkRoads(playerID string, v int, visited map[int]bool) int {
	best := 0
	for _, eid := range r.Board.Vertices[v].Edges {
		if visited[eid] {
			continue
		}
		b := r.buildingAtEdge[eid]
		if b == nil || b.Type != BuildingRoad || b.OwnerID != playerID {
			continue
		}
		visited[eid] = true
		length := 1
		other := r.Board.edgeOtherEnd(eid, v)
		if blocker := r.buildingAtVertex[other]; blocker == nil || blocker.OwnerID == playerID {
			length += r.walkRoads(playerID, other, visited)
		}
		visited[eid] = false
		if length > best {
			best = length
		}
	}
	return best
}

// checkWinCondition 有人达到获胜分数就返回其 ID。只在回合结束时调用。
func (r *Room) checkWinCondition() string {
	for _, p := range r.Players {
		if p.VictoryPoints >= WinThreshold {
			return p.ID
		}
	}
	return ""
}
