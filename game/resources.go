package game

import "log"

// 产出地块上无建筑玩家的每条道路收取的过路费（金币）
const roadTollGold = 3

// 收税官触发的两档惩罚阈值
const (
	discardThreshold   = 7  // 非金币资源 ≥7 时弃一半
	goldHoardThreshold = 20 // 金币 ≥20 时没收一半
)

// DiceResult 掷骰结果
type DiceResult struct {
	Die1  int `json:"die1"`
	Die2  int `json:"die2"`
	Total int `json:"total"`
}

// RollDice 行动玩家掷骰，每回合一次。掷出 7 走收税官流程并进入
// robber 子阶段，其余点数触发产出。
func (r *Room) RollDice(playerID string) (*DiceResult, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return nil, err
	}
	if err := r.requireActive(playerID); err != nil {
		return nil, err
	}
	if err := r.requirePhase(PhaseWaiting); err != nil {
		return nil, err
	}
	if r.hasRolled {
		return nil, conflictErr("这回合已经掷过骰子了")
	}

	d1 := r.rng.Intn(6) + 1
	d2 := r.rng.Intn(6) + 1
	total := d1 + d2

	r.hasRolled = true
	if total == 7 {
		r.collectTaxes()
		r.SubPhase = robberPhase()
	} else {
		r.distributeResources(total)
	}
	return &DiceResult{Die1: d1, Die2: d2, Total: total}, nil
}

// distributeResources 对每个点数匹配且未被封锁的地块结算产出：
// 村庄 1 份、城市 2 份。卡特尔生效时只有垄断者自己的建筑产出，
// 其他人的产出直接作废（不转移），过路费同样停发。没有卡特尔时，
// 在产出地块上只有道路的玩家按每条路收固定过路费；已经靠建筑
// 拿到产出的玩家不再重复收过路费。
func (r *Room) distributeResources(total int) {
	monopolist := r.findPlayer(r.MonopolistID)

	for _, tile := range r.Board.Tiles {
		if tile.Number != total || tile.HasRobber {
			continue
		}
		res, ok := TerrainResource(tile.Terrain)
		if !ok {
			continue
		}

		// 本地块靠建筑产出过的玩家
		producers := map[string]bool{}
		for _, vid := range tile.corners {
			b := r.buildingAtVertex[vid]
			if b == nil {
				continue
			}
			amount := 1
			if b.Type == BuildingCity {
				amount = 2
			}
			if monopolist != nil {
				if b.OwnerID == monopolist.ID {
					monopolist.Resources[res] += amount
				}
				// 其他人的产出作废
				continue
			}
			if p := r.findPlayer(b.OwnerID); p != nil {
				p.Resources[res] += amount
				producers[p.ID] = true
			}
		}

		if monopolist != nil {
			continue // 卡特尔期间不发过路费
		}

		// 统计每个玩家在本地块上的道路数
		roadCounts := map[string]int{}
		for _, eid := range tile.edges {
			if b := r.buildingAtEdge[eid]; b != nil && b.Type == BuildingRoad {
				roadCounts[b.OwnerID]++
			}
		}
		for ownerID, count := range roadCounts {
			if producers[ownerID] {
				continue
			}
			if p := r.findPlayer(ownerID); p != nil {
				p.Resources[ResourceGold] += roadTollGold * count
			}
		}
	}
}

// collectTaxes 掷出 7：非金币资源 ≥7 的玩家随机弃掉一半（按持有量
// 加权抽取，玩家不能自选）；金币 ≥20 的玩家另外没收一半。
func (r *Room) collectTaxes() {
	for _, p := range r.Players {
		total := p.totalTradeable()
		if total >= discardThreshold {
			toDiscard := total / 2
			for i := 0; i < toDiscard; i++ {
				res, ok := r.sampleHeldResource(p)
				if !ok {
					break
				}
				p.Resources[res]--
			}
			log.Printf("💸 玩家 %s 被收税，弃掉 %d 份资源\n", p.Name, toDiscard)
		}
		if gold := p.Resources[ResourceGold]; gold >= goldHoardThreshold {
			p.Resources[ResourceGold] -= gold / 2
		}
	}
}

// sampleHeldResource 按持有数量加权随机抽一个非金币资源
func (r *Room) sampleHeldResource(p *Player) (ResourceType, bool) {
	total := p.totalTradeable()
	if total == 0 {
		return "", false
	}
	pick := r.rng.Intn(total)
	for _, res := range TradeableResources {
		pick -= p.Resources[res]
		if pick < 0 {
			return res, true
		}
	}
	return "", false
}

// RobberyReport 抢劫结果，传输层据此播报
type RobberyReport struct {
	ThiefID    string       `json:"thiefId"`
	ThiefName  string       `json:"thiefName"`
	VictimID   string       `json:"victimId"`
	VictimName string       `json:"victimName"`
	Resource   ResourceType `json:"resource,omitempty"`
	Gold       int          `json:"gold,omitempty"`
}

// RobberMove 移动收税官的结果。恰好一个候选时当场完成抢劫
// （Robbery 非空）；多个候选时等待 RobPlayer；没有候选则不发生抢劫。
type RobberMove struct {
	Victims []string       `json:"victims"`
	Robbery *RobberyReport `json:"robbery,omitempty"`
}

// MoveRobber 把收税官挪到目标地块：旧封锁解除，新地块被封锁，
// 列出其上有村庄/城市的对手。
func (r *Room) MoveRobber(playerID string, q, rr int) (*RobberMove, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return nil, err
	}
	if err := r.requireActive(playerID); err != nil {
		return nil, err
	}
	if err := r.requirePhase(PhaseRobber); err != nil {
		return nil, err
	}

	target := r.Board.TileAt(q, rr)
	if target == nil {
		return nil, notFoundErr("地块不存在")
	}
	for _, t := range r.Board.Tiles {
		t.HasRobber = false
	}
	target.HasRobber = true

	seen := map[string]bool{}
	var victims []string
	for _, vid := range target.corners {
		b := r.buildingAtVertex[vid]
		if b == nil || b.OwnerID == playerID || seen[b.OwnerID] {
			continue
		}
		seen[b.OwnerID] = true
		victims = append(victims, b.OwnerID)
	}

	move := &RobberMove{Victims: victims}
	switch len(victims) {
	case 0:
		// 没有可抢的人，封锁照常生效
		r.SubPhase = waitingPhase()
	case 1:
		report, err := r.robPlayer(playerID, victims[0])
		if err != nil {
			return nil, err
		}
		move.Robbery = report
		r.SubPhase = waitingPhase()
	default:
		// 多个候选，记进子阶段等 RobPlayer 指定
		r.SubPhase = robberChoosePhase(victims)
	}
	return move, nil
}

// RobPlayer 多个候选时由行动玩家指定抢谁，只认落点时记下的候选
func (r *Room) RobPlayer(thiefID, victimID string) (*RobberyReport, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return nil, err
	}
	if err := r.requireActive(thiefID); err != nil {
		return nil, err
	}
	if err := r.requirePhase(PhaseRobber); err != nil {
		return nil, err
	}
	if len(r.SubPhase.Candidates) == 0 {
		return nil, ruleErr("先移动收税官")
	}
	candidate := false
	for _, id := range r.SubPhase.Candidates {
		if id == victimID {
			candidate = true
			break
		}
	}
	if !candidate {
		return nil, ruleErr("这名玩家不在收税官落点上")
	}
	report, err := r.robPlayer(thiefID, victimID)
	if err != nil {
		return nil, err
	}
	r.SubPhase = waitingPhase()
	return report, nil
}

// robPlayer 随机偷 1 份资源；对方没有资源就抢金币（最多 2 枚）
func (r *Room) robPlayer(thiefID, victimID string) (*RobberyReport, error) {
	thief, err := r.player(thiefID)
	if err != nil {
		return nil, err
	}
	victim, err := r.player(victimID)
	if err != nil {
		return nil, err
	}

	report := &RobberyReport{
		ThiefID:    thiefID,
		ThiefName:  thief.Name,
		VictimID:   victimID,
		VictimName: victim.Name,
	}
	if res, ok := r.sampleHeldResource(victim); ok {
		victim.Resources[res]--
		thief.Resources[res]++
		report.Resource = res
		return report, nil
	}
	if gold := min(2, victim.Resources[ResourceGold]); gold > 0 {
		victim.Resources[ResourceGold] -= gold
		thief.Resources[ResourceGold] += gold
		report.Gold = gold
	}
	return report, nil
}
