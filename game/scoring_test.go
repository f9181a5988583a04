package game

import "testing"

// 沿 (q,r) 地块的连续几条边给玩家铺路
func placeRoadRun(t *testing.T, r *Room, ownerID string, q, rr int, edges ...int) {
	t.Helper()
	for _, ei := range edges {
		placeBuilding(t, r, ownerID, BuildingRoad, q, rr, ei)
	}
}

func TestLongestRoadLength(t *testing.T) {
	r := playingRoom(t, 3, 51)

	placeRoadRun(t, r, "p1", 0, 0, 0, 1, 2, 3)
	if got := r.longestRoadLength("p1"); got != 4 {
		t.Errorf("四条连续边应计 4，实际 %d", got)
	}

	// 闭合成环：六条边都能走一遍
	placeRoadRun(t, r, "p1", 0, 0, 4, 5)
	if got := r.longestRoadLength("p1"); got != 6 {
		t.Errorf("六边环应计 6，实际 %d", got)
	}
}

func TestLongestRoadBrokenByEnemyBuilding(t *testing.T) {
	r := playingRoom(t, 3, 51)
	placeRoadRun(t, r, "p1", 0, 0, 0, 1, 2)

	if got := r.longestRoadLength("p1"); got != 3 {
		t.Fatalf("先确认连通长度 3，实际 %d", got)
	}
	// 敌方建筑落在中间顶点（边 1 和边 2 的交点）
	placeBuilding(t, r, "p2", BuildingSettlement, 0, 0, 2)
	if got := r.longestRoadLength("p1"); got != 2 {
		t.Errorf("被敌方建筑截断后应计 2，实际 %d", got)
	}
	// 自己的建筑不截断
	r2 := playingRoom(t, 3, 51)
	placeRoadRun(t, r2, "p1", 0, 0, 0, 1, 2)
	placeBuilding(t, r2, "p1", BuildingSettlement, 0, 0, 2)
	if got := r2.longestRoadLength("p1"); got != 3 {
		t.Errorf("自己的建筑不应截断道路，实际 %d", got)
	}
}

func TestDebrisDoesNotCountAsRoad(t *testing.T) {
	r := playingRoom(t, 3, 51)
	placeRoadRun(t, r, "p1", 0, 0, 0, 1, 2)
	eid, _ := r.Board.EdgeID(0, 0, 1)
	mid := r.buildingAtEdge[eid]
	mid.Type = BuildingDebris
	mid.OriginalOwnerID = mid.OwnerID
	mid.OwnerID = DebrisOwner

	if got := r.longestRoadLength("p1"); got != 1 {
		t.Errorf("中段成废墟后两头各剩 1，实际 %d", got)
	}
}

func TestLongestRoadTitleTransfer(t *testing.T) {
	r := playingRoom(t, 3, 51)

	// 4 条不够达标线
	placeRoadRun(t, r, "p1", 0, 0, 0, 1, 2, 3)
	r.updateAllVictoryPoints()
	if r.LongestRoadPlayerID != "" {
		t.Fatal("不足 5 段不应有头衔")
	}

	placeRoadRun(t, r, "p1", 0, 0, 4)
	r.updateAllVictoryPoints()
	if r.LongestRoadPlayerID != "p1" {
		t.Fatal("5 段应拿下最长道路")
	}
	if r.findPlayer("p1").VictoryPoints != titleBonus {
		t.Errorf("头衔应计 %d 分，实际 %d", titleBonus, r.findPlayer("p1").VictoryPoints)
	}

	// 平手不易主
	placeRoadRun(t, r, "p2", 0, -2, 0, 1, 2, 3, 4)
	r.updateAllVictoryPoints()
	if r.LongestRoadPlayerID != "p1" {
		t.Error("平手时现任应保住头衔")
	}

	// 反超才易主
	placeRoadRun(t, r, "p2", 0, -2, 5)
	r.updateAllVictoryPoints()
	if r.LongestRoadPlayerID != "p2" {
		t.Error("被反超后头衔应易主")
	}
	if r.findPlayer("p1").VictoryPoints != 0 {
		t.Error("失去头衔应扣回加分")
	}
}

func TestLargestArmyTitle(t *testing.T) {
	r := playingRoom(t, 3, 51)
	p1 := r.findPlayer("p1")
	p2 := r.findPlayer("p2")

	p1.ArmySize = 2
	r.updateAllVictoryPoints()
	if r.LargestArmyPlayerID != "" {
		t.Fatal("不足 3 名佣兵不应有头衔")
	}

	p1.ArmySize = 3
	r.updateAllVictoryPoints()
	if r.LargestArmyPlayerID != "p1" || p1.VictoryPoints != titleBonus {
		t.Fatal("3 名佣兵应拿下最大兵团")
	}

	p2.ArmySize = 3
	r.updateAllVictoryPoints()
	if r.LargestArmyPlayerID != "p1" {
		t.Error("平手时现任应保住头衔")
	}

	p2.ArmySize = 4
	r.updateAllVictoryPoints()
	if r.LargestArmyPlayerID != "p2" {
		t.Error("被反超后头衔应易主")
	}
}

func TestVictoryPointTally(t *testing.T) {
	r := playingRoom(t, 3, 51)
	p1 := r.findPlayer("p1")

	placeBuilding(t, r, "p1", BuildingSettlement, 0, 0, 0) // 1
	placeBuilding(t, r, "p1", BuildingCity, 0, 0, 2)       // 2
	p1.DevCards[CardVictoryPoint] = 1                      // 1
	p1.NewDevCards[CardVictoryPoint] = 1                   // 1，待激活的也计分
	p1.PurchasedVPs = 1                                    // 1
	giveResources(p1, map[ResourceType]int{ResourceGold: wealthGoldThreshold}) // 1

	r.updateAllVictoryPoints()
	if p1.VictoryPoints != 7 {
		t.Errorf("总分应为 7，实际 %d", p1.VictoryPoints)
	}

	// 金币花下去，财富分就没了
	p1.Resources[ResourceGold] = 0
	r.updateAllVictoryPoints()
	if p1.VictoryPoints != 6 {
		t.Errorf("失去财富分后应为 6，实际 %d", p1.VictoryPoints)
	}
}
