package game

import (
	"errors"
	"testing"
)

// rolledRoom 行动玩家已掷骰、处于交易窗口的房间
func rolledRoom(t *testing.T, seed uint64) *Room {
	t.Helper()
	r := playingRoom(t, 3, seed)
	r.hasRolled = true
	return r
}

func TestBankTradeRates(t *testing.T) {
	r := rolledRoom(t, 41)
	p1 := r.findPlayer("p1")
	giveResources(p1, map[ResourceType]int{ResourceFood: 2, ResourceDiamond: 1, ResourceConcrete: 1})

	gold, err := r.TradeWithBank("p1", map[ResourceType]int{
		ResourceFood:     2, // 2 × 1
		ResourceDiamond:  1, // 1 × 3
		ResourceConcrete: 1, // 1 × 2
	})
	if err != nil {
		t.Fatal(err)
	}
	if gold != 7 {
		t.Errorf("应换得 7 金币，实际 %d", gold)
	}
	if p1.Resources[ResourceGold] != 7 || p1.totalTradeable() != 0 {
		t.Error("结算后账目不对")
	}
}

func TestBankTradeValidation(t *testing.T) {
	r := rolledRoom(t, 41)
	if _, err := r.TradeWithBank("p1", map[ResourceType]int{ResourceFood: 1}); !errors.Is(err, ErrRule) {
		t.Errorf("库存不足应被拒绝，实际 %v", err)
	}
	if _, err := r.TradeWithBank("p1", map[ResourceType]int{ResourceGold: 1}); !errors.Is(err, ErrRule) {
		t.Errorf("金币不能卖给银行，实际 %v", err)
	}

	r.hasRolled = false
	if _, err := r.TradeWithBank("p1", nil); !errors.Is(err, ErrRule) {
		t.Errorf("掷骰前不能交易，实际 %v", err)
	}
}

// freeVertexNear 找一个没被占的地块角，adjacent 控制该角是否挨着
// 产出 res 的地块
func freeVertexNear(t *testing.T, r *Room, res ResourceType, adjacent bool) (int, int, int) {
	t.Helper()
	for _, tile := range r.Board.Tiles {
		for i := 0; i < 6; i++ {
			if r.buildingAtVertex[tile.corners[i]] != nil {
				continue
			}
			if r.vertexProduces(tile.corners[i], res) == adjacent {
				return tile.Q, tile.R, i
			}
		}
	}
	t.Fatal("棋盘上找不到符合条件的顶点")
	return 0, 0, 0
}

func TestBlackMarketSurcharge(t *testing.T) {
	r := rolledRoom(t, 41)
	p1 := r.findPlayer("p1")

	// 白手起家：2×3 + 3
	giveResources(p1, map[ResourceType]int{ResourceGold: 100})
	price, err := r.BuyFromBlackMarket("p1", ResourceDiamond)
	if err != nil {
		t.Fatal(err)
	}
	if price != 9 {
		t.Errorf("无建筑买钻石应 9 金币，实际 %d", price)
	}

	// 有路：+2，道路档不挑位置
	placeBuilding(t, r, "p1", BuildingRoad, 0, 0, 0)
	if price, _ = r.BuyFromBlackMarket("p1", ResourceFood); price != 4 {
		t.Errorf("只有道路买食物应 4 金币，实际 %d", price)
	}

	// 村庄在农田角上：+1
	q, rr, vi := freeVertexNear(t, r, ResourceFood, true)
	placeBuilding(t, r, "p1", BuildingSettlement, q, rr, vi)
	if price, _ = r.BuyFromBlackMarket("p1", ResourceFood); price != 3 {
		t.Errorf("产地有村庄买食物应 3 金币，实际 %d", price)
	}

	// 城市盖上产地：免加价
	q, rr, vi = freeVertexNear(t, r, ResourceFood, true)
	placeBuilding(t, r, "p1", BuildingCity, q, rr, vi)
	if price, _ = r.BuyFromBlackMarket("p1", ResourceFood); price != 2 {
		t.Errorf("产地有城市买食物应 2 金币，实际 %d", price)
	}
}

func TestBlackMarketSurchargeIsLocationBound(t *testing.T) {
	// 城市不挨着矿山就吃不到免加价档
	r := rolledRoom(t, 41)
	p1 := r.findPlayer("p1")
	giveResources(p1, map[ResourceType]int{ResourceGold: 100})

	q, rr, vi := freeVertexNear(t, r, ResourceDiamond, false)
	placeBuilding(t, r, "p1", BuildingCity, q, rr, vi)

	price, err := r.BuyFromBlackMarket("p1", ResourceDiamond)
	if err != nil {
		t.Fatal(err)
	}
	if price != 9 {
		t.Errorf("产地之外的城市不该降档，买钻石应 9 金币，实际 %d", price)
	}

	// 同一座城市对它真正挨着的资源照常免加价
	vid, _ := r.Board.VertexID(q, rr, vi)
	for _, ti := range r.Board.Vertices[vid].Tiles {
		res, ok := TerrainResource(r.Board.Tiles[ti].Terrain)
		if !ok {
			continue
		}
		if price, _ := r.BuyFromBlackMarket("p1", res); price != sellRates[res]*2 {
			t.Errorf("城市所在产地的资源应免加价，实际 %d", price)
		}
		break
	}
}

func TestBlackMarketNeedsGold(t *testing.T) {
	r := rolledRoom(t, 41)
	if _, err := r.BuyFromBlackMarket("p1", ResourceFood); !errors.Is(err, ErrRule) {
		t.Errorf("金币不足应被拒绝，实际 %v", err)
	}
}

func TestBuyVictoryPoint(t *testing.T) {
	r := rolledRoom(t, 41)
	p1 := r.findPlayer("p1")
	giveResources(p1, map[ResourceType]int{ResourceGold: 70})

	if err := r.BuyVictoryPoint("p1"); err != nil {
		t.Fatal(err)
	}
	if p1.Resources[ResourceGold] != 37 || p1.PurchasedVPs != 1 {
		t.Error("第一次购买账目不对")
	}
	if err := r.BuyVictoryPoint("p1"); err != nil {
		t.Fatal(err)
	}
	// 第三次超出上限
	giveResources(p1, map[ResourceType]int{ResourceGold: 50})
	if err := r.BuyVictoryPoint("p1"); !errors.Is(err, ErrRule) {
		t.Errorf("超过购买上限应被拒绝，实际 %v", err)
	}
	if p1.VictoryPoints < 2 {
		t.Errorf("购买的胜利点应计入总分，实际 %d", p1.VictoryPoints)
	}
}

func TestP2PTradeLifecycle(t *testing.T) {
	r := rolledRoom(t, 41)
	p1 := r.findPlayer("p1")
	p2 := r.findPlayer("p2")
	giveResources(p1, map[ResourceType]int{ResourceLumber: 2})
	giveResources(p2, map[ResourceType]int{ResourceDiamond: 1})

	offer, err := r.CreateP2PTrade("p1",
		map[ResourceType]int{ResourceLumber: 2},
		map[ResourceType]int{ResourceDiamond: 1})
	if err != nil {
		t.Fatal(err)
	}
	if r.TradeOffer == nil {
		t.Fatal("报价未挂出")
	}
	// 同时只能挂一个
	if _, err := r.CreateP2PTrade("p1", map[ResourceType]int{ResourceLumber: 1}, nil); !errors.Is(err, ErrConflict) {
		t.Errorf("重复挂单应被拒绝，实际 %v", err)
	}

	if _, err := r.AcceptP2PTrade("p1", offer.ID); !errors.Is(err, ErrRule) {
		t.Errorf("报价方不能接自己的单，实际 %v", err)
	}
	if _, err := r.AcceptP2PTrade("p3", offer.ID); !errors.Is(err, ErrRule) {
		t.Errorf("库存不足的玩家接单应被拒绝，实际 %v", err)
	}
	if _, err := r.AcceptP2PTrade("p2", offer.ID); err != nil {
		t.Fatal(err)
	}

	if err := r.FinalizeP2PTrade("p2", offer.ID, "p2"); !errors.Is(err, ErrRule) {
		t.Errorf("只有报价方能选人成交，实际 %v", err)
	}
	if err := r.FinalizeP2PTrade("p1", offer.ID, "p3"); !errors.Is(err, ErrRule) {
		t.Errorf("没接单的人不能被选中，实际 %v", err)
	}
	if err := r.FinalizeP2PTrade("p1", offer.ID, "p2"); err != nil {
		t.Fatal(err)
	}
	if p1.Resources[ResourceDiamond] != 1 || p1.Resources[ResourceLumber] != 0 {
		t.Error("报价方结算不对")
	}
	if p2.Resources[ResourceLumber] != 2 || p2.Resources[ResourceDiamond] != 0 {
		t.Error("接单方结算不对")
	}
	if r.TradeOffer != nil {
		t.Error("成交后报价应清空")
	}
}

// 接单后资源被花掉，成交时的二次校验要拦下这笔交易
func TestP2PFinalizeStaleAcceptor(t *testing.T) {
	r := rolledRoom(t, 41)
	giveResources(r.findPlayer("p1"), map[ResourceType]int{ResourceLumber: 1})
	giveResources(r.findPlayer("p2"), map[ResourceType]int{ResourceDiamond: 1})

	offer, err := r.CreateP2PTrade("p1",
		map[ResourceType]int{ResourceLumber: 1},
		map[ResourceType]int{ResourceDiamond: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.AcceptP2PTrade("p2", offer.ID); err != nil {
		t.Fatal(err)
	}
	r.findPlayer("p2").Resources[ResourceDiamond] = 0

	if err := r.FinalizeP2PTrade("p1", offer.ID, "p2"); !errors.Is(err, ErrConflict) {
		t.Errorf("失效的接单应报状态冲突，实际 %v", err)
	}
}

func TestP2PTradeCancelAndIDCheck(t *testing.T) {
	r := rolledRoom(t, 41)
	giveResources(r.findPlayer("p1"), map[ResourceType]int{ResourceLumber: 1})

	if _, err := r.AcceptP2PTrade("p2", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("没有报价时应报不存在，实际 %v", err)
	}
	offer, err := r.CreateP2PTrade("p1", map[ResourceType]int{ResourceLumber: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.AcceptP2PTrade("p2", "stale-id"); !errors.Is(err, ErrConflict) {
		t.Errorf("报价号对不上应报冲突，实际 %v", err)
	}
	if err := r.CancelP2PTrade("p2", offer.ID); !errors.Is(err, ErrRule) {
		t.Errorf("只有报价方能撤单，实际 %v", err)
	}
	if err := r.CancelP2PTrade("p1", offer.ID); err != nil {
		t.Fatal(err)
	}
	if r.TradeOffer != nil {
		t.Error("撤单后报价应清空")
	}
}
