package game

import (
	"strings"

	"github.com/google/uuid"
)

// 银行收购价：每份资源换多少金币
var sellRates = map[ResourceType]int{
	ResourceFood:     1,
	ResourceLumber:   1,
	ResourceConcrete: 2,
	ResourceTextile:  2,
	ResourceDiamond:  3,
}

// 黑市附加费按买家在产地的最高级建筑定档
const (
	surchargeCity       = 0
	surchargeSettlement = 1
	surchargeRoad       = 2
	surchargeNone       = 3
)

// 金币购买胜利点
const (
	vpPriceGold  = 33
	maxVPForGold = 2
)

// TradeWithBank 把任意数量的资源卖给银行换金币，按固定收购价结算
func (r *Room) TradeWithBank(playerID string, offer map[ResourceType]int) (int, error) {
	if err := r.requireTradeWindow(playerID); err != nil {
		return 0, err
	}
	p := r.findPlayer(playerID)

	gold := 0
	for res, count := range offer {
		if count <= 0 {
			return 0, ruleErr("出售数量必须是正数")
		}
		rate, ok := sellRates[res]
		if !ok {
			return 0, ruleErr("银行不收这种东西: %s", res)
		}
		if p.Resources[res] < count {
			return 0, ruleErr("%s 不够卖", res)
		}
		gold += rate * count
	}
	if gold == 0 {
		return 0, ruleErr("空手不能交易")
	}
	for res, count := range offer {
		p.Resources[res] -= count
	}
	p.Resources[ResourceGold] += gold
	return gold, nil
}

// BuyFromBlackMarket 用金币从黑市买一份资源。单价是银行收购价的
// 两倍再加附加费：在产出该资源的地块角上有城市免加价、有村庄 +1；
// 产地没有建筑但修过路 +2，什么都没有 +3。
func (r *Room) BuyFromBlackMarket(playerID string, res ResourceType) (int, error) {
	if err := r.requireTradeWindow(playerID); err != nil {
		return 0, err
	}
	rate, ok := sellRates[res]
	if !ok {
		return 0, ruleErr("黑市不卖这种东西: %s", res)
	}
	p := r.findPlayer(playerID)

	price := rate*2 + r.marketSurcharge(playerID, res)
	if p.Resources[ResourceGold] < price {
		return 0, ruleErr("金币不够，需要 %d 枚", price)
	}
	p.Resources[ResourceGold] -= price
	p.Resources[res]++
	return price, nil
}

func (r *Room) marketSurcharge(playerID string, res ResourceType) int {
	surcharge := surchargeNone
	hasRoad := false
	for _, b := range r.Buildings {
		if b.OwnerID != playerID {
			continue
		}
		switch b.Type {
		case BuildingRoad:
			hasRoad = true
		case BuildingCity, BuildingSettlement:
			if !r.vertexProduces(b.VertexID, res) {
				continue
			}
			if b.Type == BuildingCity {
				return surchargeCity
			}
			surcharge = min(surcharge, surchargeSettlement)
		}
	}
	// 道路档不看位置
	if surcharge == surchargeNone && hasRoad {
		surcharge = surchargeRoad
	}
	return surcharge
}

// vertexProduces 顶点是否挨着产出该资源的地块
func (r *Room) vertexProduces(vertexID int, res ResourceType) bool {
	for _, ti := range r.Board.Vertices[vertexID].Tiles {
		if pr, ok := TerrainResource(r.Board.Tiles[ti].Terrain); ok && pr == res {
			return true
		}
	}
	return false
}

// BuyVictoryPoint 花 33 金币直接买 1 胜利点，每人全场最多买 2 次
func (r *Room) BuyVictoryPoint(playerID string) error {
	if err := r.requireTradeWindow(playerID); err != nil {
		return err
	}
	p := r.findPlayer(playerID)
	if p.PurchasedVPs >= maxVPForGold {
		return ruleErr("金币换胜利点最多 %d 次", maxVPForGold)
	}
	if p.Resources[ResourceGold] < vpPriceGold {
		return ruleErr("金币不够，需要 %d 枚", vpPriceGold)
	}
	p.Resources[ResourceGold] -= vpPriceGold
	p.PurchasedVPs++
	r.updateAllVictoryPoints()
	return nil
}

// requireTradeWindow 各类交易共用的前置条件：轮到自己、已掷骰、
// 没有待处理的子阶段
func (r *Room) requireTradeWindow(playerID string) error {
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
		return ruleErr("要先掷骰子")
	}
	return nil
}

// CreateP2PTrade 行动玩家挂出一个报价，同一时间每个房间只能有一个
func (r *Room) CreateP2PTrade(playerID string, give, want map[ResourceType]int) (*TradeOffer, error) {
	if err := r.requireTradeWindow(playerID); err != nil {
		return nil, err
	}
	if r.TradeOffer != nil {
		return nil, conflictErr("已经有一个报价挂着了")
	}
	if err := validateTradeSide(give); err != nil {
		return nil, err
	}
	if err := validateTradeSide(want); err != nil {
		return nil, err
	}
	if len(give) == 0 && len(want) == 0 {
		return nil, ruleErr("报价不能两边都是空的")
	}
	p := r.findPlayer(playerID)
	for res, count := range give {
		if p.Resources[res] < count {
			return nil, ruleErr("%s 不够，挂不出这个报价", res)
		}
	}

	r.TradeOffer = &TradeOffer{
		ID:        strings.ReplaceAll(uuid.New().String(), "-", "")[:8],
		OffererID: playerID,
		Give:      give,
		Want:      want,
	}
	return r.TradeOffer, nil
}

func validateTradeSide(side map[ResourceType]int) error {
	for res, count := range side {
		if count <= 0 {
			return ruleErr("数量必须是正数")
		}
		if res == ResourceGold {
			continue
		}
		if _, ok := sellRates[res]; !ok {
			return ruleErr("不认识的资源类型: %s", res)
		}
	}
	return nil
}

// AcceptP2PTrade 其他玩家表示愿意按报价成交，挂到候选名单里
func (r *Room) AcceptP2PTrade(playerID, offerID string) (*TradeOffer, error) {
	offer, err := r.currentOffer(offerID)
	if err != nil {
		return nil, err
	}
	if playerID == offer.OffererID {
		return nil, ruleErr("不能接自己的报价")
	}
	p, err := r.player(playerID)
	if err != nil {
		return nil, err
	}
	for res, count := range offer.Want {
		if p.Resources[res] < count {
			return nil, ruleErr("%s 不够，接不了这个报价", res)
		}
	}
	for _, id := range offer.Acceptors {
		if id == playerID {
			return nil, conflictErr("已经接过这个报价了")
		}
	}
	offer.Acceptors = append(offer.Acceptors, playerID)
	return offer, nil
}

// FinalizeP2PTrade 报价方从候选名单里挑一个人成交。成交前双方的
// 库存都重新校验一遍，接单之后资源被花掉的情况会在这里被拦下。
func (r *Room) FinalizeP2PTrade(playerID, offerID, acceptorID string) error {
	offer, err := r.currentOffer(offerID)
	if err != nil {
		return err
	}
	if playerID != offer.OffererID {
		return ruleErr("只有报价方能选人成交")
	}
	listed := false
	for _, id := range offer.Acceptors {
		if id == acceptorID {
			listed = true
			break
		}
	}
	if !listed {
		return ruleErr("对方没有接过这个报价")
	}
	offerer, err := r.player(offer.OffererID)
	if err != nil {
		return err
	}
	acceptor, err := r.player(acceptorID)
	if err != nil {
		return err
	}
	for res, count := range offer.Give {
		if offerer.Resources[res] < count {
			return conflictErr("报价方的 %s 已经不够了", res)
		}
	}
	for res, count := range offer.Want {
		if acceptor.Resources[res] < count {
			return conflictErr("对方的 %s 已经不够了", res)
		}
	}
	for res, count := range offer.Give {
		offerer.Resources[res] -= count
		acceptor.Resources[res] += count
	}
	for res, count := range offer.Want {
		acceptor.Resources[res] -= count
		offerer.Resources[res] += count
	}
	r.TradeOffer = nil
	return nil
}

// CancelP2PTrade 报价方撤单
func (r *Room) CancelP2PTrade(playerID, offerID string) error {
	offer, err := r.currentOffer(offerID)
	if err != nil {
		return err
	}
	if playerID != offer.OffererID {
		return ruleErr("只有报价方能撤单")
	}
	r.TradeOffer = nil
	return nil
}

func (r *Room) currentOffer(offerID string) (*TradeOffer, error) {
	if r.TradeOffer == nil {
		return nil, notFoundErr("当前没有挂出的报价")
	}
	if r.TradeOffer.ID != offerID {
		return nil, conflictErr("报价已经变了，请刷新")
	}
	return r.TradeOffer, nil
}
