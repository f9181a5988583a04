package game

import "golang.org/x/exp/rand"

// 购买发展卡的成本
var devCardCost = map[ResourceType]int{
	ResourceDiamond: 1,
	ResourceTextile: 1,
	ResourceFood:    1,
}

// 两种牌堆配方：标准局 30 张，5 人局 45 张
var deckRecipes = map[bool]map[DevCardType]int{
	false: {
		CardMercenary: 14,
		CardVictoryPoint:   5,
		CardSabotage:  2,
		CardCartel:    2,
		CardInsurance: 2,
		CardEngineer:  2,
		CardTrader:    2,
		CardMercator:  1,
	},
	true: {
		CardMercenary: 21,
		CardVictoryPoint:   7,
		CardSabotage:  3,
		CardCartel:    3,
		CardInsurance: 3,
		CardEngineer:  3,
		CardTrader:    3,
		CardMercator:  2,
	},
}

// newDeck 按配方生成洗好的牌堆
func newDeck(large bool, rng *rand.Rand) []DevCardType {
	recipe := deckRecipes[large]
	deck := make([]DevCardType, 0, 45)
	for _, ct := range allCardTypes {
		for i := 0; i < recipe[ct]; i++ {
			deck = append(deck, ct)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// BuyDevelopmentCard 从牌堆顶买一张发展卡。本回合买的卡进入
// NewDevCards，回合结束才转入可用手牌。
func (r *Room) BuyDevelopmentCard(playerID string) (DevCardType, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return "", err
	}
	if err := r.requireActive(playerID); err != nil {
		return "", err
	}
	if err := r.requirePhase(PhaseWaiting); err != nil {
		return "", err
	}
	if len(r.deck) == 0 {
		return "", ruleErr("牌堆已经空了")
	}
	if err := r.chargePlayer(playerID, devCardCost); err != nil {
		return "", err
	}
	card := r.deck[0]
	r.deck = r.deck[1:]

	p := r.findPlayer(playerID)
	p.NewDevCards[card]++
	if card == CardVictoryPoint {
		r.updateAllVictoryPoints()
	}
	return card, nil
}

// CardPlayResult 打出发展卡的结果
type CardPlayResult struct {
	Card  DevCardType    `json:"card"`
	Taken map[string]int `json:"taken,omitempty"` // 商贾：向各对手征收到的资源/金币合计
}

// PlayDevelopmentCard 打出一张可用手牌。当回合买的卡不能打；
// 胜利点卡与保单是被动卡，不能主动打出。商贾需要指定一种资源。
func (r *Room) PlayDevelopmentCard(playerID string, card DevCardType, targetResource ResourceType) (*CardPlayResult, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return nil, err
	}
	if err := r.requireActive(playerID); err != nil {
		return nil, err
	}
	if err := r.requirePhase(PhaseWaiting); err != nil {
		return nil, err
	}
	p := r.findPlayer(playerID)
	if p.DevCards[card] <= 0 {
		if p.NewDevCards[card] > 0 {
			return nil, ruleErr("这回合刚买的卡要下回合才能打")
		}
		return nil, ruleErr("没有这张卡")
	}

	result := &CardPlayResult{Card: card}
	switch card {
	case CardMercenary:
		p.ArmySize++
		r.updateLargestArmyHolder()
		r.SubPhase = robberPhase()
	case CardSabotage:
		r.SubPhase = sabotagePhase()
	case CardEngineer:
		r.SubPhase = freeRoadPhase()
	case CardTrader:
		r.SubPhase = traderPickPhase()
	case CardCartel:
		if r.MonopolistID != "" {
			return nil, ruleErr("已经有卡特尔在生效")
		}
		r.MonopolistID = playerID
	case CardMercator:
		taken, err := r.executeMercator(p, targetResource)
		if err != nil {
			return nil, err
		}
		result.Taken = taken
	case CardVictoryPoint, CardInsurance:
		return nil, ruleErr("这张卡是被动生效的，不能打出")
	default:
		return nil, ruleErr("未知的发展卡")
	}

	p.DevCards[card]--
	r.updateAllVictoryPoints()
	return result, nil
}

// executeMercator 商贾：指定一种资源，向每个对手同步征收。
// 存量 ≥2 的交 2 份；恰好 1 份的交这 1 份再罚 1 枚金币；
// 一份都没有的只罚金币，最多 2 枚（按其金币存量封顶）。
func (r *Room) executeMercator(p *Player, res ResourceType) (map[string]int, error) {
	if !isTradeable(res) {
		return nil, ruleErr("商贾只能指定可交易资源")
	}

	taken := map[string]int{}
	takeRes := func(target *Player, n int) {
		target.Resources[res] -= n
		p.Resources[res] += n
		taken[string(res)] += n
	}
	takeGold := func(target *Player, n int) {
		g := min(n, target.Resources[ResourceGold])
		if g > 0 {
			target.Resources[ResourceGold] -= g
			p.Resources[ResourceGold] += g
			taken[string(ResourceGold)] += g
		}
	}

	for _, target := range r.Players {
		if target.ID == p.ID {
			continue
		}
		switch stock := target.Resources[res]; {
		case stock >= 2:
			takeRes(target, 2)
		case stock == 1:
			takeRes(target, 1)
			takeGold(target, 1)
		default:
			takeGold(target, 2)
		}
	}
	return taken, nil
}

// TraderPickResource 商队：逐个挑选共 3 份任意资源（金币除外）
func (r *Room) TraderPickResource(playerID string, res ResourceType) (int, error) {
	if err := r.requireStatus(StatusPlaying); err != nil {
		return 0, err
	}
	if err := r.requireActive(playerID); err != nil {
		return 0, err
	}
	if err := r.requirePhase(PhaseTraderPick); err != nil {
		return 0, err
	}
	if res == ResourceGold {
		return 0, ruleErr("商队不能挑选金币")
	}
	if !isTradeable(res) {
		return 0, ruleErr("不认识的资源类型")
	}

	p := r.findPlayer(playerID)
	p.Resources[res]++
	r.SubPhase.Remaining--
	if r.SubPhase.Remaining <= 0 {
		r.SubPhase = waitingPhase()
	}
	return r.SubPhase.Remaining, nil
}
