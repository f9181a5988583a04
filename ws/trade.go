package ws

import (
	"go-settlers/dto"
	"go-settlers/game"
)

func handleBankTrade(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BankTradePayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	gold, err := room.TradeWithBank(pc.PlayerID, toResourceMap(payload.Offer))
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	sendTo(pc.Conn, buildMessage("bank_traded", map[string]interface{}{
		"gold": gold,
	}))
}

func handleBlackMarketBuy(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BlackMarketPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	price, err := room.BuyFromBlackMarket(pc.PlayerID, game.ResourceType(payload.Resource))
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	sendTo(pc.Conn, buildMessage("black_market_bought", map[string]interface{}{
		"resource": payload.Resource,
		"price":    price,
	}))
}

func handleBuyVictoryPoint(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	if err := room.BuyVictoryPoint(pc.PlayerID); err != nil {
		sendError(pc.Conn, err)
	}
}

// 玩家间交易：报价、响应、成交、撤单都广播给全房间
func handleTradeCreate(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.TradeCreatePayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	offer, err := room.CreateP2PTrade(pc.PlayerID, toResourceMap(payload.Give), toResourceMap(payload.Want))
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("trade_created", map[string]interface{}{
		"offer": offer,
	}))
}

func handleTradeAccept(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.TradeActionPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	offer, err := room.AcceptP2PTrade(pc.PlayerID, payload.OfferID)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("trade_accepted", map[string]interface{}{
		"offer":      offer,
		"acceptorId": pc.PlayerID,
	}))
}

func handleTradeFinalize(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.TradeActionPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if err := room.FinalizeP2PTrade(pc.PlayerID, payload.OfferID, payload.AcceptorID); err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("trade_finalized", map[string]interface{}{
		"offerId":    payload.OfferID,
		"acceptorId": payload.AcceptorID,
	}))
}

func handleTradeCancel(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.TradeActionPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if err := room.CancelP2PTrade(pc.PlayerID, payload.OfferID); err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("trade_cancelled", map[string]interface{}{
		"offerId": payload.OfferID,
	}))
}
