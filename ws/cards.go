package ws

import (
	"go-settlers/dto"
	"go-settlers/game"
)

// 买发展卡：只把卡面回给买家本人，其他人只看到同步后的张数
func handleBuyCard(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	card, err := room.BuyDevelopmentCard(pc.PlayerID)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	sendTo(pc.Conn, buildMessage("card_bought", map[string]interface{}{
		"card": card,
	}))
}

func handlePlayCard(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.PlayCardPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	result, err := room.PlayDevelopmentCard(pc.PlayerID, game.DevCardType(payload.Card), game.ResourceType(payload.Resource))
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	data := map[string]interface{}{
		"playerId": pc.PlayerID,
		"card":     result.Card,
	}
	if len(result.Taken) > 0 {
		data["taken"] = result.Taken
		data["resource"] = payload.Resource
	}
	broadcastRaw(room.ID, buildMessage("card_played", data))
}

func handleTraderPick(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.TraderPickPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	remaining, err := room.TraderPickResource(pc.PlayerID, game.ResourceType(payload.Resource))
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	sendTo(pc.Conn, buildMessage("trader_picked", map[string]interface{}{
		"resource":  payload.Resource,
		"remaining": remaining,
	}))
}
