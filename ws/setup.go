package ws

import (
	"log"

	"go-settlers/dto"
	"go-settlers/game"
)

// 房主开局，进入先手骰阶段
func handleStartGame(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	if err := room.StartGame(pc.PlayerID); err != nil {
		sendError(pc.Conn, err)
		return
	}
	log.Printf("✅ 房间 %s 开始对局，%d 名玩家\n", room.ID, len(room.Players))
	broadcastRaw(room.ID, buildMessage("game_started", map[string]interface{}{
		"roomId": room.ID,
	}))
}

// 先手骰：全员掷完后广播最终顺位，有平局就提示重掷
func handleRollStartDice(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	result, err := room.RollStartDice(pc.PlayerID)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("start_roll", map[string]interface{}{
		"playerId": result.PlayerID,
		"die1":     result.Die1,
		"die2":     result.Die2,
		"total":    result.Total,
		"finished": result.Finished,
		"tied":     result.Tied,
	}))
	if result.Finished {
		log.Printf("✅ 房间 %s 先手骰结束，%s 先行动\n", room.ID, room.ActivePlayerID)
	}
}
