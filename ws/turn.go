package ws

import (
	"log"

	"go-settlers/dto"
	"go-settlers/game"
)

// 掷骰：结果单独广播一条，资源变化走整体同步
func handleRollDice(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	result, err := room.RollDice(pc.PlayerID)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("dice_rolled", map[string]interface{}{
		"playerId": pc.PlayerID,
		"die1":     result.Die1,
		"die2":     result.Die2,
		"total":    result.Total,
	}))
}

func handleEndTurn(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	if err := room.EndTurn(pc.PlayerID); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if room.WinnerID != "" {
		for _, p := range room.Players {
			if p.ID == room.WinnerID {
				log.Printf("🏆 房间 %s 对局结束，%s 获胜\n", room.ID, p.Name)
				broadcastRaw(room.ID, buildMessage("game_over", map[string]interface{}{
					"winnerId":   p.ID,
					"winnerName": p.Name,
				}))
				break
			}
		}
	}
}

// 移动收税官：唯一候选人会被引擎直接打劫，结果广播出去
func handleMoveRobber(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.MoveRobberPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	move, err := room.MoveRobber(pc.PlayerID, payload.Q, payload.R)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	if move.Robbery != nil {
		broadcastRobbery(room.ID, move.Robbery)
	} else if len(move.Victims) > 1 {
		broadcastRaw(room.ID, buildMessage("choose_victim", map[string]interface{}{
			"playerId": pc.PlayerID,
			"victims":  move.Victims,
		}))
	}
}

func handleRobPlayer(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.RobPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	report, err := room.RobPlayer(pc.PlayerID, payload.TargetID)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRobbery(room.ID, report)
}

func broadcastRobbery(roomID string, report *game.RobberyReport) {
	log.Printf("💸 %s 抢了 %s\n", report.ThiefName, report.VictimName)
	broadcastRaw(roomID, buildMessage("robbery", map[string]interface{}{
		"thiefId":    report.ThiefID,
		"thiefName":  report.ThiefName,
		"victimId":   report.VictimID,
		"victimName": report.VictimName,
		"resource":   report.Resource,
		"gold":       report.Gold,
	}))
}

// 房主踢人：断掉被踢者的连接并广播
func handleBanPlayer(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BanPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	name, err := room.BanPlayer(pc.PlayerID, payload.TargetID)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	newList := []dto.PlayerConn{}
	for _, other := range Rooms[room.ID] {
		if other.PlayerID == payload.TargetID {
			other.Conn.Close()
			continue
		}
		newList = append(newList, other)
	}
	Rooms[room.ID] = newList
	broadcastRaw(room.ID, buildMessage("player_banned", map[string]interface{}{
		"targetId":   payload.TargetID,
		"targetName": name,
	}))
}
