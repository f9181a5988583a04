package ws

import (
	"go-settlers/dto"
	"go-settlers/game"
)

func handleBuildSettlement(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BuildPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if err := room.BuildSettlement(pc.PlayerID, payload.Q, payload.R, payload.VertexIndex); err != nil {
		sendError(pc.Conn, err)
	}
}

func handleBuildRoad(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BuildPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if err := room.BuildRoad(pc.PlayerID, payload.Q, payload.R, payload.EdgeIndex); err != nil {
		sendError(pc.Conn, err)
	}
}

func handleUpgradeCity(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BuildPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if err := room.UpgradeSettlement(pc.PlayerID, payload.Q, payload.R, payload.VertexIndex); err != nil {
		sendError(pc.Conn, err)
	}
}

// 破坏道路：保险挡下与否都单独广播一条结果
func handleSabotageRoad(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BuildPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	result, err := room.SabotageRoad(pc.PlayerID, payload.Q, payload.R, payload.EdgeIndex)
	if err != nil {
		sendError(pc.Conn, err)
		return
	}
	broadcastRaw(room.ID, buildMessage("sabotage_result", map[string]interface{}{
		"playerId":   pc.PlayerID,
		"blocked":    result.Blocked,
		"victimId":   result.VictimID,
		"victimName": result.VictimName,
	}))
}

func handleRepairDebris(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{}) {
	var payload dto.BuildPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		sendError(pc.Conn, err)
		return
	}
	if err := room.RepairDebris(pc.PlayerID, payload.Q, payload.R, payload.EdgeIndex); err != nil {
		sendError(pc.Conn, err)
	}
}
