package ws

import (
	"encoding/json"
	"log"

	"go-settlers/dto"
	"go-settlers/game"
	"go-settlers/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type messageHandler func(pc *dto.PlayerConn, room *game.Room, msgMap map[string]interface{})

var messageHandlers = map[string]messageHandler{
	"start_game":       handleStartGame,
	"roll_start_dice":  handleRollStartDice,
	"roll_dice":        handleRollDice,
	"end_turn":         handleEndTurn,
	"move_robber":      handleMoveRobber,
	"rob_player":       handleRobPlayer,
	"ban_player":       handleBanPlayer,
	"build_settlement": handleBuildSettlement,
	"build_road":       handleBuildRoad,
	"upgrade_city":     handleUpgradeCity,
	"sabotage_road":    handleSabotageRoad,
	"repair_debris":    handleRepairDebris,
	"buy_card":         handleBuyCard,
	"play_card":        handlePlayCard,
	"trader_pick":      handleTraderPick,
	"bank_trade":       handleBankTrade,
	"black_market_buy": handleBlackMarketBuy,
	"buy_vp":           handleBuyVictoryPoint,
	"trade_create":     handleTradeCreate,
	"trade_accept":     handleTradeAccept,
	"trade_finalize":   handleTradeFinalize,
	"trade_cancel":     handleTradeCancel,
}

// 持续监听客户端消息，每条消息处理完后同步一次房间状态
func listenAndDispatch(conn *websocket.Conn, pc *dto.PlayerConn, roomID string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Println("读取消息失败:", err)
			break
		}
		msgMap := make(map[string]interface{})
		if err := json.Unmarshal(msg, &msgMap); err != nil {
			log.Println("消息解析失败:", err)
			continue
		}
		msgType, ok := msgMap["type"].(string)
		if !ok {
			log.Println("⚠️ 消息缺少 type 字段")
			continue
		}
		dispatch(pc, roomID, msgType, msgMap)
	}
}

// dispatch 在房间锁内执行一条命令并广播最新状态。
// 引擎本身不加锁，串行化全靠这里。
func dispatch(pc *dto.PlayerConn, roomID, msgType string, msgMap map[string]interface{}) {
	roomLock.Lock()
	defer roomLock.Unlock()

	room, ok := Managers[roomID]
	if !ok {
		sendError(pc.Conn, game.ErrNotFound)
		return
	}
	handler, found := messageHandlers[msgType]
	if !found {
		log.Printf("⚠️ 未知的消息类型: %s", msgType)
		return
	}
	handler(pc, room, msgMap)
	broadcastRoomState(roomID)

	// 胜负只会在结束回合时判定，避免重复落档
	if msgType == "end_turn" && room.Status == game.StatusFinished && room.WinnerID != "" {
		archiveFinishedGame(room)
	}
}

// WebSocket 主入口（处理每个连接）
func HandleWebSocket(c *gin.Context) {
	conn, err := upgradeConnection(c)
	if err != nil {
		return
	}
	defer conn.Close()

	roomID := c.Query("roomID")
	if roomID == "" {
		log.Println("缺少 roomID")
		return
	}

	// 身份从 token 里取，颜色和房间密码走 query
	claims, err := utils.ParseAccessToken(c.Query("token"))
	if err != nil {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
			"message": "凭证无效或已过期",
		}))
		return
	}

	pc, joinErr := validateAndJoinRoom(roomID, claims.UserID, claims.Name, c.Query("color"), c.Query("password"), conn)
	if joinErr != nil {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
			"message": joinErr.Error(),
		}))
		return
	}
	defer cleanupOnDisconnect(roomID, pc.PlayerID, conn)

	playerCount := getRoomPlayerCount(roomID)
	log.Printf("玩家加入 room=%s，ID=%s，当前人数=%d/%d", roomID, pc.PlayerID, playerCount, game.MaxPlayers)

	BroadcastRoomState(roomID)
	listenAndDispatch(conn, pc, roomID)
}
