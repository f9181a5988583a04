package ws

import (
	"encoding/json"
	"testing"

	"go-settlers/dto"
	"go-settlers/game"
)

// 搭一个纯内存房间：引擎直连，玩家全挂虚拟连接
func newWsRoom(t *testing.T, n int, seed uint64) (*game.Room, []*VirtualConn) {
	t.Helper()
	room := game.NewRoom("testroom", "测试房", "", seed)
	RegisterRoom(room)
	t.Cleanup(func() {
		roomLock.Lock()
		delete(Rooms, room.ID)
		delete(Managers, room.ID)
		roomLock.Unlock()
	})

	colors := []game.PlayerColor{game.ColorRed, game.ColorBlue, game.ColorOrange, game.ColorWhite, game.ColorGreen}
	names := []string{"甲", "乙", "丙", "丁", "戊"}
	conns := make([]*VirtualConn, n)
	for i := 0; i < n; i++ {
		id := names[i] + "-conn"
		if err := room.AddPlayer(id, "u"+names[i], names[i], colors[i]); err != nil {
			t.Fatalf("加入玩家失败: %v", err)
		}
		conns[i] = &VirtualConn{PlayerID: id, RoomID: room.ID}
		roomLock.Lock()
		Rooms[room.ID] = append(Rooms[room.ID], dto.PlayerConn{
			PlayerID: id, UserID: "u" + names[i], Name: names[i],
			Conn: conns[i], Online: true,
		})
		roomLock.Unlock()
	}
	return room, conns
}

func connOf(t *testing.T, roomID, playerID string) *dto.PlayerConn {
	t.Helper()
	roomLock.Lock()
	defer roomLock.Unlock()
	for i, pc := range Rooms[roomID] {
		if pc.PlayerID == playerID {
			return &Rooms[roomID][i]
		}
	}
	t.Fatalf("找不到连接 %s", playerID)
	return nil
}

// lastMessages 解出一个虚拟连接收到的所有消息 type
func messageTypes(t *testing.T, vc *VirtualConn) []string {
	t.Helper()
	types := make([]string, 0, len(vc.Sent))
	for _, raw := range vc.Sent {
		var msg map[string]interface{}
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("消息不是合法 JSON: %v", err)
		}
		tp, _ := msg["type"].(string)
		types = append(types, tp)
	}
	return types
}

func hasMessage(t *testing.T, vc *VirtualConn, want string) bool {
	for _, tp := range messageTypes(t, vc) {
		if tp == want {
			return true
		}
	}
	return false
}

func TestDispatchStartGame(t *testing.T) {
	room, conns := newWsRoom(t, 3, 7)
	host := connOf(t, room.ID, room.HostID)

	dispatch(host, room.ID, "start_game", map[string]interface{}{"type": "start_game"})

	if room.Status != game.StatusRollingForStart {
		t.Fatalf("开局后状态应为先手骰，实际 %s", room.Status)
	}
	// 所有人都该收到开局广播和一次整体同步
	for i, vc := range conns {
		if !hasMessage(t, vc, "game_started") {
			t.Errorf("玩家 %d 没收到 game_started", i)
		}
		if !hasMessage(t, vc, "sync") {
			t.Errorf("玩家 %d 没收到 sync", i)
		}
	}
}

func TestDispatchRejectsNonHostStart(t *testing.T) {
	room, conns := newWsRoom(t, 3, 7)
	outsider := connOf(t, room.ID, room.Players[1].ID)

	dispatch(outsider, room.ID, "start_game", map[string]interface{}{"type": "start_game"})

	if room.Status != game.StatusLobby {
		t.Fatalf("非房主不该能开局")
	}
	if !hasMessage(t, conns[1], "error") {
		t.Fatal("发起者应收到错误提示")
	}
	// 错误只回给发起者
	if hasMessage(t, conns[0], "error") {
		t.Fatal("其他玩家不该收到错误")
	}
}

func TestDispatchUnknownType(t *testing.T) {
	room, conns := newWsRoom(t, 2, 7)
	host := connOf(t, room.ID, room.HostID)

	dispatch(host, room.ID, "no_such_op", map[string]interface{}{"type": "no_such_op"})

	if len(conns[0].Sent) != 0 {
		t.Fatalf("未知消息不该触发任何下发，收到了 %v", messageTypes(t, conns[0]))
	}
}

func TestDispatchStartRollFlow(t *testing.T) {
	room, conns := newWsRoom(t, 3, 7)
	host := connOf(t, room.ID, room.HostID)
	dispatch(host, room.ID, "start_game", map[string]interface{}{"type": "start_game"})

	for room.Status == game.StatusRollingForStart {
		pc := connOf(t, room.ID, room.ActivePlayerID)
		dispatch(pc, room.ID, "roll_start_dice", map[string]interface{}{"type": "roll_start_dice"})
	}

	if room.Status != game.StatusSetupRound1 {
		t.Fatalf("先手骰结束后应进入铺设第一轮，实际 %s", room.Status)
	}
	if !hasMessage(t, conns[0], "start_roll") {
		t.Fatal("所有人应收到先手骰广播")
	}
}

func TestDispatchBuildPayloadDecoding(t *testing.T) {
	room, _ := newWsRoom(t, 3, 7)
	host := connOf(t, room.ID, room.HostID)
	dispatch(host, room.ID, "start_game", map[string]interface{}{"type": "start_game"})
	for room.Status == game.StatusRollingForStart {
		pc := connOf(t, room.ID, room.ActivePlayerID)
		dispatch(pc, room.ID, "roll_start_dice", map[string]interface{}{"type": "roll_start_dice"})
	}

	// JSON 数字会解析成 float64，mapstructure 得转回 int
	first := connOf(t, room.ID, room.ActivePlayerID)
	dispatch(first, room.ID, "build_settlement", map[string]interface{}{
		"type": "build_settlement", "q": float64(0), "r": float64(0), "vertexIndex": float64(0),
	})

	if len(room.Buildings) != 1 {
		t.Fatalf("铺设期第一座村庄应落地，实际建筑数 %d", len(room.Buildings))
	}
}

func TestDispatchBanPlayerDropsConn(t *testing.T) {
	room, conns := newWsRoom(t, 3, 7)
	host := connOf(t, room.ID, room.HostID)
	target := room.Players[2].ID

	dispatch(host, room.ID, "ban_player", map[string]interface{}{
		"type": "ban_player", "targetId": target,
	})

	if !room.IsBanned(target) {
		t.Fatal("目标应进入黑名单")
	}
	roomLock.Lock()
	for _, pc := range Rooms[room.ID] {
		if pc.PlayerID == target {
			t.Fatal("被踢玩家的连接应被移除")
		}
	}
	roomLock.Unlock()
	if !hasMessage(t, conns[0], "player_banned") {
		t.Fatal("踢人结果应广播")
	}
}

func TestPickColorSkipsUsed(t *testing.T) {
	room := game.NewRoom("colors", "配色", "", 1)
	if err := room.AddPlayer("a", "ua", "甲", game.ColorRed); err != nil {
		t.Fatal(err)
	}
	if got := pickColor(room, ""); got != game.ColorBlue {
		t.Fatalf("应自动补上第一个空闲颜色 blue，实际 %s", got)
	}
	if got := pickColor(room, "green"); got != game.ColorGreen {
		t.Fatalf("玩家自选颜色应原样返回，实际 %s", got)
	}
}

func TestDecodePayloadStringNumbers(t *testing.T) {
	var payload dto.BuildPayload
	err := decodePayload(map[string]interface{}{
		"q": "2", "r": "-1", "edgeIndex": float64(3),
	}, &payload)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if payload.Q != 2 || payload.R != -1 || payload.EdgeIndex != 3 {
		t.Fatalf("解码结果不对: %+v", payload)
	}
}
