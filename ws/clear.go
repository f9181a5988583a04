package ws

import (
	"log"
	"time"

	"go-settlers/game"
	"go-settlers/repository"
)

// ScheduleDailyRoomReset 每天凌晨 4 点回收废弃房间：
// 没人的、或已经打完的，连同 Redis 里的注册信息一起清掉。
func ScheduleDailyRoomReset() {
	for {
		duration := durationUntilNext4AM()
		log.Printf("距离下次清理还有：%v\n", duration)

		time.Sleep(duration)

		log.Println("⏰ 开始清理废弃房间")
		clearStaleRooms()
	}
}

func durationUntilNext4AM() time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 4, 0, 0, 0, now.Location())

	// 如果当前时间已过4点，则设置为第二天的4点
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

func clearStaleRooms() {
	roomLock.Lock()
	defer roomLock.Unlock()

	for id, room := range Managers {
		if !room.IsEmpty() && room.Status != game.StatusFinished && len(Rooms[id]) > 0 {
			continue
		}
		for _, pc := range Rooms[id] {
			pc.Conn.Close()
		}
		delete(Rooms, id)
		delete(Managers, id)
		if err := DeleteRoomMeta(repository.Rdb, id); err != nil {
			log.Println("❌ 清理房间 Redis 数据失败:", err)
		}
		log.Printf("✅ 已回收房间 %s\n", id)
	}
}
