package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"go-settlers/entities"
	"go-settlers/game"
	"go-settlers/repository"

	"github.com/go-redis/redis/v8"
)

const recentRecordsKey = "settlers:records"
const maxRecentRecords = 50

// SetRoomMeta 把房间注册信息写进 Redis（room:{id}:info）
func SetRoomMeta(rdb *redis.Client, meta entities.RoomMeta) error {
	key := fmt.Sprintf("room:%s:info", meta.RoomID)
	err := rdb.HSet(repository.Ctx, key, map[string]interface{}{
		"roomId":      meta.RoomID,
		"name":        meta.Name,
		"hostUserId":  meta.HostUserID,
		"hasPassword": meta.HasPassword,
		"createdAt":   meta.CreatedAt,
	}).Err()
	if err != nil {
		return fmt.Errorf("写入房间信息失败: %w", err)
	}
	return nil
}

// GetRoomMeta 读回房间注册信息
func GetRoomMeta(rdb *redis.Client, roomID string) (entities.RoomMeta, error) {
	key := fmt.Sprintf("room:%s:info", roomID)
	raw, err := rdb.HGetAll(repository.Ctx, key).Result()
	if err != nil {
		return entities.RoomMeta{}, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if len(raw) == 0 {
		return entities.RoomMeta{}, fmt.Errorf("%w: 房间 %s 未注册", game.ErrNotFound, roomID)
	}
	meta := entities.RoomMeta{
		RoomID:     raw["roomId"],
		Name:       raw["name"],
		HostUserID: raw["hostUserId"],
	}
	meta.HasPassword, _ = strconv.ParseBool(raw["hasPassword"])
	meta.CreatedAt, _ = strconv.ParseInt(raw["createdAt"], 10, 64)
	return meta, nil
}

// DeleteRoomMeta 删掉该房间名下所有 Redis key
func DeleteRoomMeta(rdb *redis.Client, roomID string) error {
	pattern := fmt.Sprintf("room:%s:*", roomID)
	iter := rdb.Scan(repository.Ctx, 0, pattern, 0).Iterator()
	for iter.Next(repository.Ctx) {
		if err := rdb.Del(repository.Ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("删除 key %s 失败: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// SaveGameRecord 战绩存档，只保留最近若干局
func SaveGameRecord(rdb *redis.Client, record entities.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("战绩编码失败: %w", err)
	}
	pipe := rdb.Pipeline()
	pipe.LPush(repository.Ctx, recentRecordsKey, data)
	pipe.LTrim(repository.Ctx, recentRecordsKey, 0, maxRecentRecords-1)
	if _, err := pipe.Exec(repository.Ctx); err != nil {
		return fmt.Errorf("战绩写入失败: %w", err)
	}
	return nil
}

// GetRecentRecords 最近的战绩列表，新的在前
func GetRecentRecords(rdb *redis.Client, limit int) ([]entities.GameRecord, error) {
	if limit <= 0 || limit > maxRecentRecords {
		limit = maxRecentRecords
	}
	raws, err := rdb.LRange(repository.Ctx, recentRecordsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取战绩失败: %w", err)
	}
	records := make([]entities.GameRecord, 0, len(raws))
	for _, raw := range raws {
		var rec entities.GameRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			log.Println("⚠️ 跳过无法解析的战绩:", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// archiveFinishedGame 对局结束时落一条战绩（调用方需持有 roomLock）
func archiveFinishedGame(room *game.Room) {
	winnerName := ""
	names := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		names = append(names, p.Name)
		if p.ID == room.WinnerID {
			winnerName = p.Name
		}
	}
	err := SaveGameRecord(repository.Rdb, entities.GameRecord{
		RoomID:     room.ID,
		RoomName:   room.Name,
		WinnerName: winnerName,
		Players:    names,
		FinishedAt: time.Now().Unix(),
	})
	if err != nil {
		log.Println("❌ 战绩存档失败:", err)
	}
}
