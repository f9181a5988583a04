package controller

import (
	"errors"
	"net/http"
	"strconv"

	"go-settlers/dto"
	"go-settlers/game"
	"go-settlers/repository"
	"go-settlers/service"
	"go-settlers/ws"

	"github.com/gin-gonic/gin"
)

func CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	userID := c.GetString("userID")
	roomID, err := service.CreateRoom(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data": dto.CreateRoomResponse{
			RoomID: roomID,
		},
	})
}

func DeleteRoom(c *gin.Context) {
	var req dto.DeleteRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	if err := service.DeleteRoom(c.GetString("userID"), req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, game.ErrRule) {
			status = http.StatusForbidden
		} else if errors.Is(err, game.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间删除成功",
	})
}

func GetRoomList(c *gin.Context) {
	rooms, err := service.GetRoomList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取房间列表失败"})
		return
	}

	online, _ := service.GetOnlinePlayer()
	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"online":      online,
		"data": dto.GetRoomList{
			Rooms: rooms,
		},
	})
}

// GetRoomInfo 观战/刷新页面时一次性拉完整对局状态
func GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomID")
	state, err := service.GetRoomState(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        state,
	})
}

// GetHistory 最近的对局战绩
func GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := ws.GetRecentRecords(repository.Rdb, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        records,
	})
}
