package controller

import (
	"net/http"
	"strings"

	"go-settlers/dto"
	"go-settlers/service"
	"go-settlers/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GuestLogin 游客登录：发一个带随机 userID 的访问令牌，
// 断线重连全靠这个 userID 找回身份。
func GuestLogin(c *gin.Context) {
	var req dto.GuestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "游客" + service.RandString(4)
	}
	userID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]

	token, err := utils.GenerateAccessToken(userID, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌签发失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "登录成功",
		"data": dto.GuestLoginResponse{
			UserID:      userID,
			Name:        name,
			AccessToken: token,
		},
	})
}
