package router

import (
	"go-settlers/controller"
	"go-settlers/middleware"
	"go-settlers/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	// 登录接口
	auth := r.Group("/auth")
	{
		auth.POST("/guest", controller.GuestLogin)
	}

	// 大厅接口路由
	api := r.Group("/room")
	{
		api.POST("/create", middleware.AuthMiddleware(), controller.CreateRoom)
		api.POST("/delete", middleware.AuthMiddleware(), controller.DeleteRoom)
		api.GET("/list", controller.GetRoomList)
		api.GET("/history", controller.GetHistory)
		api.GET("/:roomID", controller.GetRoomInfo)
	}

	// WebSocket 路由
	r.GET("/ws", ws.HandleWebSocket)
}
