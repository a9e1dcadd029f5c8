package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func ChatRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	chatRoute := router.Group("/api/messages", requireAuth)
	{
		chatRoute.GET("/:userId", container.ChatHandler.GetConversation)
		chatRoute.PUT("/:userId/read", container.ChatHandler.MarkRead)
	}
}
