package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func NotificationRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	notificationRoute := router.Group("/api/notifications", requireAuth)
	{
		notificationRoute.GET("", container.NotificationHandler.List)
		notificationRoute.POST("", container.NotificationHandler.Create)
		notificationRoute.PUT("/read-all", container.NotificationHandler.MarkAllRead)
		notificationRoute.PUT("/:id/read", container.NotificationHandler.MarkRead)
		notificationRoute.DELETE("/clear", container.NotificationHandler.ClearAll)
		notificationRoute.DELETE("/:id", container.NotificationHandler.Delete)
	}
}
