package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func ConnectionRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	connectionRoute := router.Group("/api/connections", requireAuth)
	{
		connectionRoute.POST("/request", container.ConnectionHandler.SendRequest)
		connectionRoute.PUT("/accept/:id", container.ConnectionHandler.AcceptRequest)
		connectionRoute.DELETE("/reject/:id", container.ConnectionHandler.RejectRequest)
		connectionRoute.GET("", container.ConnectionHandler.ListConnections)
		connectionRoute.GET("/pending", container.ConnectionHandler.ListPending)
		connectionRoute.GET("/suggestions", container.ConnectionHandler.Suggestions)
	}
}
