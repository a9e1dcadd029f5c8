package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func MonitorRouters(router *gin.Engine, container *configuration.Container) {
	monitorRoute := router.Group("/api/monitor")
	{
		monitorRoute.GET("/stats", container.MonitorHandler.GetHubStats)
	}
}
