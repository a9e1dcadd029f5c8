package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func ProfileRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	profileRoute := router.Group("/api/profile", requireAuth)
	{
		profileRoute.GET("/me", container.ProfileHandler.GetMine)
		profileRoute.GET("/:userId", container.ProfileHandler.GetByUser)
		profileRoute.PUT("/me", container.ProfileHandler.Update)
	}

	settingsRoute := router.Group("/api/settings", requireAuth)
	{
		settingsRoute.GET("", container.SettingsHandler.Get)
		settingsRoute.GET("/:key", container.SettingsHandler.GetKey)
		settingsRoute.PUT("", container.SettingsHandler.Update)
	}
}
