package approuters

import (
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func GenerateRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	generateRoute := router.Group("/api/generate", requireAuth)

	// The provider is absent when no API key is configured.
	if container.GenerateHandler == nil {
		generateRoute.POST("/notes", generationUnavailable)
		generateRoute.POST("/tutor", generationUnavailable)
		return
	}

	generateRoute.POST("/notes", container.GenerateHandler.Notes)
	generateRoute.POST("/tutor", container.GenerateHandler.Tutor)
}

func generationUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"success": false,
		"message": "Content generation is not configured",
	})
}
