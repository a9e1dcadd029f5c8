package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func PostRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	postRoute := router.Group("/api/posts", requireAuth)
	{
		postRoute.POST("", container.PostHandler.Create)
		postRoute.GET("", container.PostHandler.List)
		postRoute.PUT("/:id/like", container.PostHandler.ToggleLike)
		postRoute.POST("/:id/comments", container.PostHandler.AddComment)
		postRoute.DELETE("/:id", container.PostHandler.Delete)
	}
}
