package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/gin-gonic/gin"
)

func AuthRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	authRoute := router.Group("/api/auth")
	{
		authRoute.POST("/register", container.AuthHandler.Register)
		authRoute.POST("/login", container.AuthHandler.Login)
		authRoute.POST("/refresh", container.AuthHandler.Refresh)
		authRoute.POST("/forgot-password", container.AuthHandler.ForgotPassword)
		authRoute.PUT("/reset-password/:token", container.AuthHandler.ResetPassword)

		authRoute.POST("/logout", requireAuth, container.AuthHandler.Logout)
		authRoute.GET("/me", requireAuth, container.AuthHandler.Me)
	}
}
