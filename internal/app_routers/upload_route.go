package approuters

import (
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/gin-gonic/gin"
)

func UploadRouters(router *gin.Engine, container *configuration.Container, requireAuth gin.HandlerFunc) {
	uploadRoute := router.Group("/api/uploads", requireAuth)
	{
		uploadRoute.POST("/profile-pic", container.UploadHandler.ProfilePic)
		uploadRoute.POST("/image", container.UploadHandler.Image)

		// Course material uploads are restricted to teachers.
		uploadRoute.POST("/syllabus", middleware.RequireRole(model.RoleTeacher), container.UploadHandler.Syllabus)
		uploadRoute.POST("/materials", middleware.RequireRole(model.RoleTeacher), container.UploadHandler.Materials)
	}
}
