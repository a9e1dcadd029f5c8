package handler

import (
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProfileHandler interface {
	GetMine(c *gin.Context)
	GetByUser(c *gin.Context)
	Update(c *gin.Context)
}

type profileHandler struct {
	profiles repo.ProfileRepository
	logger   *zap.Logger
}

func NewProfileHandler(profiles repo.ProfileRepository, logger *zap.Logger) ProfileHandler {
	return &profileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// GetMine returns the caller's profile, creating a skeleton from the account
// on first access.
func (h *profileHandler) GetMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, err := h.profiles.FindByUser(c.Request.Context(), user.ID)
	if err != nil {
		profile, err = h.profiles.Upsert(c.Request.Context(), user.ID, model.ProfileUpdate{}, profileDefaults(user))
		if err != nil {
			writeError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *profileHandler) GetByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	profile, err := h.profiles.FindByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, apperr.NotFound("profile not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *profileHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var update model.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "Invalid profile payload")
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), user.ID, update, profileDefaults(user))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func profileDefaults(user *model.User) *model.Profile {
	return &model.Profile{
		User:  user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
