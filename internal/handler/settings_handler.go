package handler

import (
	"encoding/json"
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingsHandler interface {
	Get(c *gin.Context)
	GetKey(c *gin.Context)
	Update(c *gin.Context)
}

type settingsHandler struct {
	settings repo.SettingsRepository
	logger   *zap.Logger
}

func NewSettingsHandler(settings repo.SettingsRepository, logger *zap.Logger) SettingsHandler {
	return &settingsHandler{
		settings: settings,
		logger:   logger,
	}
}

func (h *settingsHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	settings, err := h.settings.GetOrCreate(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}

// GetKey returns a single setting by its json field name.
func (h *settingsHandler) GetKey(c *gin.Context) {
	user := middleware.CurrentUser(c)

	settings, err := h.settings.GetOrCreate(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		writeError(c, err)
		return
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		writeError(c, err)
		return
	}

	key := c.Param("key")
	value, ok := fields[key]
	if !ok {
		writeError(c, apperr.NotFound("unknown setting"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"key":     key,
		"value":   value,
	})
}

func (h *settingsHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var update model.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "Invalid settings payload")
		return
	}
	if update.ProfileVisibility != nil {
		switch *update.ProfileVisibility {
		case "public", "connections", "private":
		default:
			badRequest(c, "Invalid profile visibility")
			return
		}
	}

	settings, err := h.settings.Update(c.Request.Context(), user.ID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}
