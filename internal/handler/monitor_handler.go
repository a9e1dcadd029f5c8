package handler

import (
	"net/http"
	"time"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/hub"
	"github.com/gin-gonic/gin"
)

type MonitorHandler interface {
	GetHubStats(c *gin.Context)
	Health(c *gin.Context)
}

type monitorHandler struct {
	hub     *hub.Hub
	started time.Time
}

func NewMonitorHandler(h *hub.Hub) MonitorHandler {
	return &monitorHandler{
		hub:     h,
		started: time.Now().UTC(),
	}
}

func (h *monitorHandler) GetHubStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.Stats())
}

func (h *monitorHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}
