package handler

import (
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/ai"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GenerateHandler interface {
	Notes(c *gin.Context)
	Tutor(c *gin.Context)
}

type generateHandler struct {
	provider ai.Provider
	logger   *zap.Logger
}

func NewGenerateHandler(provider ai.Provider, logger *zap.Logger) GenerateHandler {
	return &generateHandler{
		provider: provider,
		logger:   logger,
	}
}

func (h *generateHandler) Notes(c *gin.Context) {
	var req ai.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		badRequest(c, "A query is required")
		return
	}

	gen, err := h.provider.GenerateNotes(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("notes generation failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "All generation models are currently unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      gen.Text,
		"modelUsed": gen.Model,
	})
}

func (h *generateHandler) Tutor(c *gin.Context) {
	var req ai.TutorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		badRequest(c, "A topic is required")
		return
	}

	gen, err := h.provider.GenerateTutorReply(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("tutor generation failed", zap.String("topic", req.Topic), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "All generation models are currently unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      gen.Text,
		"modelUsed": gen.Model,
	})
}
