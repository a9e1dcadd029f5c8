package handler

import (
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ChatHandler interface {
	GetConversation(c *gin.Context)
	MarkRead(c *gin.Context)
}

type chatHandler struct {
	messages    repo.MessageRepository
	connections repo.ConnectionRepository
	logger      *zap.Logger
}

func NewChatHandler(messages repo.MessageRepository, connections repo.ConnectionRepository, logger *zap.Logger) ChatHandler {
	return &chatHandler{
		messages:    messages,
		connections: connections,
		logger:      logger,
	}
}

// GetConversation returns the full history with another user, oldest first.
// History access uses the same gate as the relay: an accepted edge must exist
// at read time.
func (h *chatHandler) GetConversation(c *gin.Context) {
	user := middleware.CurrentUser(c)

	otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	connected, err := h.connections.AcceptedExists(c.Request.Context(), user.ID, otherID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !connected {
		writeError(c, apperr.ErrNotConnected)
		return
	}

	msgs, err := h.messages.FindConversation(c.Request.Context(), user.ID, otherID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": msgs,
	})
}

// MarkRead flips the read flag on every message the other user sent to the
// caller.
func (h *chatHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	modified, err := h.messages.MarkRead(c.Request.Context(), otherID, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"modified": modified,
	})
}
