package handler

import (
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/hub"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const suggestionLimit = 10

type ConnectionHandler interface {
	SendRequest(c *gin.Context)
	AcceptRequest(c *gin.Context)
	RejectRequest(c *gin.Context)
	ListConnections(c *gin.Context)
	ListPending(c *gin.Context)
	Suggestions(c *gin.Context)
}

type connectionHandler struct {
	connections repo.ConnectionRepository
	users       repo.UserRepository
	notifier    *Notifier
	hub         *hub.Hub
	logger      *zap.Logger
}

func NewConnectionHandler(connections repo.ConnectionRepository, users repo.UserRepository, notifier *Notifier, h *hub.Hub, logger *zap.Logger) ConnectionHandler {
	return &connectionHandler{
		connections: connections,
		users:       users,
		notifier:    notifier,
		hub:         h,
		logger:      logger,
	}
}

type sendRequestBody struct {
	RecipientID string `json:"recipientId" binding:"required"`
}

func (h *connectionHandler) SendRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Please provide a recipientId")
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(body.RecipientID)
	if err != nil {
		badRequest(c, "Invalid recipientId")
		return
	}
	if recipientID == user.ID {
		writeError(c, apperr.ErrSelfConnection)
		return
	}
	if _, err := h.users.FindByID(c.Request.Context(), recipientID.Hex()); err != nil {
		writeError(c, apperr.ErrUserNotFound)
		return
	}

	conn, err := h.connections.Create(c.Request.Context(), user.ID, recipientID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.notifier.Notify(c.Request.Context(), recipientID,
		"New Connection Request",
		user.Name+" wants to connect with you",
		model.NotificationInfo,
		"/connections",
	)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"connection": conn,
	})
}

func (h *connectionHandler) AcceptRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conn, err := h.connections.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, apperr.ErrRequestNotFound)
		return
	}
	if conn.Recipient != user.ID {
		writeError(c, apperr.ErrNotRequestRecipient)
		return
	}
	if conn.Status != model.ConnectionPending {
		badRequest(c, "Request is not pending")
		return
	}

	if err := h.connections.Accept(c.Request.Context(), conn.ID); err != nil {
		writeError(c, err)
		return
	}

	h.notifier.Notify(c.Request.Context(), conn.Requester,
		"Connection Accepted",
		user.Name+" accepted your connection request",
		model.NotificationSuccess,
		"/connections",
	)
	h.notifier.AnnounceConnection(conn.Requester.Hex(), conn.Recipient.Hex())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connection accepted",
	})
}

// RejectRequest deletes the pending edge so a fresh request can be sent
// later.
func (h *connectionHandler) RejectRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conn, err := h.connections.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, apperr.ErrRequestNotFound)
		return
	}
	if conn.Recipient != user.ID {
		writeError(c, apperr.ErrNotRequestRecipient)
		return
	}

	if err := h.connections.Delete(c.Request.Context(), conn.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connection request rejected",
	})
}

// ListConnections returns the other party of every accepted edge, annotated
// with relay liveness.
func (h *connectionHandler) ListConnections(c *gin.Context) {
	user := middleware.CurrentUser(c)

	edges, err := h.connections.FindAcceptedFor(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	connected := make([]model.ConnectedUser, 0, len(edges))
	for _, edge := range edges {
		otherID := edge.Requester
		if otherID == user.ID {
			otherID = edge.Recipient
		}
		other, err := h.users.FindByID(c.Request.Context(), otherID.Hex())
		if err != nil {
			h.logger.Warn("connection references missing user",
				zap.String("connectionId", edge.ID.Hex()),
				zap.String("userId", otherID.Hex()),
			)
			continue
		}
		connected = append(connected, model.ConnectedUser{
			UserSummary:  other.Summary(),
			ConnectionID: edge.ID,
			IsOnline:     h.hub.IsOnline(otherID.Hex()),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"connections": connected,
	})
}

func (h *connectionHandler) ListPending(c *gin.Context) {
	user := middleware.CurrentUser(c)

	edges, err := h.connections.FindPendingFor(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	pending := make([]model.PendingRequest, 0, len(edges))
	for _, edge := range edges {
		requester, err := h.users.FindByID(c.Request.Context(), edge.Requester.Hex())
		if err != nil {
			continue
		}
		pending = append(pending, model.PendingRequest{
			ID:        edge.ID,
			Requester: requester.Summary(),
			CreatedAt: edge.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": pending,
	})
}

// Suggestions returns users sharing the caller's role with no existing edge
// to the caller. Teachers also get teachers sharing any of their subjects.
func (h *connectionHandler) Suggestions(c *gin.Context) {
	user := middleware.CurrentUser(c)

	edges, err := h.connections.FindAllFor(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	exclude := make([]primitive.ObjectID, 0, len(edges)+1)
	exclude = append(exclude, user.ID)
	for _, edge := range edges {
		if edge.Requester == user.ID {
			exclude = append(exclude, edge.Recipient)
		} else {
			exclude = append(exclude, edge.Requester)
		}
	}

	var subjects []string
	if user.Role == model.RoleTeacher {
		subjects = user.Subjects
	}

	users, err := h.users.FindSuggestions(c.Request.Context(), exclude, user.Role, subjects, suggestionLimit)
	if err != nil {
		writeError(c, err)
		return
	}

	suggestions := make([]model.UserSummary, 0, len(users))
	for i := range users {
		suggestions = append(suggestions, users[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
	})
}
