package handler

import (
	"net/http"
	"strconv"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type NotificationHandler interface {
	List(c *gin.Context)
	MarkRead(c *gin.Context)
	MarkAllRead(c *gin.Context)
	Delete(c *gin.Context)
	ClearAll(c *gin.Context)
	Create(c *gin.Context)
}

type notificationHandler struct {
	notifications repo.NotificationRepository
	notifier      *Notifier
	logger        *zap.Logger
}

func NewNotificationHandler(notifications repo.NotificationRepository, notifier *Notifier, logger *zap.Logger) NotificationHandler {
	return &notificationHandler{
		notifications: notifications,
		notifier:      notifier,
		logger:        logger,
	}
}

func (h *notificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	list, err := h.notifications.ListForUser(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": list.Notifications,
		"unreadCount":   list.UnreadCount,
		"total":         list.Total,
	})
}

func (h *notificationHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid notification id")
		return
	}

	n, err := h.notifications.MarkRead(c.Request.Context(), user.ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"notification": n,
	})
}

func (h *notificationHandler) MarkAllRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	modified, err := h.notifications.MarkAllRead(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"modified": modified,
	})
}

func (h *notificationHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid notification id")
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), user.ID, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification deleted",
	})
}

func (h *notificationHandler) ClearAll(c *gin.Context) {
	user := middleware.CurrentUser(c)

	deleted, err := h.notifications.ClearAll(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": deleted,
	})
}

type createNotificationBody struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
	Link    string `json:"link"`
}

// Create lets a client raise a notification for itself, used for in-app
// achievements and reminders.
func (h *notificationHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var body createNotificationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Title and message are required")
		return
	}
	if body.Type == "" {
		body.Type = model.NotificationInfo
	}

	h.notifier.Notify(c.Request.Context(), user.ID, body.Title, body.Message, body.Type, body.Link)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Notification created",
	})
}
