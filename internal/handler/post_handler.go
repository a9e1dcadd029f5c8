package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type PostHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	ToggleLike(c *gin.Context)
	AddComment(c *gin.Context)
	Delete(c *gin.Context)
}

type postHandler struct {
	posts    repo.PostRepository
	notifier *Notifier
	logger   *zap.Logger
}

func NewPostHandler(posts repo.PostRepository, notifier *Notifier, logger *zap.Logger) PostHandler {
	return &postHandler{
		posts:    posts,
		notifier: notifier,
		logger:   logger,
	}
}

type createPostBody struct {
	Content string       `json:"content" binding:"required,max=5000"`
	Media   *model.Media `json:"media"`
}

func (h *postHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var body createPostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Post content is required")
		return
	}
	if body.Media != nil {
		switch body.Media.Type {
		case model.MediaPhoto, model.MediaVideo, model.MediaArticle:
		default:
			badRequest(c, "Invalid media type")
			return
		}
	}

	post, err := h.posts.Create(c.Request.Context(), &model.Post{
		Author:  user.Summary(),
		Content: body.Content,
		Media:   body.Media,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"post":    post,
	})
}

func (h *postHandler) List(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		badRequest(c, "Invalid page number")
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	result, err := h.posts.ListPage(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"posts":      result.Data,
		"total":      result.Total,
		"page":       result.Page,
		"totalPages": result.TotalPages,
	})
}

// ToggleLike adds the caller to the like set, or removes them if already
// present. The author is notified on new likes only.
func (h *postHandler) ToggleLike(c *gin.Context) {
	user := middleware.CurrentUser(c)

	post, err := h.posts.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, apperr.ErrPostNotFound)
		return
	}

	liked := false
	for _, id := range post.Likes {
		if id == user.ID {
			liked = true
			break
		}
	}

	if liked {
		err = h.posts.RemoveLike(c.Request.Context(), post.ID, user.ID)
	} else {
		err = h.posts.AddLike(c.Request.Context(), post.ID, user.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	if !liked && post.Author.ID != user.ID {
		h.notifier.Notify(c.Request.Context(), post.Author.ID,
			"New Like",
			user.Name+" liked your post",
			model.NotificationInfo,
			"/feed",
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"liked":   !liked,
	})
}

type addCommentBody struct {
	Content string `json:"content" binding:"required,max=1000"`
}

func (h *postHandler) AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var body addCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Comment content is required")
		return
	}

	post, err := h.posts.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, apperr.ErrPostNotFound)
		return
	}

	comment := model.Comment{
		ID:        primitive.NewObjectID(),
		Author:    user.Summary(),
		Content:   body.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.posts.AddComment(c.Request.Context(), post.ID, comment); err != nil {
		writeError(c, err)
		return
	}

	if post.Author.ID != user.ID {
		h.notifier.Notify(c.Request.Context(), post.Author.ID,
			"New Comment",
			user.Name+" commented on your post",
			model.NotificationInfo,
			"/feed",
		)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": comment,
	})
}

func (h *postHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	post, err := h.posts.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, apperr.ErrPostNotFound)
		return
	}
	if post.Author.ID != user.ID {
		writeError(c, apperr.ErrNotPostAuthor)
		return
	}

	if err := h.posts.Delete(c.Request.Context(), post.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted",
	})
}
