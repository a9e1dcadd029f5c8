package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
}

type UploadHandler interface {
	ProfilePic(c *gin.Context)
	Image(c *gin.Context)
	Syllabus(c *gin.Context)
	Materials(c *gin.Context)
}

type uploadHandler struct {
	profiles repo.ProfileRepository
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

func NewUploadHandler(profiles repo.ProfileRepository, dir string, maxSizeMB int64, logger *zap.Logger) UploadHandler {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("failed to create upload directory", zap.String("dir", dir), zap.Error(err))
	}
	return &uploadHandler{
		profiles: profiles,
		dir:      dir,
		maxBytes: maxSizeMB << 20,
		logger:   logger,
	}
}

// ProfilePic stores the image and points the caller's profile at it.
func (h *uploadHandler) ProfilePic(c *gin.Context) {
	user := middleware.CurrentUser(c)

	url, err := h.saveFile(c, "profilePic", imageExtensions)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	profile, err := h.profiles.SetProfilePic(c.Request.Context(), user.ID, url, &model.Profile{
		User:  user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
		"profile": profile,
	})
}

func (h *uploadHandler) Image(c *gin.Context) {
	url, err := h.saveFile(c, "image", imageExtensions)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

func (h *uploadHandler) Syllabus(c *gin.Context) {
	url, err := h.saveFile(c, "syllabus", documentExtensions)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

// Materials accepts up to 10 files in one multipart request.
func (h *uploadHandler) Materials(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "No files uploaded")
		return
	}
	files := form.File["materials"]
	if len(files) == 0 {
		badRequest(c, "No files uploaded")
		return
	}
	if len(files) > 10 {
		badRequest(c, "At most 10 files per upload")
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.store(c, file, documentExtensions)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"urls":    urls,
	})
}

func (h *uploadHandler) saveFile(c *gin.Context, field string, allowed map[string]bool) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("no %s file uploaded", field)
	}
	return h.store(c, file, allowed)
}

func (h *uploadHandler) store(c *gin.Context, file *multipart.FileHeader, allowed map[string]bool) (string, error) {
	if file.Size > h.maxBytes {
		return "", fmt.Errorf("file exceeds %d MB limit", h.maxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(h.dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.logger.Error("failed to store upload", zap.String("file", dst), zap.Error(err))
		return "", fmt.Errorf("failed to store file")
	}

	return "/uploads/" + name, nil
}
