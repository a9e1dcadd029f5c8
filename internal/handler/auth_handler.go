package handler

import (
	"net/http"
	"time"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/auth"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/middleware"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
	ForgotPassword(c *gin.Context)
	ResetPassword(c *gin.Context)
}

type authHandler struct {
	users    repo.UserRepository
	profiles repo.ProfileRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewAuthHandler(users repo.UserRepository, profiles repo.ProfileRepository, tokens *auth.TokenManager, logger *zap.Logger) AuthHandler {
	return &authHandler{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
	}
}

type registerRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required"`
	Role        string   `json:"role" binding:"required"`
	Grade       string   `json:"grade"`
	Subjects    []string `json:"subjects"`
	Institution string   `json:"institution"`
}

func (h *authHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide name, email, password and role")
		return
	}
	if len(req.Password) < 6 {
		writeError(c, apperr.ErrWeakPassword)
		return
	}
	if req.Role != model.RoleStudent && req.Role != model.RoleTeacher {
		badRequest(c, "Role must be student or teacher")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), &model.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Role:        req.Role,
		Grade:       req.Grade,
		Subjects:    req.Subjects,
		Institution: req.Institution,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// Bootstrap an empty profile so the first profile read never misses.
	if err := h.profiles.Create(c.Request.Context(), profileDefaults(user)); err != nil {
		h.logger.Warn("failed to bootstrap profile",
			zap.String("userId", user.ID.Hex()),
			zap.Error(err),
		)
	}

	h.issueSession(c, user, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *authHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide email and password")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, apperr.ErrInvalidCredentials)
		return
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		writeError(c, apperr.ErrInvalidCredentials)
		return
	}

	h.issueSession(c, user, http.StatusOK)
}

// Refresh rotates the refresh token: the presented token must match the one
// stored on the account, and a new one replaces it.
func (h *authHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(auth.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		writeError(c, apperr.ErrTokenMissing)
		return
	}

	if _, err := h.tokens.VerifyRefreshToken(refreshToken); err != nil {
		writeError(c, apperr.ErrTokenInvalid)
		return
	}

	user, err := h.users.FindByRefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, apperr.ErrTokenInvalid)
		return
	}

	h.issueSession(c, user, http.StatusOK)
}

func (h *authHandler) Logout(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		if err := h.users.SetRefreshToken(c.Request.Context(), user.ID, ""); err != nil {
			h.logger.Warn("failed to clear refresh token",
				zap.String("userId", user.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	h.clearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *authHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		writeError(c, apperr.ErrTokenMissing)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword issues a single-use reset token. Only its sha256 digest is
// stored; the raw token is returned in the response body in lieu of email
// delivery.
func (h *authHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide an email")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, apperr.ErrUserNotFound)
		return
	}

	token, digest, err := auth.NewResetToken()
	if err != nil {
		writeError(c, err)
		return
	}

	expire := time.Now().UTC().Add(resetTokenTTL)
	if err := h.users.SetResetToken(c.Request.Context(), user.ID, digest, expire); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Password reset token generated",
		"resetToken": token,
	})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *authHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide a new password")
		return
	}
	if len(req.Password) < 6 {
		writeError(c, apperr.ErrWeakPassword)
		return
	}

	digest := auth.HashResetToken(c.Param("token"))
	user, err := h.users.FindByResetToken(c.Request.Context(), digest)
	if err != nil {
		writeError(c, apperr.New(apperr.CodeInvalidArgument, "invalid or expired reset token"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.users.ResetPassword(c.Request.Context(), user.ID, hash); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successful",
	})
}

// issueSession generates both tokens, persists the refresh token and sets the
// session cookies.
func (h *authHandler) issueSession(c *gin.Context, user *model.User, status int) {
	accessToken, err := h.tokens.GenerateAccessToken(user.ID.Hex(), user.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.SetRefreshToken(c.Request.Context(), user.ID, refreshToken); err != nil {
		writeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, accessToken, int(h.tokens.AccessTTL.Seconds()), "/", "", false, true)
	c.SetCookie(auth.RefreshTokenCookie, refreshToken, int(h.tokens.RefreshTTL.Seconds()), "/", "", false, true)

	c.JSON(status, gin.H{
		"success": true,
		"user":    user,
		"token":   accessToken,
	})
}

func (h *authHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(auth.RefreshTokenCookie, "", -1, "/", "", false, true)
}
