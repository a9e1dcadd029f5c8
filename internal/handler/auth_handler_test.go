package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/auth"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
)

func setupAuthRouter(users *mockUserRepo) (*gin.Engine, *auth.TokenManager) {
	router, tokens, _ := setupAuthRouterWithProfiles(users)
	return router, tokens
}

func setupAuthRouterWithProfiles(users *mockUserRepo) (*gin.Engine, *auth.TokenManager, *mockProfileRepo) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("test-access", "test-refresh", time.Minute, time.Hour)
	profiles := &mockProfileRepo{}
	handler := NewAuthHandler(users, profiles, tokens, zap.NewNop())

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	return r, tokens, profiles
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	router, _ := setupAuthRouter(&mockUserRepo{})

	rec := postJSON(router, "/api/auth/register", gin.H{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "short",
		"role":     model.RoleStudent,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	router, _ := setupAuthRouter(&mockUserRepo{})

	rec := postJSON(router, "/api/auth/register", gin.H{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
		"role":     "admin",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := &mockUserRepo{
		CreateFn: func(context.Context, *model.User) (*model.User, error) {
			return nil, apperr.ErrEmailTaken
		},
	}
	router, _ := setupAuthRouter(users)

	rec := postJSON(router, "/api/auth/register", gin.H{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
		"role":     model.RoleStudent,
	})

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterIssuesSessionCookies(t *testing.T) {
	users := &mockUserRepo{
		CreateFn: func(_ context.Context, user *model.User) (*model.User, error) {
			user.ID = primitive.NewObjectID()
			// the password never goes in plain
			assert.NotEqual(t, "hunter22", user.Password)
			return user, nil
		},
	}
	router, tokens := setupAuthRouter(users)

	rec := postJSON(router, "/api/auth/register", gin.H{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
		"role":     model.RoleStudent,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	cookieNames := make(map[string]string)
	for _, cookie := range rec.Result().Cookies() {
		cookieNames[cookie.Name] = cookie.Value
		assert.True(t, cookie.HttpOnly, "session cookies must be http-only")
	}
	require.Contains(t, cookieNames, auth.AccessTokenCookie)
	require.Contains(t, cookieNames, auth.RefreshTokenCookie)

	claims, err := tokens.VerifyAccessToken(cookieNames[auth.AccessTokenCookie])
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestRegisterBootstrapsProfile(t *testing.T) {
	userID := primitive.NewObjectID()
	users := &mockUserRepo{
		CreateFn: func(_ context.Context, user *model.User) (*model.User, error) {
			user.ID = userID
			return user, nil
		},
	}
	router, _, profiles := setupAuthRouterWithProfiles(users)

	rec := postJSON(router, "/api/auth/register", gin.H{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
		"role":     model.RoleStudent,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	created := profiles.createdFor(userID)
	require.Len(t, created, 1)
	assert.Equal(t, "alice", created[0].Name)
	assert.Equal(t, model.RoleStudent, created[0].Role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	users := &mockUserRepo{
		FindByEmailFn: func(context.Context, string) (*model.User, error) {
			return &model.User{
				ID:       primitive.NewObjectID(),
				Email:    "alice@example.com",
				Password: hash,
				Role:     model.RoleStudent,
			}, nil
		},
	}
	router, _ := setupAuthRouter(users)

	rec := postJSON(router, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		FindByEmailFn: func(context.Context, string) (*model.User, error) {
			return nil, apperr.ErrUserNotFound
		},
	}
	router, _ := setupAuthRouter(users)

	rec := postJSON(router, "/api/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever1",
	})

	// unknown email and wrong password are indistinguishable
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSuccessPersistsRefreshToken(t *testing.T) {
	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)
	userID := primitive.NewObjectID()

	var storedRefresh string
	users := &mockUserRepo{
		FindByEmailFn: func(context.Context, string) (*model.User, error) {
			return &model.User{ID: userID, Email: "alice@example.com", Password: hash, Role: model.RoleStudent}, nil
		},
		SetRefreshTokenFn: func(_ context.Context, id primitive.ObjectID, token string) error {
			assert.Equal(t, userID, id)
			storedRefresh = token
			return nil
		},
	}
	router, tokens := setupAuthRouter(users)

	rec := postJSON(router, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "correct-password",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, storedRefresh)

	claims, err := tokens.VerifyRefreshToken(storedRefresh)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
}
