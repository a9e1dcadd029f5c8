package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
)

func setupChatRouter(handler ChatHandler, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs(user))
	r.GET("/api/messages/:userId", handler.GetConversation)
	r.PUT("/api/messages/:userId/read", handler.MarkRead)
	return r
}

func TestGetConversationRequiresConnection(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	other := primitive.NewObjectID()

	connections := &mockConnectionRepo{
		AcceptedExistsFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) (bool, error) {
			return false, nil
		},
	}
	handler := NewChatHandler(&mockMessageRepo{}, connections, zap.NewNop())
	router := setupChatRouter(handler, user)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/"+other.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetConversationReturnsHistory(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	other := primitive.NewObjectID()

	connections := &mockConnectionRepo{
		AcceptedExistsFn: func(_ context.Context, a, b primitive.ObjectID) (bool, error) {
			assert.Equal(t, user.ID, a)
			assert.Equal(t, other, b)
			return true, nil
		},
	}
	messages := &mockMessageRepo{
		FindConversationFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) ([]model.Message, error) {
			return []model.Message{
				{Sender: user.ID, Recipient: other, Content: "hi"},
				{Sender: other, Recipient: user.ID, Content: "hello"},
			}, nil
		},
	}
	handler := NewChatHandler(messages, connections, zap.NewNop())
	router := setupChatRouter(handler, user)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/"+other.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool            `json:"success"`
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Messages, 2)
}

func TestGetConversationRejectsBadID(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	handler := NewChatHandler(&mockMessageRepo{}, &mockConnectionRepo{}, zap.NewNop())
	router := setupChatRouter(handler, user)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/not-an-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkReadFlipsSenderMessages(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	other := primitive.NewObjectID()

	messages := &mockMessageRepo{
		MarkReadFn: func(_ context.Context, sender, recipient primitive.ObjectID) (int64, error) {
			// only messages the other user sent to the caller flip
			assert.Equal(t, other, sender)
			assert.Equal(t, user.ID, recipient)
			return 3, nil
		},
	}
	handler := NewChatHandler(messages, &mockConnectionRepo{}, zap.NewNop())
	router := setupChatRouter(handler, user)

	req := httptest.NewRequest(http.MethodPut, "/api/messages/"+other.Hex()+"/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Modified int64 `json:"modified"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body.Modified)
}
