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

	"github.com/HARSHSHRI12/Nogen-Backend/internal/event"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
)

type connectionFixture struct {
	user          *model.User
	connections   *mockConnectionRepo
	users         *mockUserRepo
	notifications *mockNotificationRepo
	emitter       *recordingEmitter
	router        *gin.Engine
}

func newConnectionFixture(user *model.User, connections *mockConnectionRepo, users *mockUserRepo) *connectionFixture {
	gin.SetMode(gin.TestMode)
	f := &connectionFixture{
		user:          user,
		connections:   connections,
		users:         users,
		notifications: &mockNotificationRepo{},
		emitter:       newRecordingEmitter(),
	}

	notifier := NewNotifier(f.notifications, f.emitter, zap.NewNop())
	handler := NewConnectionHandler(connections, users, notifier, nil, zap.NewNop())

	r := gin.New()
	r.Use(authAs(user))
	r.POST("/api/connections/request", handler.SendRequest)
	r.PUT("/api/connections/accept/:id", handler.AcceptRequest)
	r.DELETE("/api/connections/reject/:id", handler.RejectRequest)
	r.GET("/api/connections/pending", handler.ListPending)
	r.GET("/api/connections/suggestions", handler.Suggestions)
	f.router = r
	return f
}

func TestSendRequestRejectsSelf(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	f := newConnectionFixture(user, &mockConnectionRepo{}, &mockUserRepo{})

	body, _ := json.Marshal(gin.H{"recipientId": user.ID.Hex()})
	req := httptest.NewRequest(http.MethodPost, "/api/connections/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendRequestNotifiesRecipient(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	recipient := testUser("bob", model.RoleTeacher)

	connections := &mockConnectionRepo{
		CreateFn: func(_ context.Context, requester, rcpt primitive.ObjectID) (*model.Connection, error) {
			assert.Equal(t, user.ID, requester)
			assert.Equal(t, recipient.ID, rcpt)
			return &model.Connection{
				ID:        primitive.NewObjectID(),
				Requester: requester,
				Recipient: rcpt,
				Status:    model.ConnectionPending,
			}, nil
		},
	}
	users := &mockUserRepo{
		FindByIDFn: func(_ context.Context, id string) (*model.User, error) {
			return recipient, nil
		},
	}
	f := newConnectionFixture(user, connections, users)

	body, _ := json.Marshal(gin.H{"recipientId": recipient.ID.Hex()})
	req := httptest.NewRequest(http.MethodPost, "/api/connections/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	created := f.notifications.createdFor(recipient.ID)
	require.Len(t, created, 1)
	assert.Equal(t, "New Connection Request", created[0].Title)
	assert.Contains(t, created[0].Message, "alice")

	pushed := f.emitter.emittedTo(recipient.ID.Hex())
	require.Len(t, pushed, 1)
	assert.Equal(t, event.EventNewNotification, pushed[0].Event)
}

func TestAcceptRequestOnlyByRecipient(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	edge := &model.Connection{
		ID:        primitive.NewObjectID(),
		Requester: user.ID,
		Recipient: primitive.NewObjectID(), // someone else
		Status:    model.ConnectionPending,
	}
	connections := &mockConnectionRepo{
		FindByIDFn: func(context.Context, string) (*model.Connection, error) {
			return edge, nil
		},
	}
	f := newConnectionFixture(user, connections, &mockUserRepo{})

	req := httptest.NewRequest(http.MethodPut, "/api/connections/accept/"+edge.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAcceptRequestNotifiesRequesterAndAnnounces(t *testing.T) {
	user := testUser("bob", model.RoleTeacher)
	requester := primitive.NewObjectID()
	edge := &model.Connection{
		ID:        primitive.NewObjectID(),
		Requester: requester,
		Recipient: user.ID,
		Status:    model.ConnectionPending,
	}

	accepted := false
	connections := &mockConnectionRepo{
		FindByIDFn: func(context.Context, string) (*model.Connection, error) {
			return edge, nil
		},
		AcceptFn: func(_ context.Context, id primitive.ObjectID) error {
			assert.Equal(t, edge.ID, id)
			accepted = true
			return nil
		},
	}
	f := newConnectionFixture(user, connections, &mockUserRepo{})

	req := httptest.NewRequest(http.MethodPut, "/api/connections/accept/"+edge.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, accepted)

	created := f.notifications.createdFor(requester)
	require.Len(t, created, 1)
	assert.Equal(t, "Connection Accepted", created[0].Title)

	require.Len(t, f.emitter.broadcast, 1)
	assert.Equal(t, event.EventConnectionUpdate, f.emitter.broadcast[0].Event)

	var payload event.ConnectionUpdatePayload
	require.NoError(t, json.Unmarshal(f.emitter.broadcast[0].Payload, &payload))
	assert.Equal(t, requester.Hex(), payload.User1)
	assert.Equal(t, user.ID.Hex(), payload.User2)
}

func TestRejectRequestDeletesEdge(t *testing.T) {
	user := testUser("bob", model.RoleTeacher)
	edge := &model.Connection{
		ID:        primitive.NewObjectID(),
		Requester: primitive.NewObjectID(),
		Recipient: user.ID,
		Status:    model.ConnectionPending,
	}

	deleted := false
	connections := &mockConnectionRepo{
		FindByIDFn: func(context.Context, string) (*model.Connection, error) {
			return edge, nil
		},
		DeleteFn: func(_ context.Context, id primitive.ObjectID) error {
			assert.Equal(t, edge.ID, id)
			deleted = true
			return nil
		},
	}
	f := newConnectionFixture(user, connections, &mockUserRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/connections/reject/"+edge.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
	assert.Empty(t, f.emitter.broadcast)
}

func TestListPendingResolvesRequesters(t *testing.T) {
	user := testUser("bob", model.RoleTeacher)
	requester := testUser("alice", model.RoleStudent)

	connections := &mockConnectionRepo{
		FindPendingForFn: func(_ context.Context, recipient primitive.ObjectID) ([]model.Connection, error) {
			assert.Equal(t, user.ID, recipient)
			return []model.Connection{{
				ID:        primitive.NewObjectID(),
				Requester: requester.ID,
				Recipient: user.ID,
				Status:    model.ConnectionPending,
				CreatedAt: time.Now().UTC(),
			}}, nil
		},
	}
	users := &mockUserRepo{
		FindByIDFn: func(context.Context, string) (*model.User, error) {
			return requester, nil
		},
	}
	f := newConnectionFixture(user, connections, users)

	req := httptest.NewRequest(http.MethodGet, "/api/connections/pending", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Requests []model.PendingRequest `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Requests, 1)
	assert.Equal(t, "alice", body.Requests[0].Requester.Name)
}

func TestSuggestionsMatchCallerRole(t *testing.T) {
	user := testUser("alice", model.RoleStudent)
	peer := testUser("carol", model.RoleStudent)

	connections := &mockConnectionRepo{
		FindAllForFn: func(context.Context, primitive.ObjectID) ([]model.Connection, error) {
			return nil, nil
		},
	}
	var gotRole string
	var gotSubjects []string
	users := &mockUserRepo{
		FindSuggestionsFn: func(_ context.Context, exclude []primitive.ObjectID, role string, subjects []string, _ int64) ([]model.User, error) {
			gotRole = role
			gotSubjects = subjects
			assert.Contains(t, exclude, user.ID)
			return []model.User{*peer}, nil
		},
	}
	f := newConnectionFixture(user, connections, users)

	req := httptest.NewRequest(http.MethodGet, "/api/connections/suggestions", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleStudent, gotRole)
	assert.Empty(t, gotSubjects)
	assert.Contains(t, rec.Body.String(), "carol")
}

func TestSuggestionsTeacherPassesOwnSubjects(t *testing.T) {
	user := testUser("bob", model.RoleTeacher)
	user.Subjects = []string{"physics", "maths"}

	connections := &mockConnectionRepo{
		FindAllForFn: func(context.Context, primitive.ObjectID) ([]model.Connection, error) {
			return nil, nil
		},
	}
	var gotRole string
	var gotSubjects []string
	users := &mockUserRepo{
		FindSuggestionsFn: func(_ context.Context, _ []primitive.ObjectID, role string, subjects []string, _ int64) ([]model.User, error) {
			gotRole = role
			gotSubjects = subjects
			return nil, nil
		},
	}
	f := newConnectionFixture(user, connections, users)

	req := httptest.NewRequest(http.MethodGet, "/api/connections/suggestions", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleTeacher, gotRole)
	assert.Equal(t, user.Subjects, gotSubjects)
}
