package handler

import (
	"context"
	"sync"
	"time"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/event"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// authAs injects the user the way the auth middleware would.
func authAs(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}
}

func testUser(name, role string) *model.User {
	return &model.User{
		ID:   primitive.NewObjectID(),
		Name: name,
		Role: role,
	}
}

// recordingEmitter captures realtime pushes instead of a live hub.
type recordingEmitter struct {
	mu        sync.Mutex
	emitted   map[string][]event.WsEvent
	broadcast []event.WsEvent
}

func newRecordingEmitter() *recordingEmitter {
	return &recordingEmitter{emitted: make(map[string][]event.WsEvent)}
}

func (r *recordingEmitter) EmitToUser(userID string, ev event.WsEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted[userID] = append(r.emitted[userID], ev)
}

func (r *recordingEmitter) Broadcast(ev event.WsEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast = append(r.broadcast, ev)
}

func (r *recordingEmitter) emittedTo(userID string) []event.WsEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emitted[userID]
}

// Function-field mocks for the repositories a handler touches. Unset fields
// mean the test does not expect that call.

type mockUserRepo struct {
	CreateFn          func(ctx context.Context, user *model.User) (*model.User, error)
	FindByIDFn        func(ctx context.Context, id string) (*model.User, error)
	FindByEmailFn     func(ctx context.Context, email string) (*model.User, error)
	FindSuggestionsFn func(ctx context.Context, exclude []primitive.ObjectID, role string, subjects []string, limit int64) ([]model.User, error)
	SetRefreshTokenFn func(ctx context.Context, id primitive.ObjectID, token string) error
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.FindByEmailFn(ctx, email)
}

func (m *mockUserRepo) FindByRefreshToken(context.Context, string) (*model.User, error) {
	return nil, apperr.ErrUserNotFound
}

func (m *mockUserRepo) FindByResetToken(context.Context, string) (*model.User, error) {
	return nil, apperr.ErrUserNotFound
}

func (m *mockUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	if m.SetRefreshTokenFn != nil {
		return m.SetRefreshTokenFn(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepo) SetResetToken(context.Context, primitive.ObjectID, string, time.Time) error {
	return nil
}

func (m *mockUserRepo) ResetPassword(context.Context, primitive.ObjectID, string) error {
	return nil
}

func (m *mockUserRepo) FindSuggestions(ctx context.Context, exclude []primitive.ObjectID, role string, subjects []string, limit int64) ([]model.User, error) {
	return m.FindSuggestionsFn(ctx, exclude, role, subjects, limit)
}

// mockProfileRepo keeps created profiles in memory. Lookup and upsert fields
// are only needed by tests that exercise them.
type mockProfileRepo struct {
	mu      sync.Mutex
	created []model.Profile

	FindByUserFn func(ctx context.Context, user primitive.ObjectID) (*model.Profile, error)
	UpsertFn     func(ctx context.Context, user primitive.ObjectID, update model.ProfileUpdate, defaults *model.Profile) (*model.Profile, error)
}

var _ repo.ProfileRepository = (*mockProfileRepo)(nil)

func (m *mockProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *profile)
	return nil
}

func (m *mockProfileRepo) FindByUser(ctx context.Context, user primitive.ObjectID) (*model.Profile, error) {
	return m.FindByUserFn(ctx, user)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, user primitive.ObjectID, update model.ProfileUpdate, defaults *model.Profile) (*model.Profile, error) {
	return m.UpsertFn(ctx, user, update, defaults)
}

func (m *mockProfileRepo) SetProfilePic(context.Context, primitive.ObjectID, string, *model.Profile) (*model.Profile, error) {
	return nil, apperr.NotFound("profile not found")
}

func (m *mockProfileRepo) createdFor(user primitive.ObjectID) []model.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Profile
	for _, p := range m.created {
		if p.User == user {
			out = append(out, p)
		}
	}
	return out
}

type mockConnectionRepo struct {
	CreateFn          func(ctx context.Context, requester, recipient primitive.ObjectID) (*model.Connection, error)
	FindByIDFn        func(ctx context.Context, id string) (*model.Connection, error)
	AcceptedExistsFn  func(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	AcceptFn          func(ctx context.Context, id primitive.ObjectID) error
	DeleteFn          func(ctx context.Context, id primitive.ObjectID) error
	FindAcceptedForFn func(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error)
	FindPendingForFn  func(ctx context.Context, recipient primitive.ObjectID) ([]model.Connection, error)
	FindAllForFn      func(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error)
}

var _ repo.ConnectionRepository = (*mockConnectionRepo)(nil)

func (m *mockConnectionRepo) Create(ctx context.Context, requester, recipient primitive.ObjectID) (*model.Connection, error) {
	return m.CreateFn(ctx, requester, recipient)
}

func (m *mockConnectionRepo) FindByID(ctx context.Context, id string) (*model.Connection, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockConnectionRepo) AcceptedExists(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	return m.AcceptedExistsFn(ctx, a, b)
}

func (m *mockConnectionRepo) Accept(ctx context.Context, id primitive.ObjectID) error {
	return m.AcceptFn(ctx, id)
}

func (m *mockConnectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockConnectionRepo) FindAcceptedFor(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error) {
	return m.FindAcceptedForFn(ctx, user)
}

func (m *mockConnectionRepo) FindPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]model.Connection, error) {
	return m.FindPendingForFn(ctx, recipient)
}

func (m *mockConnectionRepo) FindAllFor(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error) {
	return m.FindAllForFn(ctx, user)
}

type mockMessageRepo struct {
	InsertMessageFn    func(ctx context.Context, msg *model.Message) (*model.Message, error)
	FindConversationFn func(ctx context.Context, a, b primitive.ObjectID) ([]model.Message, error)
	MarkReadFn         func(ctx context.Context, sender, recipient primitive.ObjectID) (int64, error)
}

var _ repo.MessageRepository = (*mockMessageRepo)(nil)

func (m *mockMessageRepo) InsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	return m.InsertMessageFn(ctx, msg)
}

func (m *mockMessageRepo) FindConversation(ctx context.Context, a, b primitive.ObjectID) ([]model.Message, error) {
	return m.FindConversationFn(ctx, a, b)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, sender, recipient primitive.ObjectID) (int64, error) {
	return m.MarkReadFn(ctx, sender, recipient)
}

// mockNotificationRepo stores created notifications in memory so tests can
// assert on the persisted half of a push.
type mockNotificationRepo struct {
	mu      sync.Mutex
	created []model.Notification

	ListForUserFn func(ctx context.Context, user primitive.ObjectID, skip, limit int64) (*repo.NotificationList, error)
	MarkReadFn    func(ctx context.Context, user, id primitive.ObjectID) (*model.Notification, error)
	MarkAllReadFn func(ctx context.Context, user primitive.ObjectID) (int64, error)
	DeleteFn      func(ctx context.Context, user, id primitive.ObjectID) error
}

var _ repo.NotificationRepository = (*mockNotificationRepo)(nil)

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now().UTC()
	m.created = append(m.created, *n)
	return n, nil
}

func (m *mockNotificationRepo) createdFor(user primitive.ObjectID) []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.created {
		if n.User == user {
			out = append(out, n)
		}
	}
	return out
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, user primitive.ObjectID, skip, limit int64) (*repo.NotificationList, error) {
	return m.ListForUserFn(ctx, user, skip, limit)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, user, id primitive.ObjectID) (*model.Notification, error) {
	return m.MarkReadFn(ctx, user, id)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, user primitive.ObjectID) (int64, error) {
	return m.MarkAllReadFn(ctx, user)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, user, id primitive.ObjectID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, user, id)
	}
	return nil
}

func (m *mockNotificationRepo) ClearAll(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

type mockPostRepo struct {
	CreateFn     func(ctx context.Context, post *model.Post) (*model.Post, error)
	FindByIDFn   func(ctx context.Context, id string) (*model.Post, error)
	ListPageFn   func(ctx context.Context, page, limit int64) (*db.PaginatedResult[model.Post], error)
	AddLikeFn    func(ctx context.Context, postID, user primitive.ObjectID) error
	RemoveLikeFn func(ctx context.Context, postID, user primitive.ObjectID) error
	AddCommentFn func(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error
	DeleteFn     func(ctx context.Context, postID primitive.ObjectID) error
}

var _ repo.PostRepository = (*mockPostRepo)(nil)

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	return m.CreateFn(ctx, post)
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockPostRepo) ListPage(ctx context.Context, page, limit int64) (*db.PaginatedResult[model.Post], error) {
	return m.ListPageFn(ctx, page, limit)
}

func (m *mockPostRepo) AddLike(ctx context.Context, postID, user primitive.ObjectID) error {
	return m.AddLikeFn(ctx, postID, user)
}

func (m *mockPostRepo) RemoveLike(ctx context.Context, postID, user primitive.ObjectID) error {
	return m.RemoveLikeFn(ctx, postID, user)
}

func (m *mockPostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error {
	return m.AddCommentFn(ctx, postID, comment)
}

func (m *mockPostRepo) Delete(ctx context.Context, postID primitive.ObjectID) error {
	return m.DeleteFn(ctx, postID)
}
