package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
)

// notificationTTL is store-level retention, not an application invariant.
const notificationTTL = 30 * 24 * time.Hour

// NotificationList is the paged listing plus counters the client polls.
type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unreadCount"`
	Total         int64                `json:"total"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListForUser(ctx context.Context, user primitive.ObjectID, skip, limit int64) (*NotificationList, error)
	MarkRead(ctx context.Context, user, id primitive.ObjectID) (*model.Notification, error)
	MarkAllRead(ctx context.Context, user primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, user, id primitive.ObjectID) error
	ClearAll(ctx context.Context, user primitive.ObjectID) (int64, error)
}

type notificationRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Notification]
	logger    *zap.Logger
}

func NewNotificationRepository(con *mongo.Database, repo *db.Repository[model.Notification], logger *zap.Logger) NotificationRepository {
	r := &notificationRepository{
		con:       con,
		mongoRepo: repo,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
	defer cancel()
	if err := repo.EnsureTTLIndex(ctx, "created_at", notificationTTL); err != nil {
		logger.Warn("failed to ensure notification TTL index", zap.Error(err))
	}
	if err := repo.EnsureIndex(ctx, "user", "read"); err != nil {
		logger.Warn("failed to ensure notification user index", zap.Error(err))
	}

	return r
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if n.Type == "" {
		n.Type = model.NotificationInfo
	}
	n.CreatedAt = time.Now().UTC()

	result, err := r.mongoRepo.Create(ctx, *n)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return n, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, user primitive.ObjectID, skip, limit int64) (*NotificationList, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	if limit < 1 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}

	userFilter := db.NewFilter().Eq("user", user).Build()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	notifications, err := r.mongoRepo.FindAll(ctx, userFilter, opts)
	if err != nil {
		return nil, err
	}

	unread, err := r.mongoRepo.Count(ctx, db.NewFilter().Eq("user", user).Eq("read", false).Build())
	if err != nil {
		return nil, err
	}
	total, err := r.mongoRepo.Count(ctx, userFilter)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}
	return &NotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
		Total:         total,
	}, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, user, id primitive.ObjectID) (*model.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	ownerFilter := db.NewFilter().Eq("_id", id).Eq("user", user).Build()
	result, err := r.mongoRepo.Update(ctx, ownerFilter, bson.M{"read": true})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperr.NotFound("notification not found")
	}
	return r.mongoRepo.FindOne(ctx, ownerFilter)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, user primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("user", user).Eq("read", false).Build()
	result, err := r.mongoRepo.UpdateMany(ctx, filter, bson.M{"read": true})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *notificationRepository) Delete(ctx context.Context, user, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Delete(ctx, db.NewFilter().Eq("_id", id).Eq("user", user).Build())
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (r *notificationRepository) ClearAll(ctx context.Context, user primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.DeleteMany(ctx, db.NewFilter().Eq("user", user).Build())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
