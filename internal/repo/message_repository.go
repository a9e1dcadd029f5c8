package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
)

var (
	ErrInvalidMessage = errors.New("invalid message: empty content")
)

const (
	maxRetries     = 3
	baseRetryDelay = 100 * time.Millisecond
	maxRetryDelay  = 2 * time.Second
)

// MessageRepository persists direct messages. Inserts are retried with
// exponential backoff since a dropped chat message is user-visible loss.
type MessageRepository interface {
	InsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error)
	FindConversation(ctx context.Context, a, b primitive.ObjectID) ([]model.Message, error)
	MarkRead(ctx context.Context, sender, recipient primitive.ObjectID) (int64, error)
}

type messageRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Message]
	logger    *zap.Logger
}

func NewMessageRepository(con *mongo.Database, repo *db.Repository[model.Message], logger *zap.Logger) MessageRepository {
	return &messageRepository{
		con:       con,
		mongoRepo: repo,
		logger:    logger,
	}
}

func (m *messageRepository) InsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if msg == nil || msg.Content == "" {
		return nil, ErrInvalidMessage
	}

	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := m.waitForRetry(ctx, attempt); err != nil {
				return nil, err
			}
		}

		result, err := m.mongoRepo.Create(ctx, *msg)
		if err == nil {
			if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
				msg.ID = oid
			}
			m.logger.Debug("message inserted",
				zap.String("id", msg.ID.Hex()),
				zap.Int("attempt", attempt+1),
			)
			return msg, nil
		}

		lastErr = err
		if !m.isRetryable(err) {
			break
		}

		m.logger.Warn("message insert failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxRetries),
		)
	}

	m.logger.Error("message insert failed after all retries", zap.Error(lastErr))
	return nil, fmt.Errorf("insert message failed: %w", lastErr)
}

// FindConversation returns both directions of the pair's history, oldest
// first.
func (m *messageRepository) FindConversation(ctx context.Context, a, b primitive.ObjectID) ([]model.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Or(
		bson.M{"sender": a, "recipient": b},
		bson.M{"sender": b, "recipient": a},
	).Build()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return m.mongoRepo.FindAll(ctx, filter, opts)
}

// MarkRead flips the read flag on every unread message from sender to
// recipient. Only the recipient side calls this.
func (m *messageRepository) MarkRead(ctx context.Context, sender, recipient primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("sender", sender).
		Eq("recipient", recipient).
		Eq("read", false).
		Build()
	result, err := m.mongoRepo.UpdateMany(ctx, filter, bson.M{"read": true})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (m *messageRepository) waitForRetry(ctx context.Context, attempt int) error {
	delay := baseRetryDelay * time.Duration(1<<uint(attempt-1))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (m *messageRepository) isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
