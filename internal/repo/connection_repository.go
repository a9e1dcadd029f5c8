package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
)

// ConnectionRepository persists the connection graph: directed request edges
// with at most one edge per unordered pair of users.
type ConnectionRepository interface {
	Create(ctx context.Context, requester, recipient primitive.ObjectID) (*model.Connection, error)
	FindByID(ctx context.Context, id string) (*model.Connection, error)
	// AcceptedExists reports whether an accepted edge exists between the two
	// users in either direction. Point read, no caching: the relay re-queries
	// on every join.
	AcceptedExists(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	Accept(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAcceptedFor(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error)
	FindPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]model.Connection, error)
	FindAllFor(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error)
}

type connectionRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Connection]
}

func NewConnectionRepository(con *mongo.Database, repo *db.Repository[model.Connection]) ConnectionRepository {
	return &connectionRepository{
		con:       con,
		mongoRepo: repo,
	}
}

func pairFilter(a, b primitive.ObjectID) bson.M {
	return db.NewFilter().Or(
		bson.M{"requester": a, "recipient": b},
		bson.M{"requester": b, "recipient": a},
	).Build()
}

func (r *connectionRepository) Create(ctx context.Context, requester, recipient primitive.ObjectID) (*model.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	// One edge per unordered pair, checked at creation.
	exists, err := r.mongoRepo.Exists(ctx, pairFilter(requester, recipient))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrConnectionExists
	}

	now := time.Now().UTC()
	edge := model.Connection{
		Requester: requester,
		Recipient: recipient,
		Status:    model.ConnectionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.mongoRepo.Create(ctx, edge)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		edge.ID = oid
	}
	return &edge, nil
}

func (r *connectionRepository) FindByID(ctx context.Context, id string) (*model.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	edge, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrRequestNotFound
		}
		return nil, err
	}
	return edge, nil
}

func (r *connectionRepository) AcceptedExists(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("status", model.ConnectionAccepted).
		Or(
			bson.M{"requester": a, "recipient": b},
			bson.M{"requester": b, "recipient": a},
		).
		Build()
	return r.mongoRepo.Exists(ctx, filter)
}

func (r *connectionRepository) Accept(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Update(ctx, bson.M{"_id": id}, bson.M{
		"status":     model.ConnectionAccepted,
		"updated_at": time.Now().UTC(),
	})
	return err
}

func (r *connectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Delete(ctx, bson.M{"_id": id})
	return err
}

func (r *connectionRepository) FindAcceptedFor(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("status", model.ConnectionAccepted).
		Or(
			bson.M{"requester": user},
			bson.M{"recipient": user},
		).
		Build()
	return r.mongoRepo.FindAll(ctx, filter)
}

func (r *connectionRepository) FindPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]model.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("recipient", recipient).
		Eq("status", model.ConnectionPending).
		Build()
	return r.mongoRepo.FindAll(ctx, filter)
}

func (r *connectionRepository) FindAllFor(ctx context.Context, user primitive.ObjectID) ([]model.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Or(
		bson.M{"requester": user},
		bson.M{"recipient": user},
	).Build()
	return r.mongoRepo.FindAll(ctx, filter)
}
