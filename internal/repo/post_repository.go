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

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	ListPage(ctx context.Context, page, limit int64) (*db.PaginatedResult[model.Post], error)
	AddLike(ctx context.Context, postID, user primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, user primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error
	Delete(ctx context.Context, postID primitive.ObjectID) error
}

type postRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Post]
}

func NewPostRepository(con *mongo.Database, repo *db.Repository[model.Post]) PostRepository {
	return &postRepository{
		con:       con,
		mongoRepo: repo,
	}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	result, err := r.mongoRepo.Create(ctx, *post)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return post, nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	post, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) ListPage(ctx context.Context, page, limit int64) (*db.PaginatedResult[model.Post], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindWithPagination(ctx, db.Empty(), db.PaginationParams{
		Page:     page,
		PageSize: limit,
		SortBy:   "created_at",
		SortDesc: true,
	})
}

func (r *postRepository) AddLike(ctx context.Context, postID, user primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.UpdateRaw(ctx, bson.M{"_id": postID}, bson.M{
		"$addToSet": bson.M{"likes": user},
	})
	return err
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, user primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.UpdateRaw(ctx, bson.M{"_id": postID}, bson.M{
		"$pull": bson.M{"likes": user},
	})
	return err
}

func (r *postRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.UpdateRaw(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Delete(ctx, bson.M{"_id": postID})
	return err
}
