package repo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 10 * time.Second
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*model.User, error)
	FindByResetToken(ctx context.Context, digest string) (*model.User, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, digest string, expire time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	FindSuggestions(ctx context.Context, exclude []primitive.ObjectID, role string, subjects []string, limit int64) ([]model.User, error)
}

type userRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.User]
}

func NewUserRepository(con *mongo.Database, repo *db.Repository[model.User]) UserRepository {
	return &userRepository{
		con:       con,
		mongoRepo: repo,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = time.Now().UTC()

	exists, err := r.mongoRepo.Exists(ctx, db.NewFilter().Eq("email", user.Email).Build())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrEmailTaken
	}

	result, err := r.mongoRepo.Create(ctx, *user)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("email", strings.ToLower(strings.TrimSpace(email))).Build()
	user, err := r.mongoRepo.FindOne(ctx, filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("refresh_token", token).Build())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByResetToken(ctx context.Context, digest string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("reset_password_token", digest).
		Gt("reset_password_expire", time.Now().UTC()).
		Build()
	user, err := r.mongoRepo.FindOne(ctx, filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Update(ctx, bson.M{"_id": id}, bson.M{"refresh_token": token})
	return err
}

func (r *userRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, digest string, expire time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.Update(ctx, bson.M{"_id": id}, bson.M{
		"reset_password_token":  digest,
		"reset_password_expire": expire,
	})
	return err
}

func (r *userRepository) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.UpdateRaw(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"reset_password_token": "", "reset_password_expire": ""},
	})
	return err
}

// FindSuggestions returns users sharing the given role, excluding the given
// ids. For teachers with subjects, users teaching any of those subjects are
// appended up to the same limit.
func (r *userRepository) FindSuggestions(ctx context.Context, exclude []primitive.ObjectID, role string, subjects []string, limit int64) ([]model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	opts := options.Find().SetLimit(limit)
	filter := db.NewFilter().NotIn("_id", exclude).Eq("role", role).Build()
	suggestions, err := r.mongoRepo.FindAll(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	if role == model.RoleTeacher && len(subjects) > 0 {
		seen := exclude
		for _, s := range suggestions {
			seen = append(seen, s.ID)
		}
		subjectFilter := db.NewFilter().
			NotIn("_id", seen).
			Eq("role", model.RoleTeacher).
			In("subjects", subjects).
			Build()
		more, err := r.mongoRepo.FindAll(ctx, subjectFilter, opts)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, more...)
	}

	return suggestions, nil
}
