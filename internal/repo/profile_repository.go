package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByUser(ctx context.Context, user primitive.ObjectID) (*model.Profile, error)
	Upsert(ctx context.Context, user primitive.ObjectID, update model.ProfileUpdate, defaults *model.Profile) (*model.Profile, error)
	SetProfilePic(ctx context.Context, user primitive.ObjectID, url string, defaults *model.Profile) (*model.Profile, error)
}

type profileRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Profile]
}

func NewProfileRepository(con *mongo.Database, repo *db.Repository[model.Profile]) ProfileRepository {
	return &profileRepository{
		con:       con,
		mongoRepo: repo,
	}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	_, err := r.mongoRepo.Create(ctx, *profile)
	return err
}

func (r *profileRepository) FindByUser(ctx context.Context, user primitive.ObjectID) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	profile, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("user", user).Build())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, user primitive.ObjectID, update model.ProfileUpdate, defaults *model.Profile) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Skills != nil {
		set["skills"] = update.Skills
	}
	if update.Goals != nil {
		set["goals"] = *update.Goals
	}
	if update.SocialLinks != nil {
		set["social_links"] = *update.SocialLinks
	}
	if update.ProfilePic != nil {
		set["profile_pic"] = *update.ProfilePic
	}

	return r.upsert(ctx, user, set, defaults)
}

func (r *profileRepository) SetProfilePic(ctx context.Context, user primitive.ObjectID, url string, defaults *model.Profile) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	set := bson.M{"profile_pic": url, "updated_at": time.Now().UTC()}
	return r.upsert(ctx, user, set, defaults)
}

func (r *profileRepository) upsert(ctx context.Context, user primitive.ObjectID, set bson.M, defaults *model.Profile) (*model.Profile, error) {
	setOnInsert := bson.M{"user": user, "created_at": time.Now().UTC()}
	if defaults != nil {
		setOnInsert["name"] = defaults.Name
		setOnInsert["email"] = defaults.Email
		setOnInsert["role"] = defaults.Role
	}

	userFilter := db.NewFilter().Eq("user", user).Build()
	_, err := r.mongoRepo.UpdateRaw(ctx, userFilter, bson.M{
		"$set":         set,
		"$setOnInsert": setOnInsert,
	}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return r.mongoRepo.FindOne(ctx, userFilter)
}
