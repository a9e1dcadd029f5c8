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
)

type SettingsRepository interface {
	// GetOrCreate returns the user's settings, creating defaults on first read.
	GetOrCreate(ctx context.Context, user primitive.ObjectID) (*model.UserSettings, error)
	Update(ctx context.Context, user primitive.ObjectID, update model.SettingsUpdate) (*model.UserSettings, error)
}

type settingsRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.UserSettings]
}

func NewSettingsRepository(con *mongo.Database, repo *db.Repository[model.UserSettings]) SettingsRepository {
	return &settingsRepository{
		con:       con,
		mongoRepo: repo,
	}
}

func (r *settingsRepository) GetOrCreate(ctx context.Context, user primitive.ObjectID) (*model.UserSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	userFilter := db.NewFilter().Eq("user", user).Build()
	settings, err := r.mongoRepo.FindOne(ctx, userFilter)
	if err == nil {
		return settings, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	defaults := model.DefaultSettings(user)
	result, createErr := r.mongoRepo.Create(ctx, defaults)
	if createErr != nil {
		return nil, createErr
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		defaults.ID = oid
	}
	return &defaults, nil
}

func (r *settingsRepository) Update(ctx context.Context, user primitive.ObjectID, update model.SettingsUpdate) (*model.UserSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.DarkMode != nil {
		set["dark_mode"] = *update.DarkMode
	}
	if update.EmailNotifications != nil {
		set["email_notifications"] = *update.EmailNotifications
	}
	if update.PushNotifications != nil {
		set["push_notifications"] = *update.PushNotifications
	}
	if update.ProfileVisibility != nil {
		set["profile_visibility"] = *update.ProfileVisibility
	}
	if update.ShowEmail != nil {
		set["show_email"] = *update.ShowEmail
	}
	if update.AutoPlayVideos != nil {
		set["auto_play_videos"] = *update.AutoPlayVideos
	}
	if update.DefaultLanguage != nil {
		set["default_language"] = *update.DefaultLanguage
	}
	if update.NewsletterSubscribed != nil {
		set["newsletter_subscribed"] = *update.NewsletterSubscribed
	}
	if update.TwoFactorAuth != nil {
		set["two_factor_auth"] = *update.TwoFactorAuth
	}

	userFilter := db.NewFilter().Eq("user", user).Build()
	_, err := r.mongoRepo.UpdateRaw(ctx, userFilter, bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"user": user, "created_at": time.Now().UTC()},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return r.mongoRepo.FindOne(ctx, userFilter)
}
