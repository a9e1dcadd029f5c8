package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSettings holds per-user preferences, one document per user.
type UserSettings struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User                 primitive.ObjectID `json:"user" bson:"user"`
	DarkMode             bool               `json:"darkMode" bson:"dark_mode"`
	EmailNotifications   bool               `json:"emailNotifications" bson:"email_notifications"`
	PushNotifications    bool               `json:"pushNotifications" bson:"push_notifications"`
	ProfileVisibility    string             `json:"profileVisibility" bson:"profile_visibility"`
	ShowEmail            bool               `json:"showEmail" bson:"show_email"`
	AutoPlayVideos       bool               `json:"autoPlayVideos" bson:"auto_play_videos"`
	DefaultLanguage      string             `json:"defaultLanguage" bson:"default_language"`
	NewsletterSubscribed bool               `json:"newsLetterSubscribed" bson:"newsletter_subscribed"`
	TwoFactorAuth        bool               `json:"twoFactorAuth" bson:"two_factor_auth"`
	CreatedAt            time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updated_at"`
}

// DefaultSettings returns the settings document created on first read.
func DefaultSettings(userID primitive.ObjectID) UserSettings {
	now := time.Now().UTC()
	return UserSettings{
		User:               userID,
		EmailNotifications: true,
		PushNotifications:  true,
		ProfileVisibility:  "public",
		DefaultLanguage:    "en",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// SettingsUpdate carries a partial settings update; nil fields are untouched.
type SettingsUpdate struct {
	DarkMode             *bool   `json:"darkMode"`
	EmailNotifications   *bool   `json:"emailNotifications"`
	PushNotifications    *bool   `json:"pushNotifications"`
	ProfileVisibility    *string `json:"profileVisibility"`
	ShowEmail            *bool   `json:"showEmail"`
	AutoPlayVideos       *bool   `json:"autoPlayVideos"`
	DefaultLanguage      *string `json:"defaultLanguage"`
	NewsletterSubscribed *bool   `json:"newsLetterSubscribed"`
	TwoFactorAuth        *bool   `json:"twoFactorAuth"`
}
