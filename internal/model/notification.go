package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationInfo        = "info"
	NotificationSuccess     = "success"
	NotificationWarning     = "warning"
	NotificationError       = "error"
	NotificationAchievement = "achievement"
	NotificationMessage     = "message"
)

// Notification is a transient per-user alert. Documents expire 30 days after
// creation via a TTL index on created_at; the persisted record is the durable
// source of truth, the realtime push is best-effort.
type Notification struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Type      string             `json:"type" bson:"type"`
	Icon      string             `json:"icon,omitempty" bson:"icon,omitempty"`
	Link      string             `json:"link,omitempty" bson:"link,omitempty"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
