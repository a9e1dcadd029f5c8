package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two connected users. Immutable once
// created except for the read flag, which only the recipient side flips.
// Messages are kept indefinitely.
type Message struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Sender    primitive.ObjectID `json:"sender" bson:"sender"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Content   string             `json:"content" bson:"content"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
