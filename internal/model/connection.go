package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection edge states. An edge is created pending, moves to accepted by
// recipient action or is deleted on rejection. It never moves backward.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
)

// Connection is a directed request edge between two users. At most one edge
// exists per unordered pair; this is checked at creation time.
type Connection struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Requester primitive.ObjectID `json:"requester" bson:"requester"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ConnectedUser is the view returned when listing a user's accepted
// connections: the other party plus liveness and the edge id.
type ConnectedUser struct {
	UserSummary  `bson:",inline"`
	ConnectionID primitive.ObjectID `json:"connectionId"`
	IsOnline     bool               `json:"isOnline"`
}

// PendingRequest is a pending edge with the requester's summary resolved.
type PendingRequest struct {
	ID        primitive.ObjectID `json:"id"`
	Requester UserSummary        `json:"requester"`
	CreatedAt time.Time          `json:"createdAt"`
}
