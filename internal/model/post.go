package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media kinds attachable to a post
const (
	MediaPhoto   = "photo"
	MediaVideo   = "video"
	MediaArticle = "article"
)

// Post is a feed entry. Comments are embedded subdocuments with the author
// summary denormalized at write time, so listing the feed is a single query.
type Post struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Author    UserSummary          `json:"author" bson:"author"`
	Content   string               `json:"content" bson:"content"`
	Media     *Media               `json:"media,omitempty" bson:"media,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	Shares    int                  `json:"shares" bson:"shares"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updated_at"`
}

// Media is an optional attachment on a post.
type Media struct {
	Type string `json:"type" bson:"type"`
	URL  string `json:"url" bson:"url"`
}

// Comment is embedded in its post.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"id"`
	Author    UserSummary        `json:"author" bson:"author"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
