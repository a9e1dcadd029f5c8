package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the public-facing profile document, one per user.
type Profile struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Role        string             `json:"role" bson:"role"`
	ProfilePic  string             `json:"profilePic,omitempty" bson:"profile_pic,omitempty"`
	Bio         string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills      []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	Goals       string             `json:"goals,omitempty" bson:"goals,omitempty"`
	SocialLinks SocialLinks        `json:"socialLinks" bson:"social_links"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

type SocialLinks struct {
	LinkedIn string `json:"linkedIn,omitempty" bson:"linked_in,omitempty"`
	GitHub   string `json:"github,omitempty" bson:"github,omitempty"`
}

// ProfileUpdate carries a partial profile update; nil fields are untouched.
type ProfileUpdate struct {
	Name        *string      `json:"name"`
	Email       *string      `json:"email"`
	Bio         *string      `json:"bio"`
	Skills      []string     `json:"skills"`
	Goals       *string      `json:"goals"`
	SocialLinks *SocialLinks `json:"socialLinks"`
	ProfilePic  *string      `json:"profilePic"`
}
