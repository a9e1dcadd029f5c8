package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents an account document in MongoDB. Password and token fields
// never leave the server.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Role     string             `json:"role" bson:"role"`
	Avatar   string             `json:"avatar,omitempty" bson:"avatar,omitempty"`

	// Student specific
	Grade string `json:"grade,omitempty" bson:"grade,omitempty"`

	// Teacher specific
	Subjects    []string `json:"subjects,omitempty" bson:"subjects,omitempty"`
	Institution string   `json:"institution,omitempty" bson:"institution,omitempty"`

	RefreshToken        string     `json:"-" bson:"refresh_token,omitempty"`
	ResetPasswordToken  string     `json:"-" bson:"reset_password_token,omitempty"`
	ResetPasswordExpire *time.Time `json:"-" bson:"reset_password_expire,omitempty"`

	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// UserSummary is the denormalized author/participant view embedded in posts,
// comments and connection listings.
type UserSummary struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Role   string             `json:"role,omitempty" bson:"role,omitempty"`
	Avatar string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// Summary projects the public fields of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Role: u.Role, Avatar: u.Avatar}
}
