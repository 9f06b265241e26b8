package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the profile record posts and comments snapshot their display
// fields from. Registration and login live in the auth service; this
// service only reads profiles.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Avatar   string             `json:"avatar" bson:"avatar"`
	Date     time.Time          `json:"date" bson:"date"`
}
