package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a user-authored text document with embedded likes and comments.
// Name and Avatar are a snapshot of the author's profile taken at creation
// time and are never refreshed afterwards.
type Post struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	User     string             `json:"user" bson:"user"`
	Text     string             `json:"text" bson:"text"`
	Name     string             `json:"name" bson:"name"`
	Avatar   string             `json:"avatar" bson:"avatar"`
	Likes    []Like             `json:"likes" bson:"likes"`
	Comments []Comment          `json:"comments" bson:"comments"`
	Date     time.Time          `json:"date" bson:"date"`
}

// Like marks a single user's approval of a post. At most one entry per
// user id may exist in a post's likes array.
type Like struct {
	User string `json:"user" bson:"user"`
}

// Comment is a reply nested inside a post. Name and Avatar are snapshotted
// the same way as on Post.
type Comment struct {
	ID     primitive.ObjectID `json:"id" bson:"_id"`
	User   string             `json:"user" bson:"user"`
	Text   string             `json:"text" bson:"text"`
	Name   string             `json:"name" bson:"name"`
	Avatar string             `json:"avatar" bson:"avatar"`
	Date   time.Time          `json:"date" bson:"date"`
}

// FindComment returns the comment with the given id, or nil if the post
// has no such comment.
func (p *Post) FindComment(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// LikedBy reports whether the given user already has a like on the post.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}
