package domain

import "errors"

// Sentinel errors shared between the service and repository layers.
// Handlers translate them to HTTP statuses; anything else is a 500.
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrNotAuthorized   = errors.New("user not authorized")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotYetLiked     = errors.New("post has not yet been liked")
)
