package domain

import (
	"context"
	"time"
)

// AuthorNotification is a script author's preference for comment emails.
type AuthorNotification int8

const (
	AuthorNotificationNone AuthorNotification = iota
	// AuthorNotificationComment notifies on every comment.
	AuthorNotificationComment
	// AuthorNotificationDiscussion notifies only on discussion-starting comments.
	AuthorNotificationDiscussion
)

func (n AuthorNotification) String() string {
	switch n {
	case AuthorNotificationNone:
		return "none"
	case AuthorNotificationComment:
		return "comment"
	case AuthorNotificationDiscussion:
		return "discussion"
	default:
		return "unknown"
	}
}

// User represents a user entity in the system.
type User struct {
	ID                 int64
	Name               string
	AuthorNotification AuthorNotification
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UserRepository defines the contract for user lookups used by notification fan-out.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// FetchScriptAuthors returns the users associated with a script, ordered by id.
	FetchScriptAuthors(ctx context.Context, scriptID int64) ([]User, error)
}
