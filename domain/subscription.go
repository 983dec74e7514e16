package domain

import (
	"context"
	"time"
)

// Subscription marks a user who wants to hear about new comments in a discussion.
type Subscription struct {
	DiscussionID int64
	UserID       int64
	CreatedAt    time.Time
}

type SubscriptionRepository interface {
	// FetchByDiscussion returns the subscriptions of a discussion ordered by user id.
	FetchByDiscussion(ctx context.Context, discussionID int64) ([]Subscription, error)
	Store(ctx context.Context, s *Subscription) error
	DeleteByDiscussion(ctx context.Context, discussionID int64) error
}
