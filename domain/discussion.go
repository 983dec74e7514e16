package domain

import (
	"context"
	"time"
)

// Discussion is a thread of comments, optionally attached to a script.
type Discussion struct {
	ID          int64  `json:"id"`
	ScriptID    *int64 `json:"script_id,omitempty"`
	SoftDeleted bool   `json:"soft_deleted"`
	DiscussionStats
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscussionStats are derived from the comment set and never authoritative.
type DiscussionStats struct {
	CommentCount        int64      `json:"comment_count"`
	LastCommentAt       *time.Time `json:"last_comment_at,omitempty"`
	LastCommentPosterID *int64     `json:"last_comment_poster_id,omitempty"`
}

type DiscussionRepository interface {
	GetByID(ctx context.Context, id int64) (Discussion, error)

	// LockByID reads the discussion and holds a row lock on it until the
	// surrounding transaction ends.
	LockByID(ctx context.Context, id int64) (Discussion, error)

	Store(ctx context.Context, d *Discussion) error
	SetSoftDeleted(ctx context.Context, id int64) error
	UpdateStats(ctx context.Context, id int64, stats DiscussionStats) error

	// Delete removes the discussion row only. Cascading to comments is the
	// coordinator's job.
	Delete(ctx context.Context, id int64) error
}

// DiscussionLocker serializes mutations of one discussion across goroutines
// and processes. Different discussions never contend.
type DiscussionLocker interface {
	Lock(ctx context.Context, discussionID int64) (unlock func(), err error)
}

// StatsEngine recomputes derived discussion membership facts.
type StatsEngine interface {
	// Recompute refreshes the first-comment flags and aggregate stats of a
	// discussion under its lock.
	Recompute(ctx context.Context, discussionID int64) error

	// RecomputeTx does the same inside an already open transaction whose
	// caller holds the discussion lock.
	RecomputeTx(ctx context.Context, tx Store, discussionID int64) error
}
