package domain

import (
	"context"
	"fmt"
	"time"
)

// TextMarkup is the markup language a comment text is written in.
type TextMarkup string

const (
	MarkupHTML     TextMarkup = "html"
	MarkupMarkdown TextMarkup = "markdown"
)

// Valid reports whether m is one of the recognized markups.
func (m TextMarkup) Valid() bool {
	return m == MarkupHTML || m == MarkupMarkdown
}

// Comment is a single reply inside a discussion.
type Comment struct {
	ID           int64      `json:"id"`
	DiscussionID int64      `json:"discussion_id"`
	PosterID     *int64     `json:"poster_id,omitempty"` // nil once the poster has been erased
	Text         string     `json:"text"`
	TextMarkup   TextMarkup `json:"text_markup"`
	SoftDeleted  bool       `json:"soft_deleted"`
	FirstComment bool       `json:"first_comment"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PostedBy reports whether userID is the poster of the comment.
func (c *Comment) PostedBy(userID int64) bool {
	return c.PosterID != nil && *c.PosterID == userID
}

// Fragment is the URL anchor pointing at the comment inside its discussion.
// The first comment is the discussion itself and has no anchor.
func (c *Comment) Fragment() string {
	if c.FirstComment {
		return ""
	}
	return fmt.Sprintf("#comment-%d", c.ID)
}

// CreateCommentInput carries a reply submission.
type CreateCommentInput struct {
	DiscussionID int64      `validate:"required,gt=0"`
	PosterID     *int64     `validate:"omitempty,gt=0"`
	Text         string     `validate:"required"`
	TextMarkup   TextMarkup `validate:"required,oneof=html markdown"`
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	GetByID(ctx context.Context, id int64) (Comment, error)
	Store(ctx context.Context, c *Comment) error
	SetSoftDeleted(ctx context.Context, id int64) error
	// SetFirstComment writes the derived first-comment flag of the given comments.
	SetFirstComment(ctx context.Context, ids []int64, first bool) error
	Delete(ctx context.Context, id int64) error
	// FetchByDiscussion returns the comments of a discussion ordered by id ascending.
	FetchByDiscussion(ctx context.Context, discussionID int64, includeDeleted bool) ([]Comment, error)
}

// CommentUsecase is the lifecycle coordinator of a comment.
type CommentUsecase interface {
	Create(ctx context.Context, in CreateCommentInput) (Comment, error)
	Get(ctx context.Context, id int64) (Comment, error)
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}

// FirstLiveComment returns the lowest-id comment that is not soft-deleted.
// comments must be ordered by id ascending.
func FirstLiveComment(comments []Comment) (Comment, bool) {
	for _, c := range comments {
		if !c.SoftDeleted {
			return c, true
		}
	}
	return Comment{}, false
}
