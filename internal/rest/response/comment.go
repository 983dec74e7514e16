package response

import "github.com/Guyuepp/go-clean-discussion/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type Comment struct {
	ID           int64  `json:"id"`
	DiscussionID int64  `json:"discussion_id"`
	PosterID     *int64 `json:"poster_id,omitempty"`
	Text         string `json:"text"`
	TextMarkup   string `json:"text_markup"`
	SoftDeleted  bool   `json:"soft_deleted"`
	FirstComment bool   `json:"first_comment"`
	Fragment     string `json:"fragment,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:           c.ID,
		DiscussionID: c.DiscussionID,
		PosterID:     c.PosterID,
		Text:         c.Text,
		TextMarkup:   string(c.TextMarkup),
		SoftDeleted:  c.SoftDeleted,
		FirstComment: c.FirstComment,
		Fragment:     c.Fragment(),
		CreatedAt:    c.CreatedAt.Format(DateTimeFormat),
	}
}

type Recipient struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind"`
}

func NewRecipientFromDomain(n domain.Notification) Recipient {
	return Recipient{
		UserID: n.RecipientID,
		Kind:   string(n.Kind),
	}
}
