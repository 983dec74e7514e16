package request

import "github.com/Guyuepp/go-clean-discussion/domain"

type Comment struct {
	PosterID   *int64 `json:"poster_id"`
	Text       string `json:"text" binding:"required"`
	TextMarkup string `json:"text_markup" binding:"required,oneof=html markdown"`
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain(discussionID int64) domain.CreateCommentInput {
	return domain.CreateCommentInput{
		DiscussionID: discussionID,
		PosterID:     r.PosterID,
		Text:         r.Text,
		TextMarkup:   domain.TextMarkup(r.TextMarkup),
	}
}
