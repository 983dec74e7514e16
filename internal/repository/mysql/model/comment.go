package model

import (
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type Comment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	DiscussionID int64     `gorm:"column:discussion_id;not null;index"`
	PosterID     *int64    `gorm:"column:poster_id;index"`
	Text         string    `gorm:"type:mediumtext;not null"`
	TextMarkup   string    `gorm:"column:text_markup;type:varchar(10);not null;default:html"`
	SoftDeleted  bool      `gorm:"column:soft_deleted;not null;default:false"`
	FirstComment bool      `gorm:"column:first_comment;not null;default:false"`
	CreatedAt    time.Time `gorm:"type:datetime"`
	UpdatedAt    time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:           c.ID,
		DiscussionID: c.DiscussionID,
		PosterID:     c.PosterID,
		Text:         c.Text,
		TextMarkup:   string(c.TextMarkup),
		SoftDeleted:  c.SoftDeleted,
		FirstComment: c.FirstComment,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:           m.ID,
		DiscussionID: m.DiscussionID,
		PosterID:     m.PosterID,
		Text:         m.Text,
		TextMarkup:   domain.TextMarkup(m.TextMarkup),
		SoftDeleted:  m.SoftDeleted,
		FirstComment: m.FirstComment,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
