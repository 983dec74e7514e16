package model

import (
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type Discussion struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement"`
	ScriptID            *int64     `gorm:"column:script_id;index"`
	SoftDeleted         bool       `gorm:"column:soft_deleted;not null;default:false"`
	CommentCount        int64      `gorm:"column:comment_count;not null;default:0"`
	LastCommentAt       *time.Time `gorm:"column:last_comment_at;type:datetime"`
	LastCommentPosterID *int64     `gorm:"column:last_comment_poster_id"`
	CreatedAt           time.Time  `gorm:"type:datetime"`
	UpdatedAt           time.Time  `gorm:"type:datetime"`
}

func (Discussion) TableName() string {
	return "discussions"
}

func NewDiscussionFromDomain(d *domain.Discussion) *Discussion {
	return &Discussion{
		ID:                  d.ID,
		ScriptID:            d.ScriptID,
		SoftDeleted:         d.SoftDeleted,
		CommentCount:        d.CommentCount,
		LastCommentAt:       d.LastCommentAt,
		LastCommentPosterID: d.LastCommentPosterID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (m *Discussion) ToDomain() domain.Discussion {
	return domain.Discussion{
		ID:          m.ID,
		ScriptID:    m.ScriptID,
		SoftDeleted: m.SoftDeleted,
		DiscussionStats: domain.DiscussionStats{
			CommentCount:        m.CommentCount,
			LastCommentAt:       m.LastCommentAt,
			LastCommentPosterID: m.LastCommentPosterID,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
