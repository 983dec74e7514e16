package model

import (
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type Subscription struct {
	DiscussionID int64     `gorm:"column:discussion_id;primaryKey"`
	UserID       int64     `gorm:"column:user_id;primaryKey"`
	CreatedAt    time.Time `gorm:"type:datetime"`
}

func (Subscription) TableName() string {
	return "discussion_subscriptions"
}

func NewSubscriptionFromDomain(s *domain.Subscription) *Subscription {
	return &Subscription{
		DiscussionID: s.DiscussionID,
		UserID:       s.UserID,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *Subscription) ToDomain() domain.Subscription {
	return domain.Subscription{
		DiscussionID: m.DiscussionID,
		UserID:       m.UserID,
		CreatedAt:    m.CreatedAt,
	}
}
