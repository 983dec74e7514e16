package model

import (
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

// Notification is a row of the outbox the mailer drains.
type Notification struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Kind        string    `gorm:"type:varchar(20);not null"`
	RecipientID int64     `gorm:"column:recipient_id;not null;uniqueIndex:idx_outbox_recipient_comment"`
	CommentID   int64     `gorm:"column:comment_id;not null;uniqueIndex:idx_outbox_recipient_comment"`
	CreatedAt   time.Time `gorm:"type:datetime"`
}

func (Notification) TableName() string {
	return "notification_outbox"
}

func NewNotificationFromDomain(n domain.Notification) Notification {
	return Notification{
		ID:          n.ID,
		Kind:        string(n.Kind),
		RecipientID: n.RecipientID,
		CommentID:   n.CommentID,
		CreatedAt:   n.CreatedAt,
	}
}
