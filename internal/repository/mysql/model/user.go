package model

import (
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type User struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	Name               string    `gorm:"type:varchar(100);not null"`
	AuthorNotification int8      `gorm:"column:author_email_notification_type_id;not null;default:0"`
	CreatedAt          time.Time `gorm:"type:datetime"`
	UpdatedAt          time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:                 m.ID,
		Name:               m.Name,
		AuthorNotification: domain.AuthorNotification(m.AuthorNotification),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ScriptAuthor links a script to one of its users.
type ScriptAuthor struct {
	ScriptID int64 `gorm:"column:script_id;primaryKey"`
	UserID   int64 `gorm:"column:user_id;primaryKey"`
}

func (ScriptAuthor) TableName() string {
	return "script_authors"
}
