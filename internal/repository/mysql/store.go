package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
)

type store struct {
	DB *gorm.DB
}

var _ domain.Store = (*store)(nil)

// NewStore wires the per-entity repositories onto one gorm handle.
func NewStore(db *gorm.DB) *store {
	return &store{DB: db}
}

func (s *store) Comments() domain.CommentRepository {
	return NewCommentRepository(s.DB)
}

func (s *store) Discussions() domain.DiscussionRepository {
	return NewDiscussionRepository(s.DB)
}

func (s *store) Subscriptions() domain.SubscriptionRepository {
	return NewSubscriptionRepository(s.DB)
}

func (s *store) Users() domain.UserRepository {
	return NewUserRepository(s.DB)
}

func (s *store) Reports() domain.ReportRepository {
	return NewReportRepository(s.DB)
}

// Transact runs fn inside one database transaction. Nested calls reuse the
// outer transaction through gorm's savepoints.
func (s *store) Transact(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{DB: tx})
	})
}

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Discussion{},
		&model.Comment{},
		&model.User{},
		&model.ScriptAuthor{},
		&model.Subscription{},
		&model.Report{},
		&model.Notification{},
	)
}

func translateError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return domain.NewStorageError(op, err)
}
