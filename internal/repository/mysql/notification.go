package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
)

type notificationRepository struct {
	DB *gorm.DB
}

var _ domain.NotificationRepository = (*notificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *notificationRepository {
	return &notificationRepository{DB: db}
}

// StoreBatch writes the batch into the outbox. A (recipient, comment) pair
// that is already queued is skipped, so a replayed batch never doubles mail.
func (r *notificationRepository) StoreBatch(ctx context.Context, ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	rows := make([]model.Notification, len(ns))
	for i := range ns {
		rows[i] = model.NewNotificationFromDomain(ns[i])
	}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	return translateError("store notifications", err)
}
