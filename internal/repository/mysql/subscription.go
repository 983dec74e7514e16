package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
)

type subscriptionRepository struct {
	DB *gorm.DB
}

var _ domain.SubscriptionRepository = (*subscriptionRepository)(nil)

func NewSubscriptionRepository(db *gorm.DB) *subscriptionRepository {
	return &subscriptionRepository{DB: db}
}

func (r *subscriptionRepository) FetchByDiscussion(ctx context.Context, discussionID int64) ([]domain.Subscription, error) {
	var subs []model.Subscription
	err := r.DB.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("user_id").
		Find(&subs).Error
	if err != nil {
		return nil, translateError("fetch subscriptions", err)
	}

	res := make([]domain.Subscription, len(subs))
	for i := range subs {
		res[i] = subs[i].ToDomain()
	}
	return res, nil
}

// Store is idempotent: subscribing twice keeps the first row.
func (r *subscriptionRepository) Store(ctx context.Context, s *domain.Subscription) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.NewSubscriptionFromDomain(s)).Error
	return translateError("store subscription", err)
}

func (r *subscriptionRepository) DeleteByDiscussion(ctx context.Context, discussionID int64) error {
	err := r.DB.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Delete(&model.Subscription{}).Error
	return translateError("delete subscriptions", err)
}
