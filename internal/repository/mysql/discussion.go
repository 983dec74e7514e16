package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
)

type discussionRepository struct {
	DB *gorm.DB
}

var _ domain.DiscussionRepository = (*discussionRepository)(nil)

func NewDiscussionRepository(db *gorm.DB) *discussionRepository {
	return &discussionRepository{DB: db}
}

func (r *discussionRepository) GetByID(ctx context.Context, id int64) (domain.Discussion, error) {
	var d model.Discussion
	if err := r.DB.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return domain.Discussion{}, translateError("get discussion", err)
	}
	return d.ToDomain(), nil
}

// LockByID issues SELECT ... FOR UPDATE; it only holds the lock when called
// on a transaction handle.
func (r *discussionRepository) LockByID(ctx context.Context, id int64) (domain.Discussion, error) {
	var d model.Discussion
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, "id = ?", id).Error
	if err != nil {
		return domain.Discussion{}, translateError("lock discussion", err)
	}
	return d.ToDomain(), nil
}

func (r *discussionRepository) Store(ctx context.Context, d *domain.Discussion) error {
	row := model.NewDiscussionFromDomain(d)
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return translateError("store discussion", err)
	}
	d.ID = row.ID
	d.CreatedAt = row.CreatedAt
	d.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *discussionRepository) SetSoftDeleted(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Model(&model.Discussion{}).
		Where("id = ?", id).
		Update("soft_deleted", true)
	if result.Error != nil {
		return translateError("soft delete discussion", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *discussionRepository) UpdateStats(ctx context.Context, id int64, stats domain.DiscussionStats) error {
	err := r.DB.WithContext(ctx).Model(&model.Discussion{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"comment_count":          stats.CommentCount,
			"last_comment_at":        stats.LastCommentAt,
			"last_comment_poster_id": stats.LastCommentPosterID,
		}).Error
	return translateError("update discussion stats", err)
}

func (r *discussionRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Discussion{}, id)
	if result.Error != nil {
		return translateError("delete discussion", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
