package mysql

import (
	"context"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type commentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return domain.Comment{}, translateError("get comment", err)
	}
	return comment.ToDomain(), nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	row := model.NewCommentFromDomain(comment)
	if err := c.DB.WithContext(ctx).Create(row).Error; err != nil {
		return translateError("store comment", err)
	}
	comment.ID = row.ID
	comment.CreatedAt = row.CreatedAt
	comment.UpdatedAt = row.UpdatedAt
	return nil
}

func (c *commentRepository) SetSoftDeleted(ctx context.Context, id int64) error {
	result := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{"soft_deleted": true, "first_comment": false})
	if result.Error != nil {
		return translateError("soft delete comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *commentRepository) SetFirstComment(ctx context.Context, ids []int64, first bool) error {
	if len(ids) == 0 {
		return nil
	}
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id IN ?", ids).
		UpdateColumn("first_comment", first).Error
	return translateError("set first comment", err)
}

func (c *commentRepository) Delete(ctx context.Context, id int64) error {
	result := c.DB.WithContext(ctx).Delete(&model.Comment{}, id)
	if result.Error != nil {
		return translateError("delete comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *commentRepository) FetchByDiscussion(ctx context.Context, discussionID int64, includeDeleted bool) ([]domain.Comment, error) {
	var comments []model.Comment
	query := c.DB.WithContext(ctx).Where("discussion_id = ?", discussionID)
	if !includeDeleted {
		query = query.Where("soft_deleted = ?", false)
	}
	if err := query.Order("id").Find(&comments).Error; err != nil {
		return nil, translateError("fetch comments", err)
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

var _ domain.CommentRepository = (*commentRepository)(nil)
