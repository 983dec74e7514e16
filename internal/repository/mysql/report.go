package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
)

type reportRepository struct {
	DB *gorm.DB
}

var _ domain.ReportRepository = (*reportRepository)(nil)

func NewReportRepository(db *gorm.DB) *reportRepository {
	return &reportRepository{DB: db}
}

func (r *reportRepository) Store(ctx context.Context, rep *domain.Report) error {
	row := model.NewReportFromDomain(rep)
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return translateError("store report", err)
	}
	rep.ID = row.ID
	rep.CreatedAt = row.CreatedAt
	return nil
}

func (r *reportRepository) FetchByItem(ctx context.Context, item domain.ReportItem) ([]domain.Report, error) {
	var reports []model.Report
	err := r.DB.WithContext(ctx).
		Where("item_type = ? AND item_id = ?", string(item.Type), item.ID).
		Order("id").
		Find(&reports).Error
	if err != nil {
		return nil, translateError("fetch reports", err)
	}

	res := make([]domain.Report, len(reports))
	for i := range reports {
		res[i] = reports[i].ToDomain()
	}
	return res, nil
}

func (r *reportRepository) DeleteByItem(ctx context.Context, item domain.ReportItem) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("item_type = ? AND item_id = ?", string(item.Type), item.ID).
		Delete(&model.Report{})
	if result.Error != nil {
		return 0, translateError("delete reports", result.Error)
	}
	return result.RowsAffected, nil
}
