package model

import (
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type Report struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ItemType   string    `gorm:"column:item_type;type:varchar(20);not null;index:idx_report_item"`
	ItemID     int64     `gorm:"column:item_id;not null;index:idx_report_item"`
	ReporterID int64     `gorm:"column:reporter_id;not null"`
	Reason     string    `gorm:"type:varchar(200);not null"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (Report) TableName() string {
	return "reports"
}

func NewReportFromDomain(r *domain.Report) *Report {
	return &Report{
		ID:         r.ID,
		ItemType:   string(r.Item.Type),
		ItemID:     r.Item.ID,
		ReporterID: r.ReporterID,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *Report) ToDomain() domain.Report {
	return domain.Report{
		ID: m.ID,
		Item: domain.ReportItem{
			Type: domain.ReportItemType(m.ItemType),
			ID:   m.ItemID,
		},
		ReporterID: m.ReporterID,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
	}
}
