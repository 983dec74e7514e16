package domain

import (
	"context"
	"time"
)

// ReportItemType tags what kind of entity a report points at.
type ReportItemType string

const (
	ReportItemComment    ReportItemType = "Comment"
	ReportItemDiscussion ReportItemType = "Discussion"
)

// ReportItem is the {type, id} reference from a report to the reported entity.
type ReportItem struct {
	Type ReportItemType
	ID   int64
}

// Report is an abuse flag owned by the item it reports.
type Report struct {
	ID         int64
	Item       ReportItem
	ReporterID int64
	Reason     string
	CreatedAt  time.Time
}

type ReportRepository interface {
	Store(ctx context.Context, r *Report) error
	FetchByItem(ctx context.Context, item ReportItem) ([]Report, error)
	// DeleteByItem removes every report of the item and returns how many were removed.
	DeleteByItem(ctx context.Context, item ReportItem) (int64, error)
}

// ReportDestroyer destroys the dependent reports of an item.
type ReportDestroyer interface {
	DestroyAll(ctx context.Context, tx Store, item ReportItem) error
}
