// Package report owns the per-item-type destroy handlers for reports.
package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

// Handler destroys every report of one item inside tx.
type Handler func(ctx context.Context, tx domain.Store, itemID int64) error

type Registry struct {
	mu       sync.RWMutex
	handlers map[domain.ReportItemType]Handler
}

var _ domain.ReportDestroyer = (*Registry)(nil)

// NewRegistry returns a registry that already knows comments and discussions.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[domain.ReportItemType]Handler)}
	r.Register(domain.ReportItemComment, DeleteRows(domain.ReportItemComment))
	r.Register(domain.ReportItemDiscussion, DeleteRows(domain.ReportItemDiscussion))
	return r
}

// Register sets the handler of an item type, replacing any previous one.
func (r *Registry) Register(itemType domain.ReportItemType, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[itemType] = h
}

func (r *Registry) DestroyAll(ctx context.Context, tx domain.Store, item domain.ReportItem) error {
	r.mu.RLock()
	h, ok := r.handlers[item.Type]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no report handler registered for item type %q", item.Type)
	}
	return h(ctx, tx, item.ID)
}

// DeleteRows is the plain handler: remove the report rows of the item.
func DeleteRows(itemType domain.ReportItemType) Handler {
	return func(ctx context.Context, tx domain.Store, itemID int64) error {
		n, err := tx.Reports().DeleteByItem(ctx, domain.ReportItem{Type: itemType, ID: itemID})
		if err != nil {
			return err
		}
		if n > 0 {
			logrus.Debugf("destroyed %d reports of %s %d", n, itemType, itemID)
		}
		return nil
	}
}
