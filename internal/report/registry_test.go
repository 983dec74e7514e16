package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/memory"
)

func TestRegistry_DestroyAll(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	target := domain.ReportItem{Type: domain.ReportItemComment, ID: 1}
	kept := domain.ReportItem{Type: domain.ReportItemDiscussion, ID: 1}
	require.NoError(t, store.Reports().Store(ctx, &domain.Report{Item: target}))
	require.NoError(t, store.Reports().Store(ctx, &domain.Report{Item: kept}))

	r := NewRegistry()
	err := store.Transact(ctx, func(tx domain.Store) error {
		return r.DestroyAll(ctx, tx, target)
	})
	require.NoError(t, err)

	left, err := store.Reports().FetchByItem(ctx, target)
	require.NoError(t, err)
	assert.Empty(t, left)
	left, err = store.Reports().FetchByItem(ctx, kept)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestRegistry_UnknownType(t *testing.T) {
	r := NewRegistry()
	err := r.DestroyAll(context.Background(), memory.NewStore(), domain.ReportItem{Type: "Script", ID: 1})
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")

	var got int64
	r.Register("Script", func(_ context.Context, _ domain.Store, itemID int64) error {
		got = itemID
		return boom
	})

	err := r.DestroyAll(context.Background(), memory.NewStore(), domain.ReportItem{Type: "Script", ID: 3})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 3, got)
}
