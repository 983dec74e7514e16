package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

func TestStore_TransactCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var d domain.Discussion
	err := s.Transact(ctx, func(tx domain.Store) error {
		if err := tx.Discussions().Store(ctx, &d); err != nil {
			return err
		}
		c := domain.Comment{DiscussionID: d.ID, Text: "hi", TextMarkup: domain.MarkupHTML}
		return tx.Comments().Store(ctx, &c)
	})
	require.NoError(t, err)

	_, err = s.Discussions().GetByID(ctx, d.ID)
	assert.NoError(t, err)
	all, err := s.Comments().FetchByDiscussion(ctx, d.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_TransactRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := domain.Discussion{}
	require.NoError(t, s.Discussions().Store(ctx, &d))
	boom := errors.New("boom")

	err := s.Transact(ctx, func(tx domain.Store) error {
		c := domain.Comment{DiscussionID: d.ID, Text: "hi", TextMarkup: domain.MarkupHTML}
		if err := tx.Comments().Store(ctx, &c); err != nil {
			return err
		}
		if err := tx.Discussions().SetSoftDeleted(ctx, d.ID); err != nil {
			return err
		}
		// nested transactions join the outer one
		return tx.Transact(ctx, func(domain.Store) error { return boom })
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Discussions().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, got.SoftDeleted)
	all, err := s.Comments().FetchByDiscussion(ctx, d.ID, true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_TransactCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().Transact(ctx, func(domain.Store) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_FailOn(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	d := domain.Discussion{}
	require.NoError(t, s.Discussions().Store(ctx, &d))

	s.FailOn("discussions.get", errors.New("timeout"))
	_, err := s.Discussions().GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrStorage)

	s.FailOn("discussions.get", nil)
	_, err = s.Discussions().GetByID(ctx, d.ID)
	assert.NoError(t, err)
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Comments()

	c1 := domain.Comment{DiscussionID: 1, Text: "a", FirstComment: true}
	c2 := domain.Comment{DiscussionID: 1, Text: "b"}
	other := domain.Comment{DiscussionID: 2, Text: "c"}
	for _, c := range []*domain.Comment{&c1, &c2, &other} {
		require.NoError(t, repo.Store(ctx, c))
	}
	assert.Less(t, c1.ID, c2.ID)

	require.NoError(t, repo.SetSoftDeleted(ctx, c1.ID))
	got, err := repo.GetByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.True(t, got.SoftDeleted)
	assert.False(t, got.FirstComment)

	live, err := repo.FetchByDiscussion(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, c2.ID, live[0].ID)

	all, err := repo.FetchByDiscussion(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, c1.ID, all[0].ID)

	require.NoError(t, repo.SetFirstComment(ctx, []int64{c2.ID, 404}, true))
	got, err = repo.GetByID(ctx, c2.ID)
	require.NoError(t, err)
	assert.True(t, got.FirstComment)

	require.NoError(t, repo.Delete(ctx, c2.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c2.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.SetSoftDeleted(ctx, c2.ID), domain.ErrNotFound)
}

func TestSubscriptionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Subscriptions()

	for _, uid := range []int64{5, 3, 5} {
		require.NoError(t, repo.Store(ctx, &domain.Subscription{DiscussionID: 1, UserID: uid}))
	}
	subs, err := repo.FetchByDiscussion(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.EqualValues(t, 3, subs[0].UserID)
	assert.EqualValues(t, 5, subs[1].UserID)

	require.NoError(t, repo.DeleteByDiscussion(ctx, 1))
	subs, err = repo.FetchByDiscussion(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestUserRepository_FetchScriptAuthors(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.PutUser(domain.User{ID: 2, Name: "b"})
	s.PutUser(domain.User{ID: 1, Name: "a"})
	s.AddScriptAuthor(9, 2)
	s.AddScriptAuthor(9, 1)
	s.AddScriptAuthor(9, 404)

	users, err := s.Users().FetchScriptAuthors(ctx, 9)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.EqualValues(t, 1, users[0].ID)
	assert.EqualValues(t, 2, users[1].ID)

	_, err = s.Users().GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Reports()
	comment := domain.ReportItem{Type: domain.ReportItemComment, ID: 1}
	discussion := domain.ReportItem{Type: domain.ReportItemDiscussion, ID: 1}

	require.NoError(t, repo.Store(ctx, &domain.Report{Item: comment}))
	require.NoError(t, repo.Store(ctx, &domain.Report{Item: comment}))
	require.NoError(t, repo.Store(ctx, &domain.Report{Item: discussion}))

	n, err := repo.DeleteByItem(ctx, comment)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := repo.FetchByItem(ctx, discussion)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
