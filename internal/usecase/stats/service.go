package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type Service struct {
	store  domain.Store
	locker domain.DiscussionLocker
	group  singleflight.Group
}

var _ domain.StatsEngine = (*Service)(nil)

// NewService will create a new stats engine
func NewService(store domain.Store, locker domain.DiscussionLocker) *Service {
	return &Service{
		store:  store,
		locker: locker,
	}
}

// RecomputeTimeout bounds one shared recompute run, lock wait included.
var RecomputeTimeout = 30 * time.Second

// Recompute is a cache refresh. Concurrent calls for the same discussion
// share one run; failures are returned, never retried here. The shared run
// does not inherit any caller's cancellation, so a caller that gives up
// only stops waiting for itself.
func (s *Service) Recompute(ctx context.Context, discussionID int64) error {
	ch := s.group.DoChan(strconv.FormatInt(discussionID, 10), func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RecomputeTimeout)
		defer cancel()

		unlock, err := s.locker.Lock(runCtx, discussionID)
		if err != nil {
			return nil, err
		}
		defer unlock()

		return nil, s.store.Transact(runCtx, func(tx domain.Store) error {
			return s.RecomputeTx(runCtx, tx, discussionID)
		})
	})

	var err error
	select {
	case res := <-ch:
		err = res.Err
	case <-ctx.Done():
		err = fmt.Errorf("%w: %w", domain.ErrLockTimeout, ctx.Err())
	}
	if err != nil {
		logrus.Errorf("failed to recompute stats of discussion %d: %v", discussionID, err)
	}
	return err
}

func (s *Service) RecomputeTx(ctx context.Context, tx domain.Store, discussionID int64) error {
	d, err := tx.Discussions().GetByID(ctx, discussionID)
	if errors.Is(err, domain.ErrNotFound) {
		// destroyed together with its comments, nothing left to derive
		return nil
	}
	if err != nil {
		return domain.NewStorageError("recompute", err)
	}

	comments, err := tx.Comments().FetchByDiscussion(ctx, discussionID, true)
	if err != nil {
		return domain.NewStorageError("recompute", err)
	}

	first, hasFirst := domain.FirstLiveComment(comments)
	var becameFirst, lostFirst []int64
	for _, c := range comments {
		want := hasFirst && c.ID == first.ID
		if c.FirstComment == want {
			continue
		}
		if want {
			becameFirst = append(becameFirst, c.ID)
		} else {
			lostFirst = append(lostFirst, c.ID)
		}
	}
	if len(lostFirst) > 0 {
		if err := tx.Comments().SetFirstComment(ctx, lostFirst, false); err != nil {
			return domain.NewStorageError("recompute", err)
		}
	}
	if len(becameFirst) > 0 {
		if err := tx.Comments().SetFirstComment(ctx, becameFirst, true); err != nil {
			return domain.NewStorageError("recompute", err)
		}
	}

	if d.SoftDeleted {
		return nil
	}
	stats := calculateStats(comments)
	if sameStats(d.DiscussionStats, stats) {
		return nil
	}
	if err := tx.Discussions().UpdateStats(ctx, discussionID, stats); err != nil {
		return domain.NewStorageError("recompute", err)
	}
	return nil
}

func calculateStats(comments []domain.Comment) domain.DiscussionStats {
	var stats domain.DiscussionStats
	for i := range comments {
		c := comments[i]
		if c.SoftDeleted {
			continue
		}
		stats.CommentCount++
		createdAt := c.CreatedAt
		stats.LastCommentAt = &createdAt
		stats.LastCommentPosterID = c.PosterID
	}
	return stats
}

func sameStats(a, b domain.DiscussionStats) bool {
	if a.CommentCount != b.CommentCount {
		return false
	}
	if (a.LastCommentAt == nil) != (b.LastCommentAt == nil) {
		return false
	}
	if a.LastCommentAt != nil && !a.LastCommentAt.Equal(*b.LastCommentAt) {
		return false
	}
	if (a.LastCommentPosterID == nil) != (b.LastCommentPosterID == nil) {
		return false
	}
	return a.LastCommentPosterID == nil || *a.LastCommentPosterID == *b.LastCommentPosterID
}
