package comment

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type service struct {
	store    domain.Store
	locker   domain.DiscussionLocker
	stats    domain.StatsEngine
	reports  domain.ReportDestroyer
	notifier domain.NotificationUsecase
	validate *validator.Validate

	// in-flight notification dispatches
	dispatches sync.WaitGroup
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(
	store domain.Store,
	locker domain.DiscussionLocker,
	stats domain.StatsEngine,
	reports domain.ReportDestroyer,
	notifier domain.NotificationUsecase,
) *service {
	return &service{
		store:    store,
		locker:   locker,
		stats:    stats,
		reports:  reports,
		notifier: notifier,
		validate: validator.New(),
	}
}

func (s *service) Get(ctx context.Context, id int64) (domain.Comment, error) {
	return s.store.Comments().GetByID(ctx, id)
}

// Create persists the comment and refreshes the discussion's derived state
// in one transaction, then fans notifications out in the background.
func (s *service) Create(ctx context.Context, in domain.CreateCommentInput) (domain.Comment, error) {
	in.Text = strings.TrimSpace(in.Text)
	if err := s.validateInput(in); err != nil {
		return domain.Comment{}, err
	}

	var created domain.Comment
	err := s.withDiscussionLock(ctx, in.DiscussionID, func() error {
		return s.store.Transact(ctx, func(tx domain.Store) error {
			d, err := tx.Discussions().LockByID(ctx, in.DiscussionID)
			if err != nil {
				return err
			}
			if d.SoftDeleted {
				return domain.ErrNotFound
			}

			c := domain.Comment{
				DiscussionID: in.DiscussionID,
				PosterID:     in.PosterID,
				Text:         in.Text,
				TextMarkup:   in.TextMarkup,
			}
			if err := tx.Comments().Store(ctx, &c); err != nil {
				return err
			}
			if err := s.stats.RecomputeTx(ctx, tx, in.DiscussionID); err != nil {
				return err
			}
			created, err = tx.Comments().GetByID(ctx, c.ID)
			return err
		})
	})
	if err != nil {
		if !errors.Is(err, domain.ErrLockTimeout) {
			err = domain.NewStorageError("create comment", err)
		}
		return domain.Comment{}, err
	}

	s.dispatchAsync(ctx, created)
	return created, nil
}

// SoftDelete flags the comment. Soft-deleting the first comment also
// soft-deletes its discussion unless that already happened.
func (s *service) SoftDelete(ctx context.Context, id int64) error {
	c, err := s.store.Comments().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.withDiscussionLock(ctx, c.DiscussionID, func() error {
		return s.store.Transact(ctx, func(tx domain.Store) error {
			d, err := tx.Discussions().LockByID(ctx, c.DiscussionID)
			if err != nil {
				return err
			}
			c, err := tx.Comments().GetByID(ctx, id)
			if err != nil {
				return err
			}
			if c.SoftDeleted {
				return nil
			}

			first, err := s.isFirstComment(ctx, tx, c)
			if err != nil {
				return err
			}
			if err := tx.Comments().SetSoftDeleted(ctx, c.ID); err != nil {
				return err
			}
			if first && !d.SoftDeleted {
				if err := tx.Discussions().SetSoftDeleted(ctx, d.ID); err != nil {
					return err
				}
				logrus.Infof("discussion %d soft-deleted with its first comment %d", d.ID, c.ID)
			}
			return s.stats.RecomputeTx(ctx, tx, c.DiscussionID)
		})
	})
	return cascadeError("soft delete", id, err)
}

// HardDelete erases the comment and its reports. Erasing the first comment
// erases the whole discussion, innermost data first.
func (s *service) HardDelete(ctx context.Context, id int64) error {
	c, err := s.store.Comments().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.withDiscussionLock(ctx, c.DiscussionID, func() error {
		return s.store.Transact(ctx, func(tx domain.Store) error {
			if _, err := tx.Discussions().LockByID(ctx, c.DiscussionID); err != nil {
				return err
			}
			c, err := tx.Comments().GetByID(ctx, id)
			if err != nil {
				return err
			}
			first, err := s.isFirstComment(ctx, tx, c)
			if err != nil {
				return err
			}

			if err := s.destroyComment(ctx, tx, c.ID); err != nil {
				return err
			}
			if first {
				return s.destroyDiscussion(ctx, tx, c.DiscussionID)
			}
			return s.stats.RecomputeTx(ctx, tx, c.DiscussionID)
		})
	})
	return cascadeError("hard delete", id, err)
}

// Wait blocks until every background notification dispatch has finished.
func (s *service) Wait() {
	s.dispatches.Wait()
}

func (s *service) destroyComment(ctx context.Context, tx domain.Store, id int64) error {
	item := domain.ReportItem{Type: domain.ReportItemComment, ID: id}
	if err := s.reports.DestroyAll(ctx, tx, item); err != nil {
		return err
	}
	return tx.Comments().Delete(ctx, id)
}

func (s *service) destroyDiscussion(ctx context.Context, tx domain.Store, discussionID int64) error {
	remaining, err := tx.Comments().FetchByDiscussion(ctx, discussionID, true)
	if err != nil {
		return err
	}
	for _, c := range remaining {
		if err := s.destroyComment(ctx, tx, c.ID); err != nil {
			return err
		}
	}

	item := domain.ReportItem{Type: domain.ReportItemDiscussion, ID: discussionID}
	if err := s.reports.DestroyAll(ctx, tx, item); err != nil {
		return err
	}
	if err := tx.Subscriptions().DeleteByDiscussion(ctx, discussionID); err != nil {
		return err
	}
	if err := tx.Discussions().Delete(ctx, discussionID); err != nil {
		return err
	}
	logrus.Infof("discussion %d destroyed with %d remaining comments", discussionID, len(remaining))
	return nil
}

// isFirstComment compares against the live comments as they are before c changes.
func (s *service) isFirstComment(ctx context.Context, tx domain.Store, c domain.Comment) (bool, error) {
	if c.SoftDeleted {
		return false, nil
	}
	live, err := tx.Comments().FetchByDiscussion(ctx, c.DiscussionID, false)
	if err != nil {
		return false, err
	}
	first, ok := domain.FirstLiveComment(live)
	return ok && first.ID == c.ID, nil
}

func (s *service) withDiscussionLock(ctx context.Context, discussionID int64, fn func() error) error {
	unlock, err := s.locker.Lock(ctx, discussionID)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

func (s *service) dispatchAsync(ctx context.Context, c domain.Comment) {
	if s.notifier == nil {
		return
	}
	// the request may finish long before the fan-out does
	ctx = context.WithoutCancel(ctx)

	s.dispatches.Add(1)
	go func() {
		defer s.dispatches.Done()
		if _, err := s.notifier.Dispatch(ctx, c); err != nil {
			logrus.Errorf("failed to dispatch notifications for comment %d: %v", c.ID, err)
		}
	}()
}

func (s *service) validateInput(in domain.CreateCommentInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.ValidationError{Field: fe.Field(), Reason: fe.Tag()}
	}
	return &domain.ValidationError{Field: "comment", Reason: err.Error()}
}

// cascadeError marks a failed delete as not applied. Lookup misses and lock
// timeouts pass through unchanged.
func cascadeError(op string, id int64, err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrLockTimeout) {
		return err
	}
	logrus.Errorf("%s of comment %d rolled back: %v", op, id, err)
	return &domain.CascadeError{Op: op, CommentID: id, Err: err}
}
