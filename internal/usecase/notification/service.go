package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

const DefaultConcurrency = 8

type service struct {
	store       domain.Store
	notifier    domain.Notifier
	concurrency int
}

var _ domain.NotificationUsecase = (*service)(nil)

// NewService will create a new notification fan-out. concurrency bounds the
// number of enqueues in flight for one comment.
func NewService(store domain.Store, notifier domain.Notifier, concurrency int) *service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &service{
		store:       store,
		notifier:    notifier,
		concurrency: concurrency,
	}
}

// Recipients selects the script authors who asked for this comment first,
// then the subscribers. Nobody is picked twice and the poster is never picked.
func (s *service) Recipients(ctx context.Context, c domain.Comment) ([]domain.Notification, error) {
	d, err := s.store.Discussions().GetByID(ctx, c.DiscussionID)
	if err != nil {
		return nil, err
	}

	var res []domain.Notification
	picked := make(map[int64]struct{})
	pick := func(kind domain.NotificationKind, userID int64) {
		if c.PostedBy(userID) {
			return
		}
		if _, ok := picked[userID]; ok {
			return
		}
		picked[userID] = struct{}{}
		res = append(res, domain.Notification{
			Kind:        kind,
			RecipientID: userID,
			CommentID:   c.ID,
		})
	}

	if d.ScriptID != nil {
		authors, err := s.store.Users().FetchScriptAuthors(ctx, *d.ScriptID)
		if err != nil {
			return nil, err
		}
		for _, u := range authors {
			if wantsAuthorNotification(u, c) {
				pick(domain.NotificationAuthor, u.ID)
			}
		}
	}

	subs, err := s.store.Subscriptions().FetchByDiscussion(ctx, c.DiscussionID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		pick(domain.NotificationSubscriber, sub.UserID)
	}

	return res, nil
}

// Dispatch enqueues one notification per recipient. A failed enqueue is
// logged and reported in its result; it never stops the others.
func (s *service) Dispatch(ctx context.Context, c domain.Comment) ([]domain.DispatchedNotification, error) {
	recipients, err := s.Recipients(ctx, c)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := make([]domain.DispatchedNotification, len(recipients))
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i := range recipients {
		recipients[i].CreatedAt = now
		res[i].Notification = recipients[i]
		g.Go(func() error {
			n := recipients[i]
			if err := s.notifier.Enqueue(ctx, n.Kind, n.RecipientID, n.CommentID); err != nil {
				logrus.WithFields(logrus.Fields{
					"comment_id":   n.CommentID,
					"recipient_id": n.RecipientID,
					"kind":         n.Kind,
				}).Warnf("failed to enqueue notification: %v", err)
				res[i].Err = err
			}
			return nil
		})
	}
	_ = g.Wait()

	return res, nil
}

func wantsAuthorNotification(u domain.User, c domain.Comment) bool {
	switch u.AuthorNotification {
	case domain.AuthorNotificationComment:
		return true
	case domain.AuthorNotificationDiscussion:
		return c.FirstComment
	default:
		return false
	}
}
