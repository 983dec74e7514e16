package workers

import (
	"context"
	"errors"
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueSize     = 1024
	DefaultBatchSize     = 100
	DefaultFlushInterval = time.Second
)

var ErrQueueFull = errors.New("notification queue is full")

type notificationWorker struct {
	repo      domain.NotificationRepository
	ch        chan domain.Notification
	batchSize int
	interval  time.Duration
	done      chan struct{}
	now       func() time.Time
}

var _ domain.NotificationWorker = (*notificationWorker)(nil)

func NewNotificationWorker(repo domain.NotificationRepository, queueSize, batchSize int, interval time.Duration) *notificationWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &notificationWorker{
		repo:      repo,
		ch:        make(chan domain.Notification, queueSize),
		batchSize: batchSize,
		interval:  interval,
		done:      make(chan struct{}),
		now:       time.Now,
	}
}

// Enqueue never blocks. When the buffer is full the notification is dropped
// and ErrQueueFull returned.
func (w *notificationWorker) Enqueue(_ context.Context, kind domain.NotificationKind, recipientID, commentID int64) error {
	n := domain.Notification{
		Kind:        kind,
		RecipientID: recipientID,
		CommentID:   commentID,
		CreatedAt:   w.now(),
	}
	select {
	case w.ch <- n:
		return nil
	default:
		logrus.Warnf("notification queue is full, %s notification of comment %d to user %d dropped", kind, commentID, recipientID)
		return ErrQueueFull
	}
}

// Start consumes the queue until ctx is done, then flushes what is left.
func (w *notificationWorker) Start(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	batch := make([]domain.Notification, 0, w.batchSize)
	for {
		select {
		case n := <-w.ch:
			batch = append(batch, n)
			if len(batch) == w.batchSize {
				w.flush(ctx, batch)
				batch = make([]domain.Notification, 0, w.batchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = make([]domain.Notification, 0, w.batchSize)
			}
		case <-ctx.Done():
			logrus.Info("shutting down NotificationWorker, flushing remaining notifications...")
		drain:
			for {
				select {
				case n := <-w.ch:
					batch = append(batch, n)
				default:
					break drain
				}
			}
			w.flush(context.WithoutCancel(ctx), batch)
			return
		}
	}
}

// Done is closed once Start has returned.
func (w *notificationWorker) Done() <-chan struct{} {
	return w.done
}

type notificationKey struct {
	recipientID, commentID int64
}

func (w *notificationWorker) flush(ctx context.Context, batch []domain.Notification) {
	if len(batch) == 0 {
		return
	}
	seen := make(map[notificationKey]struct{}, len(batch))
	unique := make([]domain.Notification, 0, len(batch))
	for _, n := range batch {
		key := notificationKey{recipientID: n.RecipientID, commentID: n.CommentID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, n)
	}
	if err := w.repo.StoreBatch(ctx, unique); err != nil {
		logrus.Errorf("failed to store %d notifications: %v", len(unique), err)
	}
}
