package domain

import (
	"context"
	"time"
)

// NotificationKind selects the notification variant sent to a recipient.
type NotificationKind string

const (
	// NotificationAuthor goes to an author of the discussion's script.
	NotificationAuthor NotificationKind = "author"
	// NotificationSubscriber goes to a user subscribed to the discussion.
	NotificationSubscriber NotificationKind = "subscriber"
)

// Notification is one queued message for one recipient about one comment.
type Notification struct {
	ID          int64
	Kind        NotificationKind
	RecipientID int64
	CommentID   int64
	CreatedAt   time.Time
}

// DispatchedNotification is the outcome of enqueuing one notification.
// Err is set when the enqueue for that recipient failed.
type DispatchedNotification struct {
	Notification
	Err error
}

// Notifier is the mail/queue collaborator. Enqueue must not block on delivery.
type Notifier interface {
	Enqueue(ctx context.Context, kind NotificationKind, recipientID, commentID int64) error
}

// NotificationRepository persists queued notifications for the mailer to pick up.
type NotificationRepository interface {
	StoreBatch(ctx context.Context, ns []Notification) error
}

// NotificationUsecase fans a new comment out to its recipients.
type NotificationUsecase interface {
	// Recipients computes the deduplicated recipient set without enqueuing anything.
	Recipients(ctx context.Context, c Comment) ([]Notification, error)
	Dispatch(ctx context.Context, c Comment) ([]DispatchedNotification, error)
}
