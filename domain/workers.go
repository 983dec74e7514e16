package domain

import "context"

// NotificationWorker buffers notifications and flushes them to the outbox in batches.
type NotificationWorker interface {
	Notifier
	Start(ctx context.Context)
}
