package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type lockEntry struct {
	sem  chan struct{}
	refs int
}

// DiscussionLocker is an in-process per-discussion mutex. Entries are
// reference counted and dropped once nobody holds or waits for them.
type DiscussionLocker struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

var _ domain.DiscussionLocker = (*DiscussionLocker)(nil)

func NewDiscussionLocker() *DiscussionLocker {
	return &DiscussionLocker{locks: make(map[int64]*lockEntry)}
}

func (l *DiscussionLocker) Lock(ctx context.Context, discussionID int64) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[discussionID]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[discussionID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(discussionID, e)
		return nil, fmt.Errorf("%w: %w", domain.ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(discussionID, e)
		})
	}, nil
}

func (l *DiscussionLocker) release(discussionID int64, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, discussionID)
	}
}
