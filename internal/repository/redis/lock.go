package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

const (
	KeyDiscussionLock = "discussion:lock:%d"

	DefaultLockTTL   = 10 * time.Second
	DefaultLockRetry = 20 * time.Millisecond
)

// only the holder of the token may delete the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type discussionLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	token  func() string
}

var _ domain.DiscussionLocker = (*discussionLocker)(nil)

// NewDiscussionLocker returns a lock shared by every process talking to the
// same Redis. ttl bounds how long a crashed holder can block a discussion.
func NewDiscussionLocker(client *redis.Client, ttl, retry time.Duration) *discussionLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	if retry <= 0 {
		retry = DefaultLockRetry
	}
	return &discussionLocker{
		client: client,
		ttl:    ttl,
		retry:  retry,
		token:  randomToken,
	}
}

func (l *discussionLocker) Lock(ctx context.Context, discussionID int64) (func(), error) {
	key := fmt.Sprintf(KeyDiscussionLock, discussionID)
	token := l.token()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrLockTimeout, ctx.Err())
			}
			return nil, domain.NewStorageError("lock discussion", err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", domain.ErrLockTimeout, ctx.Err())
		case <-timer.C:
		}
	}

	return func() {
		// the caller's context may be done by now
		err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err()
		if err != nil {
			logrus.Warnf("failed to release lock of discussion %d: %v", discussionID, err)
		}
	}, nil
}

func randomToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
