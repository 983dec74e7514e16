// Package memory is an in-process domain.Store. Transactions run on a copy of
// the tables that replaces the live tables only when the callback succeeds.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type tables struct {
	lastID        map[string]int64
	comments      map[int64]domain.Comment
	discussions   map[int64]domain.Discussion
	subscriptions map[int64]map[int64]domain.Subscription
	users         map[int64]domain.User
	scriptAuthors map[int64]map[int64]struct{}
	reports       map[int64]domain.Report
}

func newTables() *tables {
	return &tables{
		lastID:        make(map[string]int64),
		comments:      make(map[int64]domain.Comment),
		discussions:   make(map[int64]domain.Discussion),
		subscriptions: make(map[int64]map[int64]domain.Subscription),
		users:         make(map[int64]domain.User),
		scriptAuthors: make(map[int64]map[int64]struct{}),
		reports:       make(map[int64]domain.Report),
	}
}

func (t *tables) clone() *tables {
	c := &tables{
		lastID:        maps.Clone(t.lastID),
		comments:      maps.Clone(t.comments),
		discussions:   maps.Clone(t.discussions),
		subscriptions: make(map[int64]map[int64]domain.Subscription, len(t.subscriptions)),
		users:         maps.Clone(t.users),
		scriptAuthors: make(map[int64]map[int64]struct{}, len(t.scriptAuthors)),
		reports:       maps.Clone(t.reports),
	}
	for k, v := range t.subscriptions {
		c.subscriptions[k] = maps.Clone(v)
	}
	for k, v := range t.scriptAuthors {
		c.scriptAuthors[k] = maps.Clone(v)
	}
	return c
}

func (t *tables) nextID(table string) int64 {
	t.lastID[table]++
	return t.lastID[table]
}

// Store keeps every table behind one RWMutex. Transact holds the write lock
// for the whole callback.
type Store struct {
	mu       sync.RWMutex
	data     *tables
	failures map[string]error
	now      func() time.Time
}

var _ domain.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		data:     newTables(),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// FailOn makes every later call of the named repository operation return
// err, e.g. FailOn("comments.delete", err). A nil err clears the failure.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
}

// AddScriptAuthor associates a user with a script.
func (s *Store) AddScriptAuthor(scriptID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.scriptAuthors[scriptID] == nil {
		s.data.scriptAuthors[scriptID] = make(map[int64]struct{})
	}
	s.data.scriptAuthors[scriptID][userID] = struct{}{}
}

func (s *Store) Comments() domain.CommentRepository {
	return &commentRepository{v: rootView{s}}
}

func (s *Store) Discussions() domain.DiscussionRepository {
	return &discussionRepository{v: rootView{s}}
}

func (s *Store) Subscriptions() domain.SubscriptionRepository {
	return &subscriptionRepository{v: rootView{s}}
}

func (s *Store) Users() domain.UserRepository {
	return &userRepository{v: rootView{s}}
}

func (s *Store) Reports() domain.ReportRepository {
	return &reportRepository{v: rootView{s}}
}

func (s *Store) Transact(ctx context.Context, fn func(tx domain.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	if err := fn(&txStore{v: txView{s: s, t: working}}); err != nil {
		return err
	}
	s.data = working
	return nil
}

// view abstracts over the live tables and a transaction's working copy.
type view interface {
	read(op string, fn func(t *tables) error) error
	write(op string, fn func(t *tables) error) error
	now() time.Time
}

type rootView struct{ s *Store }

func (v rootView) read(op string, fn func(t *tables) error) error {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if err := v.s.failures[op]; err != nil {
		return domain.NewStorageError(op, err)
	}
	return fn(v.s.data)
}

func (v rootView) write(op string, fn func(t *tables) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failures[op]; err != nil {
		return domain.NewStorageError(op, err)
	}
	// single-step writes still go through a copy so a failing fn leaves no trace
	working := v.s.data.clone()
	if err := fn(working); err != nil {
		return err
	}
	v.s.data = working
	return nil
}

func (v rootView) now() time.Time { return v.s.now() }

// txView runs while Transact holds the store's write lock.
type txView struct {
	s *Store
	t *tables
}

func (v txView) read(op string, fn func(t *tables) error) error {
	if err := v.s.failures[op]; err != nil {
		return domain.NewStorageError(op, err)
	}
	return fn(v.t)
}

func (v txView) write(op string, fn func(t *tables) error) error {
	return v.read(op, fn)
}

func (v txView) now() time.Time { return v.s.now() }

type txStore struct {
	v txView
}

func (s *txStore) Comments() domain.CommentRepository {
	return &commentRepository{v: s.v}
}

func (s *txStore) Discussions() domain.DiscussionRepository {
	return &discussionRepository{v: s.v}
}

func (s *txStore) Subscriptions() domain.SubscriptionRepository {
	return &subscriptionRepository{v: s.v}
}

func (s *txStore) Users() domain.UserRepository {
	return &userRepository{v: s.v}
}

func (s *txStore) Reports() domain.ReportRepository {
	return &reportRepository{v: s.v}
}

// Transact inside a transaction joins the outer one.
func (s *txStore) Transact(_ context.Context, fn func(tx domain.Store) error) error {
	return fn(s)
}
