package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type commentRepository struct{ v view }

var _ domain.CommentRepository = (*commentRepository)(nil)

func (r *commentRepository) GetByID(_ context.Context, id int64) (res domain.Comment, err error) {
	err = r.v.read("comments.get", func(t *tables) error {
		c, ok := t.comments[id]
		if !ok {
			return domain.ErrNotFound
		}
		res = c
		return nil
	})
	return
}

func (r *commentRepository) Store(_ context.Context, c *domain.Comment) error {
	return r.v.write("comments.store", func(t *tables) error {
		now := r.v.now()
		c.ID = t.nextID("comments")
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		t.comments[c.ID] = *c
		return nil
	})
}

func (r *commentRepository) SetSoftDeleted(_ context.Context, id int64) error {
	return r.v.write("comments.soft_delete", func(t *tables) error {
		c, ok := t.comments[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.SoftDeleted = true
		c.FirstComment = false
		c.UpdatedAt = r.v.now()
		t.comments[id] = c
		return nil
	})
}

func (r *commentRepository) SetFirstComment(_ context.Context, ids []int64, first bool) error {
	return r.v.write("comments.set_first", func(t *tables) error {
		for _, id := range ids {
			c, ok := t.comments[id]
			if !ok {
				continue
			}
			c.FirstComment = first
			t.comments[id] = c
		}
		return nil
	})
}

func (r *commentRepository) Delete(_ context.Context, id int64) error {
	return r.v.write("comments.delete", func(t *tables) error {
		if _, ok := t.comments[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.comments, id)
		return nil
	})
}

func (r *commentRepository) FetchByDiscussion(_ context.Context, discussionID int64, includeDeleted bool) (res []domain.Comment, err error) {
	err = r.v.read("comments.fetch", func(t *tables) error {
		res = make([]domain.Comment, 0)
		for _, c := range t.comments {
			if c.DiscussionID != discussionID || (c.SoftDeleted && !includeDeleted) {
				continue
			}
			res = append(res, c)
		}
		sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
		return nil
	})
	return
}

type discussionRepository struct{ v view }

var _ domain.DiscussionRepository = (*discussionRepository)(nil)

func (r *discussionRepository) GetByID(_ context.Context, id int64) (res domain.Discussion, err error) {
	err = r.v.read("discussions.get", func(t *tables) error {
		d, ok := t.discussions[id]
		if !ok {
			return domain.ErrNotFound
		}
		res = d
		return nil
	})
	return
}

// LockByID only reads: a transaction already owns the whole store.
func (r *discussionRepository) LockByID(_ context.Context, id int64) (res domain.Discussion, err error) {
	err = r.v.read("discussions.lock", func(t *tables) error {
		d, ok := t.discussions[id]
		if !ok {
			return domain.ErrNotFound
		}
		res = d
		return nil
	})
	return
}

func (r *discussionRepository) Store(_ context.Context, d *domain.Discussion) error {
	return r.v.write("discussions.store", func(t *tables) error {
		now := r.v.now()
		d.ID = t.nextID("discussions")
		d.CreatedAt = now
		d.UpdatedAt = now
		t.discussions[d.ID] = *d
		return nil
	})
}

func (r *discussionRepository) SetSoftDeleted(_ context.Context, id int64) error {
	return r.v.write("discussions.soft_delete", func(t *tables) error {
		d, ok := t.discussions[id]
		if !ok {
			return domain.ErrNotFound
		}
		d.SoftDeleted = true
		d.UpdatedAt = r.v.now()
		t.discussions[id] = d
		return nil
	})
}

func (r *discussionRepository) UpdateStats(_ context.Context, id int64, stats domain.DiscussionStats) error {
	return r.v.write("discussions.update_stats", func(t *tables) error {
		d, ok := t.discussions[id]
		if !ok {
			return domain.ErrNotFound
		}
		d.DiscussionStats = stats
		t.discussions[id] = d
		return nil
	})
}

func (r *discussionRepository) Delete(_ context.Context, id int64) error {
	return r.v.write("discussions.delete", func(t *tables) error {
		if _, ok := t.discussions[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.discussions, id)
		return nil
	})
}

type subscriptionRepository struct{ v view }

var _ domain.SubscriptionRepository = (*subscriptionRepository)(nil)

func (r *subscriptionRepository) FetchByDiscussion(_ context.Context, discussionID int64) (res []domain.Subscription, err error) {
	err = r.v.read("subscriptions.fetch", func(t *tables) error {
		res = make([]domain.Subscription, 0, len(t.subscriptions[discussionID]))
		for _, s := range t.subscriptions[discussionID] {
			res = append(res, s)
		}
		sort.Slice(res, func(i, j int) bool { return res[i].UserID < res[j].UserID })
		return nil
	})
	return
}

func (r *subscriptionRepository) Store(_ context.Context, s *domain.Subscription) error {
	return r.v.write("subscriptions.store", func(t *tables) error {
		subs := t.subscriptions[s.DiscussionID]
		if subs == nil {
			subs = make(map[int64]domain.Subscription)
			t.subscriptions[s.DiscussionID] = subs
		}
		if _, ok := subs[s.UserID]; ok {
			return nil
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = r.v.now()
		}
		subs[s.UserID] = *s
		return nil
	})
}

func (r *subscriptionRepository) DeleteByDiscussion(_ context.Context, discussionID int64) error {
	return r.v.write("subscriptions.delete", func(t *tables) error {
		delete(t.subscriptions, discussionID)
		return nil
	})
}

type userRepository struct{ v view }

var _ domain.UserRepository = (*userRepository)(nil)

func (r *userRepository) GetByID(_ context.Context, id int64) (res domain.User, err error) {
	err = r.v.read("users.get", func(t *tables) error {
		u, ok := t.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		res = u
		return nil
	})
	return
}

func (r *userRepository) FetchScriptAuthors(_ context.Context, scriptID int64) (res []domain.User, err error) {
	err = r.v.read("users.fetch_script_authors", func(t *tables) error {
		ids := make([]int64, 0, len(t.scriptAuthors[scriptID]))
		for id := range t.scriptAuthors[scriptID] {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		res = make([]domain.User, 0, len(ids))
		for _, id := range ids {
			if u, ok := t.users[id]; ok {
				res = append(res, u)
			}
		}
		return nil
	})
	return
}

type reportRepository struct{ v view }

var _ domain.ReportRepository = (*reportRepository)(nil)

func (r *reportRepository) Store(_ context.Context, rep *domain.Report) error {
	return r.v.write("reports.store", func(t *tables) error {
		rep.ID = t.nextID("reports")
		if rep.CreatedAt.IsZero() {
			rep.CreatedAt = r.v.now()
		}
		t.reports[rep.ID] = *rep
		return nil
	})
}

func (r *reportRepository) FetchByItem(_ context.Context, item domain.ReportItem) (res []domain.Report, err error) {
	err = r.v.read("reports.fetch", func(t *tables) error {
		res = make([]domain.Report, 0)
		for _, rep := range t.reports {
			if rep.Item == item {
				res = append(res, rep)
			}
		}
		sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
		return nil
	})
	return
}

func (r *reportRepository) DeleteByItem(_ context.Context, item domain.ReportItem) (n int64, err error) {
	err = r.v.write("reports.delete", func(t *tables) error {
		for id, rep := range t.reports {
			if rep.Item == item {
				delete(t.reports, id)
				n++
			}
		}
		return nil
	})
	return
}
