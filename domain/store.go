package domain

import "context"

// Store is the storage the comment core runs on. Every repository obtained
// from the Store passed into Transact's callback takes part in that
// transaction; an error returned by the callback rolls all of it back.
type Store interface {
	Comments() CommentRepository
	Discussions() DiscussionRepository
	Subscriptions() SubscriptionRepository
	Users() UserRepository
	Reports() ReportRepository

	Transact(ctx context.Context, fn func(tx Store) error) error
}
