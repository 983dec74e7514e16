package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

type NotificationUsecase struct {
	mock.Mock
}

var _ domain.NotificationUsecase = (*NotificationUsecase)(nil)

func (m *NotificationUsecase) Recipients(ctx context.Context, c domain.Comment) ([]domain.Notification, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationUsecase) Dispatch(ctx context.Context, c domain.Comment) ([]domain.DispatchedNotification, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DispatchedNotification), args.Error(1)
}

type Notifier struct {
	mock.Mock
}

var _ domain.Notifier = (*Notifier)(nil)

func (m *Notifier) Enqueue(ctx context.Context, kind domain.NotificationKind, recipientID, commentID int64) error {
	args := m.Called(ctx, kind, recipientID, commentID)
	return args.Error(0)
}

type NotificationRepository struct {
	mock.Mock
}

var _ domain.NotificationRepository = (*NotificationRepository)(nil)

func (m *NotificationRepository) StoreBatch(ctx context.Context, ns []domain.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}
