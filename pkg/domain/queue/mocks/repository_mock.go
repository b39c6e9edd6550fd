package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/queue"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, item *queue.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *Repository) Update(ctx context.Context, item *queue.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*queue.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	item, _ := args.Get(0).(*queue.Item) //nolint:errcheck
	return item, args.Error(1)
}

func (m *Repository) ListByStatus(ctx context.Context, status queue.Status, limit int) ([]queue.Item, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	items, _ := args.Get(0).([]queue.Item) //nolint:errcheck
	return items, args.Error(1)
}
