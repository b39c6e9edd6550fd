package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/appeal"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, a *appeal.Appeal) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *Repository) Update(ctx context.Context, a *appeal.Appeal) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*appeal.Appeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	a, _ := args.Get(0).(*appeal.Appeal) //nolint:errcheck
	return a, args.Error(1)
}

func (m *Repository) ListByStatus(ctx context.Context, status appeal.Status, limit int) ([]appeal.Appeal, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	as, _ := args.Get(0).([]appeal.Appeal) //nolint:errcheck
	return as, args.Error(1)
}
