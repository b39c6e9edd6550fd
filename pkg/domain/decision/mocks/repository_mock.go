package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, d *decision.Decision) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*decision.Decision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	d, _ := args.Get(0).(*decision.Decision) //nolint:errcheck
	return d, args.Error(1)
}

func (m *Repository) ListRecent(ctx context.Context, limit int) ([]decision.Decision, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	ds, _ := args.Get(0).([]decision.Decision) //nolint:errcheck
	return ds, args.Error(1)
}
