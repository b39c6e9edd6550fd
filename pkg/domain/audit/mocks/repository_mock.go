package mocks

import (
	"context"

	"github.com/modshield/modgate/pkg/domain/audit"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, log *audit.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *Repository) List(ctx context.Context, filter audit.Filter) ([]audit.Log, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	logs, _ := args.Get(0).([]audit.Log) //nolint:errcheck
	return logs, args.Error(1)
}
