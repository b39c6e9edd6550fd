package mocks

import (
	"context"

	"github.com/modshield/modgate/pkg/domain/task"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Enqueue(ctx context.Context, t *task.AnalysisTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *Repository) DequeueBatch(ctx context.Context, max int) ([]task.AnalysisTask, error) {
	args := m.Called(ctx, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	tasks, _ := args.Get(0).([]task.AnalysisTask) //nolint:errcheck
	return tasks, args.Error(1)
}

func (m *Repository) Depth(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	depths, _ := args.Get(0).(map[string]int64) //nolint:errcheck
	return depths, args.Error(1)
}
