package task

import "context"

type Repository interface {
	Enqueue(ctx context.Context, t *AnalysisTask) error
	// DequeueBatch pops up to max tasks, strictly highest priority first.
	DequeueBatch(ctx context.Context, max int) ([]AnalysisTask, error)
	Depth(ctx context.Context) (map[string]int64, error)
}
