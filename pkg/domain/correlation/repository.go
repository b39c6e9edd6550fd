package correlation

import "context"

// SeriesRepository stores the rolling per-surface risk series that correlation
// analysis reads. Writes come from a single recorder goroutine.
type SeriesRepository interface {
	AppendScore(ctx context.Context, surfaceID string, score float64) error
	GetSeries(ctx context.Context, surfaceID string, limit int) ([]float64, error)
	ListSurfaces(ctx context.Context) ([]string, error)
}
