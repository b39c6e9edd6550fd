package correlation

import (
	"context"
	"fmt"
	"time"

	"github.com/modshield/modgate/pkg/domain/correlation"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Recorder --dir=. --output=./mocks --filename=recorder_mock.go --case=underscore --with-expecter
type Recorder interface {
	Record(ctx context.Context, contentType string, d *decision.Decision)
	Findings(ctx context.Context, window int) ([]correlation.Finding, error)
}

// recorder feeds decision risk scores into the per-surface series store and
// runs the correlation engine over all known surfaces on demand. A surface is
// a tenant and content type pair.
type recorder struct {
	series correlation.SeriesRepository
	engine Engine
	logger *logrus.Logger
}

func NewRecorder(series correlation.SeriesRepository, engine Engine, logger *logrus.Logger) Recorder {
	return &recorder{
		series: series,
		engine: engine,
		logger: logger,
	}
}

func (r *recorder) Record(ctx context.Context, contentType string, d *decision.Decision) {
	surfaceID := surfaceID(d.TenantID, contentType)
	if err := r.series.AppendScore(ctx, surfaceID, d.RiskScore); err != nil {
		r.logger.WithError(err).WithField("surface_id", surfaceID).
			Warn("failed to record risk score for correlation")
	}
}

func (r *recorder) Findings(ctx context.Context, window int) ([]correlation.Finding, error) {
	surfaces, err := r.series.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]correlation.SurfaceSnapshot, 0, len(surfaces))
	now := time.Now()
	for _, surfaceID := range surfaces {
		series, err := r.series.GetSeries(ctx, surfaceID, window)
		if err != nil {
			r.logger.WithError(err).WithField("surface_id", surfaceID).
				Warn("failed to load risk series")
			continue
		}
		snapshots = append(snapshots, correlation.SurfaceSnapshot{
			SurfaceID:  surfaceID,
			RiskSeries: series,
			CapturedAt: now,
		})
	}

	return r.engine.Correlate(snapshots), nil
}

func surfaceID(tenantID, contentType string) string {
	return fmt.Sprintf("%s:%s", tenantID, contentType)
}
