package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modshield/modgate/pkg/cache"
	"github.com/modshield/modgate/pkg/common"
	"github.com/modshield/modgate/pkg/domain/correlation"
)

const (
	riskSeriesKeyPattern = "correlation:series:%s"
	riskSurfacesSetKey   = "correlation:surfaces"
)

// riskSeriesRepository keeps a capped per-surface list of recent risk scores
// in redis, newest first.
type riskSeriesRepository struct {
	cache     *cache.Cache
	maxLength int64
}

func NewRiskSeriesRepository(c *cache.Cache, maxLength int) correlation.SeriesRepository {
	if maxLength <= 0 {
		maxLength = common.DefaultDecisionWindow
	}
	return &riskSeriesRepository{
		cache:     c,
		maxLength: int64(maxLength),
	}
}

func (r *riskSeriesRepository) AppendScore(ctx context.Context, surfaceID string, score float64) error {
	key := fmt.Sprintf(riskSeriesKeyPattern, surfaceID)
	client := r.cache.Client()

	pipe := client.TxPipeline()
	pipe.LPush(ctx, key, strconv.FormatFloat(score, 'f', -1, 64))
	pipe.LTrim(ctx, key, 0, r.maxLength-1)
	pipe.Expire(ctx, key, common.BaselineTTL)
	pipe.SAdd(ctx, riskSurfacesSetKey, surfaceID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append risk score for surface %s: %w", surfaceID, err)
	}
	return nil
}

func (r *riskSeriesRepository) GetSeries(ctx context.Context, surfaceID string, limit int) ([]float64, error) {
	key := fmt.Sprintf(riskSeriesKeyPattern, surfaceID)
	if limit <= 0 || int64(limit) > r.maxLength {
		limit = int(r.maxLength)
	}

	raw, err := r.cache.Client().LRange(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read risk series for surface %s: %w", surfaceID, err)
	}

	series := make([]float64, 0, len(raw))
	for _, v := range raw {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		series = append(series, score)
	}
	return series, nil
}

func (r *riskSeriesRepository) ListSurfaces(ctx context.Context) ([]string, error) {
	surfaces, err := r.cache.Client().SMembers(ctx, riskSurfacesSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list surfaces: %w", err)
	}
	return surfaces, nil
}
