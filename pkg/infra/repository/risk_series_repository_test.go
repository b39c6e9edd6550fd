package repository_test

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/modshield/modgate/pkg/cache"
	"github.com/modshield/modgate/pkg/common"
	"github.com/modshield/modgate/pkg/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskSeriesRepository_AppendScore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRiskSeriesRepository(cache.NewCacheWithClient(client), 50)

	mock.ExpectTxPipeline()
	mock.ExpectLPush("correlation:series:tenant-1:comments", "0.42").SetVal(1)
	mock.ExpectLTrim("correlation:series:tenant-1:comments", 0, 49).SetVal("OK")
	mock.ExpectExpire("correlation:series:tenant-1:comments", common.BaselineTTL).SetVal(true)
	mock.ExpectSAdd("correlation:surfaces", "tenant-1:comments").SetVal(1)
	mock.ExpectTxPipelineExec()

	err := repo.AppendScore(context.Background(), "tenant-1:comments", 0.42)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRiskSeriesRepository_GetSeries(t *testing.T) {
	t.Run("should return parsed scores newest first", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRiskSeriesRepository(cache.NewCacheWithClient(client), 50)

		mock.ExpectLRange("correlation:series:tenant-1:comments", 0, 9).
			SetVal([]string{"0.9", "0.5", "0.1"})

		series, err := repo.GetSeries(context.Background(), "tenant-1:comments", 10)

		require.NoError(t, err)
		assert.Equal(t, []float64{0.9, 0.5, 0.1}, series)
	})

	t.Run("should skip unparseable entries", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRiskSeriesRepository(cache.NewCacheWithClient(client), 50)

		mock.ExpectLRange("correlation:series:tenant-1:comments", 0, 9).
			SetVal([]string{"0.9", "garbage", "0.1"})

		series, err := repo.GetSeries(context.Background(), "tenant-1:comments", 10)

		require.NoError(t, err)
		assert.Equal(t, []float64{0.9, 0.1}, series)
	})
}

func TestRiskSeriesRepository_ListSurfaces(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRiskSeriesRepository(cache.NewCacheWithClient(client), 50)

	mock.ExpectSMembers("correlation:surfaces").
		SetVal([]string{"tenant-1:comments", "tenant-1:uploads"})

	surfaces, err := repo.ListSurfaces(context.Background())

	require.NoError(t, err)
	assert.Len(t, surfaces, 2)
}
