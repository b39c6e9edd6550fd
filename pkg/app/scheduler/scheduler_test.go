package scheduler_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	moderationMocks "github.com/modshield/modgate/pkg/app/moderation/mocks"
	appscheduler "github.com/modshield/modgate/pkg/app/scheduler"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/domain/prediction"
	"github.com/modshield/modgate/pkg/domain/task"
	taskMocks "github.com/modshield/modgate/pkg/domain/task/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

func schedulerConfig(width int) config.SchedulerConfig {
	return config.SchedulerConfig{
		Width:          width,
		BatchSize:      20,
		PollIntervalMs: 10,
	}
}

func analysisTask(priority prediction.Priority) task.AnalysisTask {
	return task.AnalysisTask{
		Item: content.Item{
			ID:         uuid.New(),
			Type:       content.TypeText,
			PayloadRef: "payload",
		},
		Priority:   priority,
		EnqueuedAt: time.Now(),
	}
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestScheduler_Dispatch(t *testing.T) {
	t.Run("should dispatch higher priorities first", func(t *testing.T) {
		tasks := new(taskMocks.Repository)
		orchestrator := new(moderationMocks.Orchestrator)
		s := appscheduler.NewScheduler(tasks, orchestrator, discardLogger(), schedulerConfig(1))

		var mu sync.Mutex
		var order []prediction.Priority
		batch := []task.AnalysisTask{
			analysisTask(prediction.PriorityLow),
			analysisTask(prediction.PriorityUrgent),
			analysisTask(prediction.PriorityMedium),
		}
		for i := range batch {
			tt := batch[i]
			orchestrator.On("SubmitForAnalysis", mock.Anything, &tt.Item, mock.Anything, "").
				Run(func(args mock.Arguments) {
					mu.Lock()
					order = append(order, tt.Priority)
					mu.Unlock()
				}).
				Return(&decision.Decision{}, nil)
		}

		// Width 1 serializes execution, so completion order equals dispatch
		// order.
		s.Dispatch(context.Background(), semaphore.NewWeighted(1), batch)
		s.Wait()

		require.Len(t, order, 3)
		assert.Equal(t, []prediction.Priority{
			prediction.PriorityUrgent,
			prediction.PriorityMedium,
			prediction.PriorityLow,
		}, order)
	})

	t.Run("should not let one slow analysis block the rest of the batch", func(t *testing.T) {
		tasks := new(taskMocks.Repository)
		orchestrator := new(moderationMocks.Orchestrator)
		s := appscheduler.NewScheduler(tasks, orchestrator, discardLogger(), schedulerConfig(5))

		slow := analysisTask(prediction.PriorityUrgent)
		fast := []task.AnalysisTask{
			analysisTask(prediction.PriorityHigh),
			analysisTask(prediction.PriorityHigh),
			analysisTask(prediction.PriorityMedium),
			analysisTask(prediction.PriorityLow),
		}

		release := make(chan struct{})
		var mu sync.Mutex
		fastDone := 0

		orchestrator.On("SubmitForAnalysis", mock.Anything, &slow.Item, mock.Anything, "").
			Run(func(args mock.Arguments) { <-release }).
			Return(&decision.Decision{}, nil)
		for i := range fast {
			tt := fast[i]
			orchestrator.On("SubmitForAnalysis", mock.Anything, &tt.Item, mock.Anything, "").
				Run(func(args mock.Arguments) {
					mu.Lock()
					fastDone++
					mu.Unlock()
				}).
				Return(&decision.Decision{}, nil)
		}

		batch := append([]task.AnalysisTask{slow}, fast...)
		s.Dispatch(context.Background(), semaphore.NewWeighted(5), batch)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return fastDone == len(fast)
		}, time.Second, 5*time.Millisecond)

		close(release)
		s.Wait()
	})

	t.Run("should stop dispatching when the context is cancelled", func(t *testing.T) {
		tasks := new(taskMocks.Repository)
		orchestrator := new(moderationMocks.Orchestrator)
		s := appscheduler.NewScheduler(tasks, orchestrator, discardLogger(), schedulerConfig(1))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s.Dispatch(ctx, semaphore.NewWeighted(0), []task.AnalysisTask{analysisTask(prediction.PriorityLow)})
		s.Wait()

		orchestrator.AssertNotCalled(t, "SubmitForAnalysis")
	})
}
