package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/modshield/modgate/pkg/cache"
	"github.com/modshield/modgate/pkg/domain/prediction"
	"github.com/modshield/modgate/pkg/domain/task"
)

const taskQueueKeyPattern = "analysis:queue:%s"

// queuePriorities in strict drain order.
var queuePriorities = []prediction.Priority{
	prediction.PriorityUrgent,
	prediction.PriorityHigh,
	prediction.PriorityMedium,
	prediction.PriorityLow,
}

// taskRepository backs the analysis scheduler with one redis list per
// priority tier.
type taskRepository struct {
	cache *cache.Cache
}

func NewTaskRepository(c *cache.Cache) task.Repository {
	return &taskRepository{
		cache: c,
	}
}

func (r *taskRepository) Enqueue(ctx context.Context, t *task.AnalysisTask) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal analysis task: %w", err)
	}
	key := fmt.Sprintf(taskQueueKeyPattern, t.Priority)
	if err := r.cache.Client().RPush(ctx, key, string(payload)).Err(); err != nil {
		return fmt.Errorf("enqueue analysis task: %w", err)
	}
	return nil
}

func (r *taskRepository) DequeueBatch(ctx context.Context, max int) ([]task.AnalysisTask, error) {
	var batch []task.AnalysisTask
	for _, priority := range queuePriorities {
		if len(batch) >= max {
			break
		}
		key := fmt.Sprintf(taskQueueKeyPattern, priority)
		for len(batch) < max {
			raw, err := r.cache.Client().LPop(ctx, key).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					break
				}
				return batch, fmt.Errorf("dequeue analysis task: %w", err)
			}
			var t task.AnalysisTask
			if err := json.Unmarshal([]byte(raw), &t); err != nil {
				continue
			}
			batch = append(batch, t)
		}
	}
	return batch, nil
}

func (r *taskRepository) Depth(ctx context.Context) (map[string]int64, error) {
	depths := make(map[string]int64, len(queuePriorities))
	for _, priority := range queuePriorities {
		key := fmt.Sprintf(taskQueueKeyPattern, priority)
		n, err := r.cache.Client().LLen(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("queue depth for %s: %w", priority, err)
		}
		depths[string(priority)] = n
	}
	return depths, nil
}
