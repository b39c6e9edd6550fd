package task

import (
	"time"

	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/prediction"
)

// AnalysisTask is one deferred moderation run waiting for scheduler capacity.
type AnalysisTask struct {
	Item       content.Item        `json:"item"`
	Hint       string              `json:"hint,omitempty"`
	Priority   prediction.Priority `json:"priority"`
	EnqueuedAt time.Time           `json:"enqueued_at"`
}
