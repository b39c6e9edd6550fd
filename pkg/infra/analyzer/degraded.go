package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/modshield/modgate/pkg/infra/prometheus"
	"github.com/modshield/modgate/pkg/infra/providers"
)

const (
	FailureTimeout     = "timeout"
	FailureUnavailable = "provider_unavailable"
	FailureMalformed   = "malformed_response"
)

const (
	degradedRiskScore     = 0.5
	degradedConfidenceCap = 0.2
)

func classifyFailure(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, providers.ErrMalformedResponse):
		return FailureMalformed
	default:
		return FailureUnavailable
	}
}

// degradedSignal is the fallback emitted when a provider fails: neutral risk
// so fusion routes the item to review, confidence low enough that automation
// never acts on it alone.
func degradedSignal(analyzerName string, item *content.Item, failureClass string, elapsed time.Duration) *signal.RiskSignal {
	prometheus.DegradedSignalsTotal.WithLabelValues(analyzerName, failureClass).Inc()
	return &signal.RiskSignal{
		ID:             uuid.New(),
		ContentID:      item.ID,
		Analyzer:       analyzerName,
		CategoryScores: map[string]float64{},
		RiskScore:      degradedRiskScore,
		Confidence:     degradedConfidenceCap,
		Reasoning:      fmt.Sprintf("manual review required — analysis degraded (%s)", failureClass),
		Degraded:       true,
		ProcessingTime: elapsed,
		CreatedAt:      time.Now(),
	}
}
