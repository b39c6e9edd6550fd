package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/modshield/modgate/pkg/infra/httpx"
	"github.com/modshield/modgate/pkg/infra/prometheus"
	"github.com/modshield/modgate/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

// providerAnalyzer is the shared outbound half of every adapter: one provider
// call behind a per-call timeout and a circuit breaker, normalized into a
// RiskSignal or degraded on any failure.
type providerAnalyzer struct {
	name    string
	client  providers.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	timeout time.Duration
}

func (p *providerAnalyzer) Name() string {
	return p.name
}

func (p *providerAnalyzer) analyzePayload(ctx context.Context, item *content.Item, contentType, payloadRef string, analysisContext Context) *signal.RiskSignal {
	start := time.Now()

	req := &providers.AnalysisRequest{
		ContentType: contentType,
		PayloadRef:  payloadRef,
		Context:     analysisContext.String(),
	}

	var analysis *providers.RawAnalysis
	err := p.breaker.Execute(func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		var callErr error
		analysis, callErr = p.client.Analyze(callCtx, req)
		return callErr
	})

	elapsed := time.Since(start)
	if prometheus.Config.EnableLatency {
		prometheus.AnalyzerLatency.WithLabelValues(p.name).Observe(float64(elapsed.Milliseconds()))
	}

	if err != nil {
		failureClass := classifyFailure(err)
		p.logger.WithError(err).WithFields(logrus.Fields{
			"analyzer":      p.name,
			"content_id":    item.ID,
			"failure_class": failureClass,
		}).Warn("analyzer call degraded")
		return degradedSignal(p.name, item, failureClass, elapsed)
	}

	return p.normalize(item, analysis, elapsed)
}

func (p *providerAnalyzer) normalize(item *content.Item, analysis *providers.RawAnalysis, elapsed time.Duration) *signal.RiskSignal {
	risk := 0.0
	for _, score := range analysis.CategoryScores {
		if score > risk {
			risk = score
		}
	}

	confidence := analysis.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &signal.RiskSignal{
		ID:             uuid.New(),
		ContentID:      item.ID,
		Analyzer:       p.name,
		CategoryScores: analysis.CategoryScores,
		RiskScore:      risk,
		Confidence:     confidence,
		Reasoning:      analysis.Reasoning,
		ProcessingTime: elapsed,
		CreatedAt:      time.Now(),
	}
}
