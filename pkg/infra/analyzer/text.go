package analyzer

import (
	"context"
	"time"

	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/modshield/modgate/pkg/infra/httpx"
	"github.com/modshield/modgate/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const TextAnalyzerName = "text"

type TextAnalyzer struct {
	providerAnalyzer
}

func NewTextAnalyzer(
	logger *logrus.Logger,
	client providers.Client,
	breaker httpx.CircuitBreaker,
	timeout time.Duration,
) *TextAnalyzer {
	return &TextAnalyzer{
		providerAnalyzer: providerAnalyzer{
			name:    TextAnalyzerName,
			client:  client,
			breaker: breaker,
			logger:  logger,
			timeout: timeout,
		},
	}
}

func (a *TextAnalyzer) Analyze(ctx context.Context, req *Request) (*signal.RiskSignal, error) {
	if req.Item.PayloadRef == "" {
		return nil, domain.ErrMissingPayloadRef
	}
	return a.analyzePayload(ctx, req.Item, "text", req.Item.PayloadRef, req.Context), nil
}

// AnalyzeText runs the analyzer over an inline text body on behalf of another
// adapter (the audio pipeline hands transcripts in here).
func (a *TextAnalyzer) AnalyzeText(ctx context.Context, req *Request, text string) *signal.RiskSignal {
	return a.analyzePayload(ctx, req.Item, "text", text, req.Context)
}
