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

const ImageAnalyzerName = "image"

type ImageAnalyzer struct {
	providerAnalyzer
}

func NewImageAnalyzer(
	logger *logrus.Logger,
	client providers.Client,
	breaker httpx.CircuitBreaker,
	timeout time.Duration,
) *ImageAnalyzer {
	return &ImageAnalyzer{
		providerAnalyzer: providerAnalyzer{
			name:    ImageAnalyzerName,
			client:  client,
			breaker: breaker,
			logger:  logger,
			timeout: timeout,
		},
	}
}

func (a *ImageAnalyzer) Analyze(ctx context.Context, req *Request) (*signal.RiskSignal, error) {
	if req.Item.PayloadRef == "" {
		return nil, domain.ErrMissingPayloadRef
	}
	return a.analyzePayload(ctx, req.Item, "image", req.Item.PayloadRef, req.Context), nil
}

// AnalyzeFrame scores a single sampled video frame.
func (a *ImageAnalyzer) AnalyzeFrame(ctx context.Context, req *Request, frameRef string) *signal.RiskSignal {
	return a.analyzePayload(ctx, req.Item, "image", frameRef, req.Context)
}
