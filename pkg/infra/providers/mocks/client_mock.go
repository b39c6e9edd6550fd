package mocks

import (
	"context"

	"github.com/modshield/modgate/pkg/infra/providers"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) Analyze(ctx context.Context, req *providers.AnalysisRequest) (*providers.RawAnalysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	analysis, _ := args.Get(0).(*providers.RawAnalysis) //nolint:errcheck
	return analysis, args.Error(1)
}

type Transcriber struct {
	mock.Mock
}

func (m *Transcriber) Transcribe(ctx context.Context, payloadRef string) (string, error) {
	args := m.Called(ctx, payloadRef)
	return args.String(0), args.Error(1)
}
