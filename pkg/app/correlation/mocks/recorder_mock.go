package mocks

import (
	"context"

	"github.com/modshield/modgate/pkg/domain/correlation"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/stretchr/testify/mock"
)

type Recorder struct {
	mock.Mock
}

func (m *Recorder) Record(ctx context.Context, contentType string, d *decision.Decision) {
	m.Called(ctx, contentType, d)
}

func (m *Recorder) Findings(ctx context.Context, window int) ([]correlation.Finding, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	findings, _ := args.Get(0).([]correlation.Finding) //nolint:errcheck
	return findings, args.Error(1)
}
