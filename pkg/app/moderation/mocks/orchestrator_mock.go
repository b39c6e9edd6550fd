package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/domain/prediction"
	"github.com/stretchr/testify/mock"
)

type Orchestrator struct {
	mock.Mock
}

func (m *Orchestrator) SubmitForAnalysis(ctx context.Context, item *content.Item, types []content.Type, hint string) (*decision.Decision, error) {
	args := m.Called(ctx, item, types, hint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	d, _ := args.Get(0).(*decision.Decision) //nolint:errcheck
	return d, args.Error(1)
}

func (m *Orchestrator) SubmitAsync(ctx context.Context, item *content.Item, hint string, priorityHint prediction.Priority) (uuid.UUID, error) {
	args := m.Called(ctx, item, hint, priorityHint)
	id, _ := args.Get(0).(uuid.UUID) //nolint:errcheck
	return id, args.Error(1)
}

func (m *Orchestrator) Reevaluate(ctx context.Context, item *content.Item, types []content.Type, appealReason string) (*decision.Decision, error) {
	args := m.Called(ctx, item, types, appealReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	d, _ := args.Get(0).(*decision.Decision) //nolint:errcheck
	return d, args.Error(1)
}
