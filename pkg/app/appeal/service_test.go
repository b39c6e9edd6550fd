package appeal_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	appappeal "github.com/modshield/modgate/pkg/app/appeal"
	moderationMocks "github.com/modshield/modgate/pkg/app/moderation/mocks"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/appeal"
	appealMocks "github.com/modshield/modgate/pkg/domain/appeal/mocks"
	auditMocks "github.com/modshield/modgate/pkg/domain/audit/mocks"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	decisionMocks "github.com/modshield/modgate/pkg/domain/decision/mocks"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type appealFixture struct {
	appeals      *appealMocks.Repository
	decisions    *decisionMocks.Repository
	orchestrator *moderationMocks.Orchestrator
	audits       *auditMocks.Repository
	service      appappeal.Service
}

func newAppealFixture() *appealFixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &appealFixture{
		appeals:      new(appealMocks.Repository),
		decisions:    new(decisionMocks.Repository),
		orchestrator: new(moderationMocks.Orchestrator),
		audits:       new(auditMocks.Repository),
	}
	f.audits.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.service = appappeal.NewService(
		f.appeals,
		f.decisions,
		f.orchestrator,
		f.audits,
		config.AppealsConfig{ConfidenceCutoff: 0.8, OverturnThreshold: 0.3},
		logger,
	)
	return f
}

func appealItem() *content.Item {
	return &content.Item{
		ID:         uuid.New(),
		TenantID:   "tenant-1",
		Type:       content.TypeText,
		PayloadRef: "payload",
	}
}

func blockDecision(contentID uuid.UUID) *decision.Decision {
	return &decision.Decision{
		ID:             uuid.New(),
		ContentID:      contentID,
		TenantID:       "tenant-1",
		Pass:           decision.PassInitial,
		Recommendation: decision.RecommendationBlock,
		RiskScore:      0.9,
		Confidence:     0.9,
		Severity:       decision.SeverityCritical,
	}
}

func reviewDecision(contentID uuid.UUID, risk, confidence float64) *decision.Decision {
	return &decision.Decision{
		ID:             uuid.New(),
		ContentID:      contentID,
		TenantID:       "tenant-1",
		Pass:           decision.PassAppeal,
		Recommendation: decision.RecommendationApprove,
		RiskScore:      risk,
		Confidence:     confidence,
		Signals:        []signal.RiskSignal{{Analyzer: "text", Confidence: confidence, RiskScore: risk}},
	}
}

func TestService_File(t *testing.T) {
	t.Run("should create a pending appeal", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		original := blockDecision(item.ID)

		f.decisions.On("GetByID", mock.Anything, original.ID).Return(original, nil)
		f.appeals.On("Save", mock.Anything, mock.Anything).Return(nil)

		a, err := f.service.File(context.Background(), item, original.ID, "this is satire")

		require.NoError(t, err)
		assert.Equal(t, appeal.StatusPending, a.Status)
		assert.Equal(t, item.ID, a.ContentID)
		assert.Equal(t, original.ID, a.OriginalDecisionID)
	})

	t.Run("should surface a missing decision", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		missingID := uuid.New()

		f.decisions.On("GetByID", mock.Anything, missingID).
			Return(nil, domainErrors.NewNotFoundError("decision", missingID))

		a, err := f.service.File(context.Background(), item, missingID, "reason")

		assert.Nil(t, a)
		assert.True(t, domainErrors.IsNotFoundError(err))
	})

	t.Run("should reject a decision for different content", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		original := blockDecision(uuid.New())

		f.decisions.On("GetByID", mock.Anything, original.ID).Return(original, nil)

		_, err := f.service.File(context.Background(), item, original.ID, "reason")

		assert.ErrorIs(t, err, domain.ErrInvalidAppealState)
	})
}

func TestService_Resolve(t *testing.T) {
	setup := func(f *appealFixture, item *content.Item, review *decision.Decision) (*appeal.Appeal, *decision.Decision) {
		original := blockDecision(item.ID)
		a := &appeal.Appeal{
			ID:                 uuid.New(),
			ContentID:          item.ID,
			OriginalDecisionID: original.ID,
			TenantID:           "tenant-1",
			UserReason:         "this is satire",
			Status:             appeal.StatusPending,
		}
		f.appeals.On("GetByID", mock.Anything, a.ID).Return(a, nil)
		f.decisions.On("GetByID", mock.Anything, original.ID).Return(original, nil)
		f.appeals.On("Update", mock.Anything, a).Return(nil)
		f.orchestrator.On("Reevaluate", mock.Anything, item, mock.Anything, "this is satire").
			Return(review, nil)
		return a, original
	}

	t.Run("should overturn a restrictive decision on clean re-analysis", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		review := reviewDecision(item.ID, 0.1, 0.9)
		a, _ := setup(f, item, review)

		resolved, err := f.service.Resolve(context.Background(), a.ID, item)

		require.NoError(t, err)
		assert.Equal(t, appeal.OutcomeOverturned, resolved.Outcome)
		assert.Equal(t, appeal.StatusResolved, resolved.Status)
		assert.Equal(t, review.ID, resolved.ReviewDecisionID)
	})

	t.Run("should uphold when re-analysis still finds risk", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		review := reviewDecision(item.ID, 0.6, 0.9)
		a, _ := setup(f, item, review)

		resolved, err := f.service.Resolve(context.Background(), a.ID, item)

		require.NoError(t, err)
		assert.Equal(t, appeal.OutcomeUpheld, resolved.Outcome)
		assert.Equal(t, appeal.StatusResolved, resolved.Status)
	})

	t.Run("should escalate low confidence to a human", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		review := reviewDecision(item.ID, 0.1, 0.5)
		a, _ := setup(f, item, review)

		resolved, err := f.service.Resolve(context.Background(), a.ID, item)

		require.NoError(t, err)
		assert.Equal(t, appeal.OutcomeNeedsHumanReview, resolved.Outcome)
		assert.Equal(t, appeal.StatusReviewing, resolved.Status)
	})

	t.Run("should escalate degraded re-analysis to a human", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		review := reviewDecision(item.ID, 0.1, 0.9)
		review.Signals[0].Degraded = true
		a, _ := setup(f, item, review)

		resolved, err := f.service.Resolve(context.Background(), a.ID, item)

		require.NoError(t, err)
		assert.Equal(t, appeal.OutcomeNeedsHumanReview, resolved.Outcome)
	})

	t.Run("should refuse to resolve a closed appeal", func(t *testing.T) {
		f := newAppealFixture()
		item := appealItem()
		closed := &appeal.Appeal{
			ID:     uuid.New(),
			Status: appeal.StatusResolved,
		}
		f.appeals.On("GetByID", mock.Anything, closed.ID).Return(closed, nil)

		_, err := f.service.Resolve(context.Background(), closed.ID, item)

		assert.ErrorIs(t, err, domain.ErrAppealAlreadyClosed)
	})
}
