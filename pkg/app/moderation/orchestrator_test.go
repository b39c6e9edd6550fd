package moderation_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	correlationMocks "github.com/modshield/modgate/pkg/app/correlation/mocks"
	"github.com/modshield/modgate/pkg/app/fusion"
	"github.com/modshield/modgate/pkg/app/moderation"
	"github.com/modshield/modgate/pkg/app/prescreen"
	"github.com/modshield/modgate/pkg/app/threat"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain"
	auditMocks "github.com/modshield/modgate/pkg/domain/audit/mocks"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	decisionMocks "github.com/modshield/modgate/pkg/domain/decision/mocks"
	"github.com/modshield/modgate/pkg/domain/prediction"
	"github.com/modshield/modgate/pkg/domain/queue"
	queueMocks "github.com/modshield/modgate/pkg/domain/queue/mocks"
	"github.com/modshield/modgate/pkg/domain/task"
	taskMocks "github.com/modshield/modgate/pkg/domain/task/mocks"
	"github.com/modshield/modgate/pkg/infra/analyzer"
	"github.com/modshield/modgate/pkg/infra/httpx"
	"github.com/modshield/modgate/pkg/infra/providers"
	providerMocks "github.com/modshield/modgate/pkg/infra/providers/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orchestratorFixture struct {
	client       *providerMocks.Client
	decisions    *decisionMocks.Repository
	reviewQ      *queueMocks.Repository
	tasks        *taskMocks.Repository
	audits       *auditMocks.Repository
	recorder     *correlationMocks.Recorder
	orchestrator moderation.Orchestrator
}

func newOrchestratorFixture() *orchestratorFixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &orchestratorFixture{
		client:    new(providerMocks.Client),
		decisions: new(decisionMocks.Repository),
		reviewQ:   new(queueMocks.Repository),
		tasks:     new(taskMocks.Repository),
		audits:    new(auditMocks.Repository),
		recorder:  new(correlationMocks.Recorder),
	}

	breaker := func(name string) httpx.CircuitBreaker {
		return httpx.NewCircuitBreaker(uuid.NewString(), time.Second, 100)
	}
	text := analyzer.NewTextAnalyzer(logger, f.client, breaker("text"), time.Second)
	image := analyzer.NewImageAnalyzer(logger, f.client, breaker("image"), time.Second)
	audio := analyzer.NewAudioAnalyzer(logger, new(providerMocks.Transcriber), text, breaker("audio"), time.Second)
	video := analyzer.NewVideoAnalyzer(logger, image, 30*time.Second, 10)
	registry := analyzer.NewRegistry(text, image, audio, video)

	f.audits.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.recorder.On("Record", mock.Anything, mock.Anything, mock.Anything).Maybe()

	f.orchestrator = moderation.NewOrchestrator(
		registry,
		fusion.NewEngine(config.FusionConfig{BlockThreshold: 0.7, ReviewThreshold: 0.4}),
		f.decisions,
		f.reviewQ,
		f.tasks,
		f.audits,
		prescreen.NewPredictor(config.PreScreenConfig{
			BaseRisk:         0.1,
			ViolationWeight:  0.15,
			NewAccountDays:   30,
			NewAccountRisk:   0.1,
			LargeVideoBytes:  500 << 20,
			LargeVideoRisk:   0.05,
			OffHoursRisk:     0.03,
			NormalHoursStart: 6,
			NormalHoursEnd:   23,
		}),
		threat.NewAggregator(config.ThreatConfig{WindowSize: 100, SmoothingAlpha: 0.2}),
		f.recorder,
		nil,
		logger,
	)
	return f
}

func submittedItem(t content.Type) *content.Item {
	return &content.Item{
		ID:         uuid.New(),
		TenantID:   "tenant-1",
		Type:       t,
		PayloadRef: "payload",
		UploadedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrchestrator_SubmitForAnalysis(t *testing.T) {
	t.Run("should block high risk content and persist the decision", func(t *testing.T) {
		f := newOrchestratorFixture()
		f.client.On("Analyze", mock.Anything, mock.Anything).Return(&providers.RawAnalysis{
			CategoryScores: map[string]float64{"toxicity": 0.9, "threat": 0.95},
			Confidence:     0.9,
		}, nil)
		f.decisions.On("Save", mock.Anything, mock.Anything).Return(nil)

		d, err := f.orchestrator.SubmitForAnalysis(context.Background(), submittedItem(content.TypeText), nil, "")

		require.NoError(t, err)
		assert.Equal(t, decision.RecommendationBlock, d.Recommendation)
		assert.Equal(t, 0.95, d.RiskScore)
		assert.Equal(t, decision.PassInitial, d.Pass)
		f.decisions.AssertCalled(t, "Save", mock.Anything, d)
		f.reviewQ.AssertNotCalled(t, "Save")
	})

	t.Run("should enqueue review recommendations for humans", func(t *testing.T) {
		f := newOrchestratorFixture()
		f.client.On("Analyze", mock.Anything, mock.Anything).Return(&providers.RawAnalysis{
			CategoryScores: map[string]float64{"toxicity": 0.5},
			Confidence:     0.8,
		}, nil)
		f.decisions.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.reviewQ.On("Save", mock.Anything, mock.MatchedBy(func(item *queue.Item) bool {
			return item.TenantID == "tenant-1"
		})).Return(nil)

		d, err := f.orchestrator.SubmitForAnalysis(context.Background(), submittedItem(content.TypeText), nil, "")

		require.NoError(t, err)
		assert.Equal(t, decision.RecommendationReview, d.Recommendation)
		f.reviewQ.AssertExpectations(t)
	})

	t.Run("should fold degraded signals into a review decision", func(t *testing.T) {
		f := newOrchestratorFixture()
		f.client.On("Analyze", mock.Anything, mock.Anything).Return(nil, providers.ErrUnavailable)
		f.decisions.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.reviewQ.On("Save", mock.Anything, mock.Anything).Return(nil)

		d, err := f.orchestrator.SubmitForAnalysis(context.Background(), submittedItem(content.TypeImage), nil, "")

		require.NoError(t, err)
		assert.Equal(t, decision.RecommendationReview, d.Recommendation)
		assert.Equal(t, 0.5, d.RiskScore)
		assert.LessOrEqual(t, d.Confidence, 0.2)
	})

	t.Run("should fan out over multiple requested types", func(t *testing.T) {
		f := newOrchestratorFixture()
		f.client.On("Analyze", mock.Anything, mock.MatchedBy(func(req *providers.AnalysisRequest) bool {
			return req.ContentType == "text"
		})).Return(&providers.RawAnalysis{
			CategoryScores: map[string]float64{"toxicity": 0.2},
			Confidence:     0.9,
		}, nil)
		f.client.On("Analyze", mock.Anything, mock.MatchedBy(func(req *providers.AnalysisRequest) bool {
			return req.ContentType == "image"
		})).Return(&providers.RawAnalysis{
			CategoryScores: map[string]float64{"violence": 0.85},
			Confidence:     0.8,
		}, nil)
		f.decisions.On("Save", mock.Anything, mock.Anything).Return(nil)

		d, err := f.orchestrator.SubmitForAnalysis(
			context.Background(),
			submittedItem(content.TypeText),
			[]content.Type{content.TypeText, content.TypeImage},
			"")

		require.NoError(t, err)
		require.Len(t, d.Signals, 2)
		assert.Equal(t, 0.85, d.RiskScore)
		assert.Equal(t, decision.RecommendationBlock, d.Recommendation)
	})

	t.Run("should reject invalid input before any provider call", func(t *testing.T) {
		f := newOrchestratorFixture()
		item := submittedItem(content.TypeText)
		item.PayloadRef = ""

		d, err := f.orchestrator.SubmitForAnalysis(context.Background(), item, nil, "")

		assert.Nil(t, d)
		assert.ErrorIs(t, err, domain.ErrMissingPayloadRef)
		f.client.AssertNotCalled(t, "Analyze")
	})
}

func TestOrchestrator_SubmitAsync(t *testing.T) {
	t.Run("should enqueue with prescreen priority", func(t *testing.T) {
		f := newOrchestratorFixture()
		item := submittedItem(content.TypeText)
		item.PriorViolations = 5

		f.tasks.On("Enqueue", mock.Anything, mock.MatchedBy(func(at *task.AnalysisTask) bool {
			return at.Priority == prediction.PriorityUrgent
		})).Return(nil)

		id, err := f.orchestrator.SubmitAsync(context.Background(), item, "", "")

		require.NoError(t, err)
		assert.Equal(t, item.ID, id)
		f.tasks.AssertExpectations(t)
	})

	t.Run("should let a stricter hint win over prescreen", func(t *testing.T) {
		f := newOrchestratorFixture()
		item := submittedItem(content.TypeText)

		f.tasks.On("Enqueue", mock.Anything, mock.MatchedBy(func(at *task.AnalysisTask) bool {
			return at.Priority == prediction.PriorityHigh
		})).Return(nil)

		_, err := f.orchestrator.SubmitAsync(context.Background(), item, "", prediction.PriorityHigh)

		require.NoError(t, err)
		f.tasks.AssertExpectations(t)
	})
}
