package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/app/correlation"
	"github.com/modshield/modgate/pkg/app/fusion"
	"github.com/modshield/modgate/pkg/app/prescreen"
	"github.com/modshield/modgate/pkg/app/threat"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/audit"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/domain/prediction"
	"github.com/modshield/modgate/pkg/domain/queue"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/modshield/modgate/pkg/domain/task"
	"github.com/modshield/modgate/pkg/domain/telemetry"
	"github.com/modshield/modgate/pkg/infra/analyzer"
	"github.com/modshield/modgate/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name=Orchestrator --dir=. --output=./mocks --filename=orchestrator_mock.go --case=underscore --with-expecter
type Orchestrator interface {
	SubmitForAnalysis(ctx context.Context, item *content.Item, types []content.Type, hint string) (*decision.Decision, error)
	SubmitAsync(ctx context.Context, item *content.Item, hint string, priorityHint prediction.Priority) (uuid.UUID, error)
	Reevaluate(ctx context.Context, item *content.Item, types []content.Type, appealReason string) (*decision.Decision, error)
}

type orchestrator struct {
	registry   *analyzer.Registry
	engine     fusion.Engine
	decisions  decision.Repository
	reviewQ    queue.Repository
	tasks      task.Repository
	audits     audit.Repository
	predictor  prescreen.Predictor
	aggregator threat.Aggregator
	recorder   correlation.Recorder
	exporter   telemetry.Exporter
	logger     *logrus.Logger
}

func NewOrchestrator(
	registry *analyzer.Registry,
	engine fusion.Engine,
	decisions decision.Repository,
	reviewQ queue.Repository,
	tasks task.Repository,
	audits audit.Repository,
	predictor prescreen.Predictor,
	aggregator threat.Aggregator,
	recorder correlation.Recorder,
	exporter telemetry.Exporter,
	logger *logrus.Logger,
) Orchestrator {
	return &orchestrator{
		registry:   registry,
		engine:     engine,
		decisions:  decisions,
		reviewQ:    reviewQ,
		tasks:      tasks,
		audits:     audits,
		predictor:  predictor,
		aggregator: aggregator,
		recorder:   recorder,
		exporter:   exporter,
		logger:     logger,
	}
}

func (o *orchestrator) SubmitForAnalysis(ctx context.Context, item *content.Item, types []content.Type, hint string) (*decision.Decision, error) {
	return o.analyze(ctx, item, types, analyzer.Context{Hint: hint}, decision.PassInitial)
}

// Reevaluate re-runs analysis for an appeal, folding the appellant's reason
// into analyzer context. The resulting decision carries the appeal pass marker
// and does not re-enter the human review queue; the appeal outcome governs
// what happens next.
func (o *orchestrator) Reevaluate(ctx context.Context, item *content.Item, types []content.Type, appealReason string) (*decision.Decision, error) {
	return o.analyze(ctx, item, types, analyzer.Context{AppealReason: appealReason}, decision.PassAppeal)
}

func (o *orchestrator) analyze(ctx context.Context, item *content.Item, types []content.Type, actx analyzer.Context, pass decision.Pass) (*decision.Decision, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = []content.Type{item.Type}
	}

	// Resolve every analyzer before any provider call so invalid input is
	// rejected synchronously.
	analyzers := make([]analyzer.Analyzer, len(types))
	for i, t := range types {
		if !t.Valid() {
			return nil, domain.ErrInvalidContentType
		}
		a, err := o.registry.ForType(t)
		if err != nil {
			return nil, err
		}
		analyzers[i] = a
	}

	signals := make([]*signal.RiskSignal, len(analyzers))
	g, groupCtx := errgroup.WithContext(ctx)
	for i, a := range analyzers {
		g.Go(func() error {
			sig, err := a.Analyze(groupCtx, &analyzer.Request{Item: item, Context: actx})
			if err != nil {
				return err
			}
			signals[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fused := make([]signal.RiskSignal, 0, len(signals))
	for _, sig := range signals {
		if sig != nil {
			fused = append(fused, *sig)
		}
	}

	d := o.engine.Decide(item, pass, fused)
	if err := o.decisions.Save(ctx, d); err != nil {
		return nil, err
	}

	o.publish(ctx, item, d)
	if pass == decision.PassInitial && d.Recommendation == decision.RecommendationReview {
		o.enqueueReview(ctx, item, d)
	}
	return d, nil
}

// publish fans the persisted decision out to the side channels. None of them
// may fail the analysis itself.
func (o *orchestrator) publish(ctx context.Context, item *content.Item, d *decision.Decision) {
	prometheus.DecisionsTotal.WithLabelValues(d.TenantID, string(d.Recommendation), string(d.Pass)).Inc()
	o.aggregator.Record(d)
	o.recorder.Record(ctx, string(item.Type), d)

	entry := &audit.Log{
		ActorID:    "system",
		Action:     audit.ActionDecisionEmitted,
		TargetType: "decision",
		TargetID:   d.ID.String(),
		Metadata: map[string]interface{}{
			"content_id":     d.ContentID.String(),
			"recommendation": string(d.Recommendation),
			"risk_score":     d.RiskScore,
			"pass":           string(d.Pass),
		},
	}
	if err := o.audits.Save(ctx, entry); err != nil {
		o.logger.WithError(err).Warn("failed to write decision audit log")
	}

	if o.exporter != nil {
		evt := &telemetry.Event{
			DecisionID:     d.ID,
			ContentID:      d.ContentID,
			TenantID:       d.TenantID,
			ContentType:    string(item.Type),
			Pass:           string(d.Pass),
			Recommendation: string(d.Recommendation),
			Severity:       string(d.Severity),
			RiskScore:      d.RiskScore,
			Confidence:     d.Confidence,
			Degraded:       d.AnalysisFailed || anyDegraded(d.Signals),
			EmittedAt:      time.Now(),
		}
		if err := o.exporter.Handle(ctx, evt); err != nil {
			o.logger.WithError(err).Warn("failed to export decision event")
		}
	}
}

func (o *orchestrator) enqueueReview(ctx context.Context, item *content.Item, d *decision.Decision) {
	reviewItem := &queue.Item{
		ContentID:  d.ContentID,
		DecisionID: d.ID,
		TenantID:   d.TenantID,
		Reason:     d.Reasoning,
		Priority:   severityRank(d.Severity),
		Confidence: d.Confidence,
	}
	if err := o.reviewQ.Save(ctx, reviewItem); err != nil {
		o.logger.WithError(err).WithField("decision_id", d.ID).
			Error("failed to enqueue item for human review")
	}
}

func (o *orchestrator) SubmitAsync(ctx context.Context, item *content.Item, hint string, priorityHint prediction.Priority) (uuid.UUID, error) {
	if err := item.Validate(); err != nil {
		return uuid.Nil, err
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	priority := o.predictor.Predict(item).Priority
	if priorityHint != "" {
		priority = prediction.Stricter(priority, priorityHint)
	}

	t := &task.AnalysisTask{
		Item:       *item,
		Hint:       hint,
		Priority:   priority,
		EnqueuedAt: time.Now(),
	}
	if err := o.tasks.Enqueue(ctx, t); err != nil {
		return uuid.Nil, err
	}
	return item.ID, nil
}

func anyDegraded(signals []signal.RiskSignal) bool {
	for i := range signals {
		if signals[i].Degraded {
			return true
		}
	}
	return false
}

func severityRank(s decision.Severity) int {
	switch s {
	case decision.SeverityCritical:
		return 3
	case decision.SeverityHigh:
		return 2
	case decision.SeverityMedium:
		return 1
	default:
		return 0
	}
}
