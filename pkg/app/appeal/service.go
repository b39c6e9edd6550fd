package appeal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/app/moderation"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/appeal"
	"github.com/modshield/modgate/pkg/domain/audit"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=appeal_service_mock.go --case=underscore --with-expecter
type Service interface {
	File(ctx context.Context, item *content.Item, originalDecisionID uuid.UUID, userReason string) (*appeal.Appeal, error)
	Resolve(ctx context.Context, appealID uuid.UUID, item *content.Item) (*appeal.Appeal, error)
	Get(ctx context.Context, appealID uuid.UUID) (*appeal.Appeal, error)
}

// service drives the appeal lifecycle. Resolution re-runs the full analysis
// pipeline with the appellant's reason as context and applies the outcome
// rule; anything uncertain is handed to a human, never auto-overturned.
type service struct {
	appeals      appeal.Repository
	decisions    decision.Repository
	orchestrator moderation.Orchestrator
	audits       audit.Repository
	cfg          config.AppealsConfig
	logger       *logrus.Logger
}

func NewService(
	appeals appeal.Repository,
	decisions decision.Repository,
	orchestrator moderation.Orchestrator,
	audits audit.Repository,
	cfg config.AppealsConfig,
	logger *logrus.Logger,
) Service {
	return &service{
		appeals:      appeals,
		decisions:    decisions,
		orchestrator: orchestrator,
		audits:       audits,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *service) File(ctx context.Context, item *content.Item, originalDecisionID uuid.UUID, userReason string) (*appeal.Appeal, error) {
	original, err := s.decisions.GetByID(ctx, originalDecisionID)
	if err != nil {
		return nil, err
	}
	if original.ContentID != item.ID {
		return nil, domain.ErrInvalidAppealState
	}

	a := &appeal.Appeal{
		ContentID:          item.ID,
		OriginalDecisionID: original.ID,
		TenantID:           original.TenantID,
		UserReason:         userReason,
		Status:             appeal.StatusPending,
	}
	if err := s.appeals.Save(ctx, a); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, a, audit.ActionAppealFiled, map[string]interface{}{
		"original_decision_id": original.ID.String(),
	})
	return a, nil
}

func (s *service) Resolve(ctx context.Context, appealID uuid.UUID, item *content.Item) (*appeal.Appeal, error) {
	a, err := s.appeals.GetByID(ctx, appealID)
	if err != nil {
		return nil, err
	}
	if a.Terminal() {
		return nil, domain.ErrAppealAlreadyClosed
	}
	original, err := s.decisions.GetByID(ctx, a.OriginalDecisionID)
	if err != nil {
		return nil, err
	}

	if err := a.StartReview(); err != nil {
		return nil, err
	}
	if err := s.appeals.Update(ctx, a); err != nil {
		return nil, err
	}

	review, err := s.orchestrator.Reevaluate(ctx, item, nil, a.UserReason)
	if err != nil {
		return nil, err
	}

	outcome := s.outcomeFor(original, review)
	if err := a.Resolve(outcome, review.Confidence, outcomeReasoning(outcome, review), review.ID); err != nil {
		return nil, err
	}
	if err := s.appeals.Update(ctx, a); err != nil {
		return nil, err
	}

	prometheus.AppealsTotal.WithLabelValues(string(outcome)).Inc()
	s.writeAudit(ctx, a, audit.ActionAppealResolved, map[string]interface{}{
		"outcome":            string(outcome),
		"review_decision_id": review.ID.String(),
		"review_risk_score":  review.RiskScore,
	})
	return a, nil
}

func (s *service) Get(ctx context.Context, appealID uuid.UUID) (*appeal.Appeal, error) {
	return s.appeals.GetByID(ctx, appealID)
}

// outcomeFor applies the resolution rule. Low confidence or a degraded
// re-analysis always defers to a human before the overturn/uphold choice is
// even considered.
func (s *service) outcomeFor(original, review *decision.Decision) appeal.Outcome {
	if review.Confidence < s.cfg.ConfidenceCutoff || review.AnalysisFailed || anyDegraded(review) {
		return appeal.OutcomeNeedsHumanReview
	}
	if review.RiskScore < s.cfg.OverturnThreshold && original.Restrictive() {
		return appeal.OutcomeOverturned
	}
	return appeal.OutcomeUpheld
}

func outcomeReasoning(outcome appeal.Outcome, review *decision.Decision) string {
	switch outcome {
	case appeal.OutcomeOverturned:
		return "re-analysis found the content within policy, original decision overturned"
	case appeal.OutcomeNeedsHumanReview:
		return "automated re-analysis was not confident enough, escalated to human review"
	default:
		return "re-analysis confirmed the original decision"
	}
}

func anyDegraded(d *decision.Decision) bool {
	for i := range d.Signals {
		if d.Signals[i].Degraded {
			return true
		}
	}
	return false
}

func (s *service) writeAudit(ctx context.Context, a *appeal.Appeal, action string, metadata map[string]interface{}) {
	metadata["content_id"] = a.ContentID.String()
	entry := &audit.Log{
		ActorID:    "system",
		Action:     action,
		TargetType: "appeal",
		TargetID:   a.ID.String(),
		Metadata:   metadata,
		CreatedAt:  time.Now(),
	}
	if err := s.audits.Save(ctx, entry); err != nil {
		s.logger.WithError(err).Warn("failed to write appeal audit log")
	}
}
