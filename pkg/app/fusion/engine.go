package fusion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/domain/signal"
)

//go:generate mockery --name=Engine --dir=. --output=./mocks --filename=engine_mock.go --case=underscore --with-expecter
type Engine interface {
	Decide(item *content.Item, pass decision.Pass, signals []signal.RiskSignal) *decision.Decision
}

// engine fuses analyzer signals into a single Decision. The fusion rule is
// deliberately pessimistic: overall risk is the maximum across every category
// score and signal risk, confidence the minimum across signals.
type engine struct {
	cfg config.FusionConfig
}

func NewEngine(cfg config.FusionConfig) Engine {
	return &engine{cfg: cfg}
}

func (e *engine) Decide(item *content.Item, pass decision.Pass, signals []signal.RiskSignal) *decision.Decision {
	thresholds := e.cfg.Thresholds(item.TenantID)

	if len(signals) == 0 {
		return &decision.Decision{
			ID:             uuid.New(),
			ContentID:      item.ID,
			TenantID:       item.TenantID,
			Pass:           pass,
			Recommendation: decision.RecommendationReview,
			Severity:       decision.SeverityLow,
			AnalysisFailed: true,
			Reasoning:      "analysis produced no signals, routed to manual review",
			CreatedAt:      time.Now(),
		}
	}

	risk := 0.0
	confidence := 1.0
	flagged := map[string]struct{}{}
	var reasons []string

	for i := range signals {
		sig := &signals[i]
		if max := sig.MaxCategoryScore(); max > risk {
			risk = max
		}
		for _, category := range sig.FlaggedCategories(thresholds.ReviewThreshold) {
			flagged[category] = struct{}{}
		}
		if sig.Confidence < confidence {
			confidence = sig.Confidence
		}
		if sig.Reasoning != "" {
			reasons = append(reasons, fmt.Sprintf("%s: %s", sig.Analyzer, sig.Reasoning))
		}
	}

	categories := make(domain.CategoriesJSON, 0, len(flagged))
	for category := range flagged {
		categories = append(categories, category)
	}

	return &decision.Decision{
		ID:                uuid.New(),
		ContentID:         item.ID,
		TenantID:          item.TenantID,
		Pass:              pass,
		Recommendation:    recommendationFor(risk, thresholds),
		RiskScore:         risk,
		Confidence:        confidence,
		Severity:          severityFor(risk),
		FlaggedCategories: categories,
		Signals:           signals,
		Reasoning:         strings.Join(reasons, "; "),
		CreatedAt:         time.Now(),
	}
}

func recommendationFor(risk float64, t config.TenantThresholds) decision.Recommendation {
	switch {
	case risk > t.BlockThreshold:
		return decision.RecommendationBlock
	case risk > t.ReviewThreshold:
		return decision.RecommendationReview
	default:
		return decision.RecommendationApprove
	}
}

func severityFor(risk float64) decision.Severity {
	switch {
	case risk > 0.8:
		return decision.SeverityCritical
	case risk > 0.6:
		return decision.SeverityHigh
	case risk > 0.3:
		return decision.SeverityMedium
	default:
		return decision.SeverityLow
	}
}
