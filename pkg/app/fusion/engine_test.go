package fusion_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/app/fusion"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/domain/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fusionConfig() config.FusionConfig {
	return config.FusionConfig{
		BlockThreshold:  0.7,
		ReviewThreshold: 0.4,
		TenantOverrides: map[string]config.TenantThresholds{
			"strict-tenant": {BlockThreshold: 0.5, ReviewThreshold: 0.2},
		},
	}
}

func fusionItem(tenantID string) *content.Item {
	return &content.Item{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Type:       content.TypeText,
		PayloadRef: "payload",
	}
}

func TestEngine_Decide(t *testing.T) {
	e := fusion.NewEngine(fusionConfig())

	t.Run("should block critical content on max category score", func(t *testing.T) {
		item := fusionItem("tenant-1")
		signals := []signal.RiskSignal{{
			Analyzer: "text",
			CategoryScores: map[string]float64{
				"toxicity": 0.9,
				"threat":   0.95,
			},
			RiskScore:  0.95,
			Confidence: 0.9,
			Reasoning:  "explicit threat",
		}}

		d := e.Decide(item, decision.PassInitial, signals)

		assert.Equal(t, decision.RecommendationBlock, d.Recommendation)
		assert.Equal(t, 0.95, d.RiskScore)
		assert.Equal(t, 0.9, d.Confidence)
		assert.Equal(t, decision.SeverityCritical, d.Severity)
		assert.ElementsMatch(t, []string{"toxicity", "threat"}, []string(d.FlaggedCategories))
		assert.False(t, d.AnalysisFailed)
		require.NoError(t, d.Validate())
	})

	t.Run("should route degraded signals to review", func(t *testing.T) {
		item := fusionItem("tenant-1")
		signals := []signal.RiskSignal{{
			Analyzer:       "image",
			CategoryScores: map[string]float64{},
			RiskScore:      0.5,
			Confidence:     0.2,
			Degraded:       true,
			Reasoning:      "manual review required — analysis degraded (timeout)",
		}}

		d := e.Decide(item, decision.PassInitial, signals)

		assert.Equal(t, decision.RecommendationReview, d.Recommendation)
		assert.Equal(t, 0.5, d.RiskScore)
		assert.LessOrEqual(t, d.Confidence, 0.2)
	})

	t.Run("should approve low risk content", func(t *testing.T) {
		item := fusionItem("tenant-1")
		signals := []signal.RiskSignal{{
			Analyzer:       "text",
			CategoryScores: map[string]float64{"toxicity": 0.1},
			RiskScore:      0.1,
			Confidence:     0.95,
		}}

		d := e.Decide(item, decision.PassInitial, signals)

		assert.Equal(t, decision.RecommendationApprove, d.Recommendation)
		assert.Equal(t, decision.SeverityLow, d.Severity)
		assert.Empty(t, d.FlaggedCategories)
	})

	t.Run("should take min confidence across signals", func(t *testing.T) {
		item := fusionItem("tenant-1")
		signals := []signal.RiskSignal{
			{Analyzer: "text", CategoryScores: map[string]float64{"toxicity": 0.5}, RiskScore: 0.5, Confidence: 0.9},
			{Analyzer: "image", CategoryScores: map[string]float64{"violence": 0.3}, RiskScore: 0.3, Confidence: 0.6},
		}

		d := e.Decide(item, decision.PassInitial, signals)

		assert.Equal(t, 0.5, d.RiskScore)
		assert.Equal(t, 0.6, d.Confidence)
	})

	t.Run("should apply tenant threshold overrides", func(t *testing.T) {
		item := fusionItem("strict-tenant")
		signals := []signal.RiskSignal{{
			Analyzer:       "text",
			CategoryScores: map[string]float64{"toxicity": 0.55},
			RiskScore:      0.55,
			Confidence:     0.9,
		}}

		d := e.Decide(item, decision.PassInitial, signals)

		assert.Equal(t, decision.RecommendationBlock, d.Recommendation)
	})

	t.Run("should mark zero-signal decisions as failed analysis", func(t *testing.T) {
		item := fusionItem("tenant-1")

		d := e.Decide(item, decision.PassInitial, nil)

		assert.True(t, d.AnalysisFailed)
		assert.Equal(t, decision.RecommendationReview, d.Recommendation)
		require.NoError(t, d.Validate())
	})

	t.Run("should carry the pass marker", func(t *testing.T) {
		item := fusionItem("tenant-1")
		signals := []signal.RiskSignal{{
			Analyzer:       "text",
			CategoryScores: map[string]float64{"toxicity": 0.1},
			RiskScore:      0.1,
			Confidence:     1,
		}}

		d := e.Decide(item, decision.PassAppeal, signals)

		assert.Equal(t, decision.PassAppeal, d.Pass)
	})
}
