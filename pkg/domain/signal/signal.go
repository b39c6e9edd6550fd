package signal

import (
	"time"

	"github.com/google/uuid"
)

// Category keys emitted by analyzers. Providers may report additional
// categories; these are the ones the fusion thresholds are calibrated for.
const (
	CategoryToxicity     = "toxicity"
	CategoryExplicitness = "explicitness"
	CategoryViolence     = "violence"
	CategoryThreat       = "threat"
)

// RiskSignal is the normalized output of one analyzer for one content item.
type RiskSignal struct {
	ID             uuid.UUID          `json:"id"`
	ContentID      uuid.UUID          `json:"content_id"`
	Analyzer       string             `json:"analyzer"`
	CategoryScores map[string]float64 `json:"category_scores"`
	RiskScore      float64            `json:"risk_score"`
	Confidence     float64            `json:"confidence"`
	Reasoning      string             `json:"reasoning"`
	Transcript     string             `json:"transcript,omitempty"`
	Degraded       bool               `json:"degraded"`
	ProcessingTime time.Duration      `json:"processing_time"`
	CreatedAt      time.Time          `json:"created_at"`
}

// MaxCategoryScore returns the highest category score, or the overall risk
// score when it exceeds every category.
func (s *RiskSignal) MaxCategoryScore() float64 {
	max := s.RiskScore
	for _, v := range s.CategoryScores {
		if v > max {
			max = v
		}
	}
	return max
}

// FlaggedCategories returns the categories scoring strictly above the given
// threshold. Iteration order is not guaranteed.
func (s *RiskSignal) FlaggedCategories(threshold float64) []string {
	var flagged []string
	for category, score := range s.CategoryScores {
		if score > threshold {
			flagged = append(flagged, category)
		}
	}
	return flagged
}
