package prediction

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for scheduling: urgent > high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Stricter returns the higher of two priorities.
func Stricter(a, b Priority) Priority {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// RiskPrediction is a metadata-only, pre-analysis estimate used exclusively
// for scheduling. It never substitutes for a Decision.
type RiskPrediction struct {
	RiskScore   float64  `json:"risk_prediction"`
	RiskFactors []string `json:"risk_factors"`
	Priority    Priority `json:"priority_level"`
}
