package correlation

import "time"

type FindingType string

const (
	FindingCorrelatedSpike FindingType = "correlated_spike"
	FindingAnomaly         FindingType = "anomaly"
)

// SurfaceSnapshot carries a surface's recent risk series for cross-surface
// analysis. Samples are ordered newest first.
type SurfaceSnapshot struct {
	SurfaceID  string    `json:"surface_id"`
	RiskSeries []float64 `json:"risk_series"`
	CapturedAt time.Time `json:"captured_at"`
}

// Finding is a derived, advisory observation. Findings feed recommendations
// only and never mutate a Decision.
type Finding struct {
	Type           FindingType `json:"type"`
	Surfaces       []string    `json:"surfaces"`
	Coefficient    float64     `json:"coefficient,omitempty"`
	DeviationSigma float64     `json:"deviation_sigma,omitempty"`
	Recommendation string      `json:"recommendation"`
	DetectedAt     time.Time   `json:"detected_at"`
}
