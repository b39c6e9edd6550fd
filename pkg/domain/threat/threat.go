package threat

import "time"

type Level string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// ThreatLevel is the rolling, process-wide risk summary derived from the most
// recent window of Decisions. It has no persistence of its own beyond the
// window it summarizes.
type ThreatLevel struct {
	Level      Level     `json:"level"`
	Score      float64   `json:"score"`
	Trend      Trend     `json:"trend"`
	WindowSize int       `json:"window_size"`
	ComputedAt time.Time `json:"computed_at"`
}
