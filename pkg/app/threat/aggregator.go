package threat

import (
	"sync"
	"time"

	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain/decision"
	"github.com/modshield/modgate/pkg/domain/threat"
	"github.com/modshield/modgate/pkg/infra/prometheus"
)

//go:generate mockery --name=Aggregator --dir=. --output=./mocks --filename=aggregator_mock.go --case=underscore --with-expecter
type Aggregator interface {
	Record(d *decision.Decision)
	Current() threat.ThreatLevel
}

// aggregator keeps a fixed-size ring of recent decision risk scores and an
// exponentially smoothed platform score over the ring mean. Smoothing keeps a
// single benign decision from collapsing a CRITICAL reading.
type aggregator struct {
	mu sync.RWMutex

	window     []float64
	next       int
	filled     bool
	smoothed   float64
	previous   float64
	hasSample  bool
	alpha      float64
	windowSize int
}

func NewAggregator(cfg config.ThreatConfig) Aggregator {
	return newAggregator(cfg)
}

// NewAggregatorFromHistory seeds the window from recently persisted decisions
// so the threat level survives a restart. Decisions arrive newest first and
// are replayed in chronological order.
func NewAggregatorFromHistory(cfg config.ThreatConfig, recent []decision.Decision) Aggregator {
	a := newAggregator(cfg)
	for i := len(recent) - 1; i >= 0; i-- {
		a.Record(&recent[i])
	}
	return a
}

func newAggregator(cfg config.ThreatConfig) *aggregator {
	windowSize := cfg.WindowSize
	if windowSize <= 0 {
		windowSize = 100
	}
	alpha := cfg.SmoothingAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = 0.2
	}
	return &aggregator{
		window:     make([]float64, windowSize),
		alpha:      alpha,
		windowSize: windowSize,
	}
}

func (a *aggregator) Record(d *decision.Decision) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.window[a.next] = d.RiskScore
	a.next = (a.next + 1) % a.windowSize
	if a.next == 0 {
		a.filled = true
	}

	mean := a.windowMeanLocked()
	a.previous = a.smoothed
	if !a.hasSample {
		a.smoothed = mean
		a.previous = mean
		a.hasSample = true
	} else {
		a.smoothed = a.alpha*mean + (1-a.alpha)*a.smoothed
	}

	prometheus.ThreatLevelGauge.Set(a.smoothed)
}

func (a *aggregator) Current() threat.ThreatLevel {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return threat.ThreatLevel{
		Level:      levelFor(a.smoothed),
		Score:      a.smoothed,
		Trend:      a.trendLocked(),
		WindowSize: a.sampleCountLocked(),
		ComputedAt: time.Now(),
	}
}

func (a *aggregator) windowMeanLocked() float64 {
	n := a.sampleCountLocked()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a.window[i]
	}
	return sum / float64(n)
}

func (a *aggregator) sampleCountLocked() int {
	if a.filled {
		return a.windowSize
	}
	return a.next
}

const trendEpsilon = 0.01

func (a *aggregator) trendLocked() threat.Trend {
	delta := a.smoothed - a.previous
	switch {
	case delta > trendEpsilon:
		return threat.TrendRising
	case delta < -trendEpsilon:
		return threat.TrendFalling
	default:
		return threat.TrendStable
	}
}

func levelFor(score float64) threat.Level {
	switch {
	case score > 0.8:
		return threat.LevelCritical
	case score > 0.6:
		return threat.LevelHigh
	case score > 0.3:
		return threat.LevelMedium
	default:
		return threat.LevelLow
	}
}
