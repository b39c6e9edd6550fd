package correlation

import (
	"fmt"
	"math"
	"time"

	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain/correlation"
)

//go:generate mockery --name=Engine --dir=. --output=./mocks --filename=engine_mock.go --case=underscore --with-expecter
type Engine interface {
	Correlate(snapshots []correlation.SurfaceSnapshot) []correlation.Finding
}

// engine runs pairwise Pearson correlation between surface risk series and
// per-surface anomaly detection against each surface's own baseline. Output is
// advisory only.
type engine struct {
	cfg config.CorrelationConfig
}

func NewEngine(cfg config.CorrelationConfig) Engine {
	return &engine{cfg: cfg}
}

func (e *engine) Correlate(snapshots []correlation.SurfaceSnapshot) []correlation.Finding {
	now := time.Now()
	var findings []correlation.Finding

	for i := 0; i < len(snapshots); i++ {
		for j := i + 1; j < len(snapshots); j++ {
			coefficient, ok := e.pearson(snapshots[i].RiskSeries, snapshots[j].RiskSeries)
			if !ok || coefficient < e.cfg.CorrelationThreshold {
				continue
			}
			findings = append(findings, correlation.Finding{
				Type:        correlation.FindingCorrelatedSpike,
				Surfaces:    []string{snapshots[i].SurfaceID, snapshots[j].SurfaceID},
				Coefficient: coefficient,
				Recommendation: fmt.Sprintf(
					"risk on surfaces %s and %s is moving together (r=%.2f), investigate for coordinated abuse",
					snapshots[i].SurfaceID, snapshots[j].SurfaceID, coefficient),
				DetectedAt: now,
			})
		}
	}

	for _, snapshot := range snapshots {
		sigma, ok := e.anomalySigma(snapshot.RiskSeries)
		if !ok || sigma < e.cfg.AnomalySigma {
			continue
		}
		findings = append(findings, correlation.Finding{
			Type:           correlation.FindingAnomaly,
			Surfaces:       []string{snapshot.SurfaceID},
			DeviationSigma: sigma,
			Recommendation: fmt.Sprintf(
				"latest risk on surface %s deviates %.1fσ from its baseline, review recent activity",
				snapshot.SurfaceID, sigma),
			DetectedAt: now,
		})
	}

	return findings
}

// pearson correlates the overlapping tail of two series. Constant series have
// no defined correlation and report false.
func (e *engine) pearson(a, b []float64) (float64, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < e.cfg.MinSeriesLength {
		return 0, false
	}
	a = a[:n]
	b = b[:n]

	meanA := mean(a)
	meanB := mean(b)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varA*varB), true
}

// anomalySigma measures how far the newest sample sits from the baseline
// formed by the rest of the series.
func (e *engine) anomalySigma(series []float64) (float64, bool) {
	if len(series) < e.cfg.MinSeriesLength {
		return 0, false
	}
	latest := series[0]
	baseline := series[1:]

	baseMean := mean(baseline)
	var variance float64
	for _, v := range baseline {
		d := v - baseMean
		variance += d * d
	}
	variance /= float64(len(baseline))
	std := math.Sqrt(variance)
	if std == 0 {
		return 0, false
	}
	return math.Abs(latest-baseMean) / std, true
}

func mean(series []float64) float64 {
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}
