package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	commonLabels = []string{"tenant_id"}

	// Latency buckets in milliseconds. Analyzer calls sit behind external
	// inference providers, so the tail stretches well past typical API calls.
	latencyBuckets = []float64{
		25, 50, 100,
		250, 500, 1000,
		2500, 5000, 10000,
		30000, 60000,
	}

	DecisionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modgate_decisions_total",
			Help: "Total number of moderation decisions emitted",
		},
		append(commonLabels, "recommendation", "pass"),
	)

	AnalyzerLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modgate_analyzer_latency_ms",
			Help:    "Analyzer call latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"analyzer"},
	)

	DegradedSignalsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modgate_degraded_signals_total",
			Help: "Risk signals degraded by provider failures",
		},
		[]string{"analyzer", "failure_class"},
	)

	AppealsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modgate_appeals_total",
			Help: "Appeals processed by outcome",
		},
		[]string{"outcome"},
	)

	ThreatLevelGauge = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "modgate_threat_level",
			Help: "Current rolling threat score (0.0-1.0)",
		},
	)

	QueueDepth = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "modgate_scheduler_queue_depth",
			Help: "Pending items per priority tier",
		},
		[]string{"priority"},
	)
)

type MetricsConfig struct {
	EnableLatency bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency: true,
	}
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
