package metrics

import (
	"YieldAdvisor/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analyses  *prometheus.CounterVec
	oracle    *prometheus.CounterVec
	narration *prometheus.CounterVec
	fallbacks prometheus.Counter
	bestAPY   *prometheus.GaugeVec
	latency   *prometheus.HistogramVec
}

// New registers the advisor collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yield_advisor_analyses_total",
				Help: "Total number of analyze requests by outcome",
			},
			[]string{"outcome"},
		),
		oracle: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yield_advisor_oracle_requests_total",
				Help: "Price oracle lookups by outcome",
			},
			[]string{"outcome"},
		),
		narration: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yield_advisor_narrations_total",
				Help: "Narrations by source (llm or fallback) and failure kind",
			},
			[]string{"source", "kind"},
		),
		fallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "yield_advisor_selector_fallback_total",
				Help: "Selections where no record met min_apy and the full set was ranked",
			},
		),
		bestAPY: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "yield_advisor_best_apy_percent",
				Help: "APY of the most recently recommended opportunity",
			},
			[]string{"protocol", "chain"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yield_advisor_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis counts one analyze call.
func (r *Recorder) RecordAnalysis(outcome string) {
	r.analyses.WithLabelValues(outcome).Inc()
}

// RecordOracle counts one oracle lookup.
func (r *Recorder) RecordOracle(outcome string) {
	r.oracle.WithLabelValues(outcome).Inc()
}

// RecordNarration counts one narration.
func (r *Recorder) RecordNarration(source models.NarrationSource, kind string) {
	r.narration.WithLabelValues(string(source), kind).Inc()
}

func (r *Recorder) RecordSelectorFallback() {
	r.fallbacks.Inc()
}

func (r *Recorder) RecordBestAPY(protocol, chain string, apy float64) {
	r.bestAPY.WithLabelValues(protocol, chain).Set(apy)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
