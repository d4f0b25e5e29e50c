package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain metrics using Prometheus.
type Recorder struct {
	analysesTotal *prometheus.CounterVec
	ingestTotal   *prometheus.CounterVec
	lastClose     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portrisk_analyses_total",
				Help: "Total number of portfolio analyses run",
			},
			[]string{"status"},
		),
		ingestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portrisk_ingest_tickers_total",
				Help: "Total number of per-ticker ingest outcomes",
			},
			[]string{"status"},
		),
		lastClose: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "portrisk_last_close",
				Help: "Last ingested close price per ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portrisk_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis records an analysis run outcome.
func (r *Recorder) RecordAnalysis(status string) {
	r.analysesTotal.WithLabelValues(status).Inc()
}

// RecordIngest records a per-ticker ingest outcome.
func (r *Recorder) RecordIngest(status string) {
	r.ingestTotal.WithLabelValues(status).Inc()
}

// RecordLastClose records the last ingested close for a ticker.
func (r *Recorder) RecordLastClose(ticker string, close float64) {
	r.lastClose.WithLabelValues(ticker).Set(close)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
