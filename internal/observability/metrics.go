// Package observability exposes Prometheus metrics for reconciliation runs.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SolveStreak/internal/model"
)

var (
	streakGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "solvestreak",
		Name:      "streak_days",
		Help:      "Consecutive active calendar days after the most recent run.",
	})
	totalGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "solvestreak",
		Name:      "total_solved",
		Help:      "Sum of the best-known counter totals.",
	})
	counterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "solvestreak",
		Name:      "counter_total",
		Help:      "Best-known total per counter.",
	}, []string{"counter"})
	fireGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "solvestreak",
		Name:      "fire_on",
		Help:      "1 when an increase was observed within the last 24 hours.",
	})
	lastRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "solvestreak",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recent reconciliation run.",
	})
	fetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solvestreak",
		Name:      "fetch_failures_total",
		Help:      "Counter fetches that returned no value.",
	}, []string{"counter"})
)

func init() {
	prometheus.MustRegister(streakGauge, totalGauge, counterGauge, fireGauge, lastRunGauge, fetchFailures)
}

// RecordRun publishes the outcome of a reconciliation run.
func RecordRun(res *model.RunResult) {
	if res == nil || res.Record == nil {
		return
	}
	streakGauge.Set(float64(res.Record.Streak))
	totalGauge.Set(float64(res.Record.LastTotal))
	for name, v := range res.Record.LastCounterTotals {
		counterGauge.WithLabelValues(name).Set(float64(v))
	}
	if res.FireOn {
		fireGauge.Set(1)
	} else {
		fireGauge.Set(0)
	}
	if !res.Now.IsZero() {
		lastRunGauge.Set(float64(res.Now.Unix()))
	}
}

// RecordFetchFailure counts a fetch that produced no reading.
func RecordFetchFailure(counter string) {
	fetchFailures.WithLabelValues(counter).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// NewServer builds an HTTP server exposing /metrics on addr.
func NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
