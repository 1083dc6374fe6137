package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

// Metrics exposes optimizer progress as Prometheus collectors. It
// implements scheduler.Recorder.
type Metrics struct {
	handler         http.Handler
	attempts        *prometheus.CounterVec
	attemptDuration prometheus.Histogram
	runs            prometheus.Counter
	bestScore       prometheus.Gauge
	unscheduled     prometheus.Gauge
	conflicts       prometheus.Gauge
}

var _ scheduler.Recorder = (*Metrics)(nil)

// New registers the timetable collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_attempts_total",
		Help: "Scheduling attempts by outcome",
	}, []string{"outcome"})

	attemptDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_attempt_duration_seconds",
		Help:    "Duration of a single scheduling attempt",
		Buckets: prometheus.DefBuckets,
	})

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Completed optimizer runs",
	})

	bestScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_best_score",
		Help: "Score of the last selected timetable",
	})

	unscheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_unscheduled_components",
		Help: "Unscheduled components in the last selected timetable",
	})

	conflicts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_conflicts",
		Help: "Validator conflicts in the last selected timetable",
	})

	registry.MustRegister(attempts, attemptDuration, runs, bestScore, unscheduled, conflicts)

	return &Metrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		attempts:        attempts,
		attemptDuration: attemptDuration,
		runs:            runs,
		bestScore:       bestScore,
		unscheduled:     unscheduled,
		conflicts:       conflicts,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *Metrics) ObserveAttempt(score int, failed bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case failed:
		outcome = "failed"
	case score == 0:
		outcome = "perfect"
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.attemptDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveResult(result *scheduler.Result) {
	if m == nil || result == nil {
		return
	}
	m.runs.Inc()
	m.bestScore.Set(float64(result.Score))
	m.unscheduled.Set(float64(len(result.Unscheduled)))
	m.conflicts.Set(float64(result.Conflicts))
}
