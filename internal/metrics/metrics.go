// Package metrics records bootstrap step metrics with Prometheus
// and can export them in the textfile collector format.
package metrics

import (
	"context"

	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Recorder collects metrics for one launcher process.
type Recorder struct {
	registry    *prometheus.Registry
	steps       *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	programExit prometheus.Gauge
	failures    *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launchpad_steps_total",
				Help: "Bootstrap steps by outcome",
			},
			[]string{"step", "outcome"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launchpad_step_duration_seconds",
				Help:    "Duration of bootstrap steps",
				Buckets: []float64{.01, .1, .5, 1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"step"},
		),
		programExit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "launchpad_program_exit_code",
			Help: "Exit status of the last main program run (-1 if it did not run)",
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launchpad_failures_total",
				Help: "Fatal bootstrap failures by kind",
			},
			[]string{"kind"},
		),
	}
	r.programExit.Set(-1)
	r.registry.MustRegister(r.steps, r.durations, r.programExit, r.failures)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Hooks returns lifecycle hooks feeding the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepFinish: func(_ context.Context, e *domain.StepEvent) {
			step := string(e.Step)
			switch {
			case e.Err != nil:
				r.steps.WithLabelValues(step, OutcomeFailed).Inc()
				if kind, ok := domain.KindOf(e.Err); ok {
					r.failures.WithLabelValues(string(kind)).Inc()
				}
			case e.Skipped:
				r.steps.WithLabelValues(step, OutcomeSkipped).Inc()
			default:
				r.steps.WithLabelValues(step, OutcomeOK).Inc()
			}
			r.durations.WithLabelValues(step).Observe(e.Duration.Seconds())
		},
	}
}

// ObserveReport records the outcome of a finished run.
func (r *Recorder) ObserveReport(report domain.Report) {
	r.programExit.Set(float64(report.ProgramExitCode))
}

// WriteTextfile writes all metrics to path atomically, for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
