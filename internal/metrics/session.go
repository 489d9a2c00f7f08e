// Package metrics records per-session counters for a grading session in a
// private Prometheus registry and can dump them in the text exposition format.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/agbru/gradecalc/internal/grades"
)

const namespace = "gradecalc"

// Session holds the metrics of one run. A nil *Session is valid and records nothing.
type Session struct {
	registry     *prometheus.Registry
	entries      prometheus.Counter
	rejections   *prometheus.CounterVec
	grades       prometheus.Histogram
	mean         prometheus.Gauge
	passingRatio prometheus.Gauge
}

// NewSession creates a Session with its own registry, so repeated sessions
// in one process (tests) never collide on registration.
func NewSession() *Session {
	s := &Session{
		registry: prometheus.NewRegistry(),
		entries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Number of accepted subject/grade entries.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_rejections_total",
			Help:      "Number of input lines rejected and re-prompted.",
		}, []string{"field", "reason"}),
		grades: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grade",
			Help:      "Distribution of accepted grades.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		mean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_grade",
			Help:      "Arithmetic mean of the session grades.",
		}),
		passingRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "passing_ratio",
			Help:      "Fraction of subjects at or above the pass mark.",
		}),
	}
	s.registry.MustRegister(s.entries, s.rejections, s.grades, s.mean, s.passingRatio)
	return s
}

// ObserveEntry records an accepted entry.
func (s *Session) ObserveEntry(e grades.Entry) {
	if s == nil {
		return
	}
	s.entries.Inc()
	s.grades.Observe(e.Grade)
}

// ObserveRejection records a rejected input line.
func (s *Session) ObserveRejection(field, reason string) {
	if s == nil {
		return
	}
	s.rejections.WithLabelValues(field, reason).Inc()
}

// ObserveSummary records the final statistics.
func (s *Session) ObserveSummary(sum grades.Summary) {
	if s == nil {
		return
	}
	s.mean.Set(sum.Mean)
	s.passingRatio.Set(sum.PassingRatio())
}

// WriteText writes every metric family in the Prometheus text format.
func (s *Session) WriteText(w io.Writer) error {
	if s == nil {
		return nil
	}
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
