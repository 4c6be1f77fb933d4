package notify

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/specvital/spectree/pkg/domain"
)

const MetricsNamespace = "spectree"

// ErrNilRegisterer is returned by NewMetrics without a registerer.
var ErrNilRegisterer = errors.New("notify: nil metrics registerer")

// Metrics holds the spectree collectors of one registerer. Notifiers for
// individual specs are obtained with For.
type Metrics struct {
	testsTotal        *prometheus.CounterVec
	ignoredTotal      *prometheus.CounterVec
	hookFailuresTotal *prometheus.CounterVec
	testDuration      *prometheus.HistogramVec
}

// NewMetrics registers the spectree collectors on reg. Like promauto, it panics
// when reg already holds them.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		testsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "tests_total",
			Help:      "Count of executed tests by result",
		}, []string{
			"spec",
			"result",
		}),
		ignoredTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "tests_ignored_total",
			Help:      "Count of tests that did not execute",
		}, []string{
			"spec",
		}),
		hookFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "hook_failures_total",
			Help:      "Count of failing hooks by kind",
		}, []string{
			"spec",
			"kind",
		}),
		testDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "test_duration_seconds",
			Help:      "Duration of executed tests including their hooks",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{
			"spec",
		}),
	}, nil
}

// For returns a notifier counting the events of the spec registered as name.
func (m *Metrics) For(name string) Notifier {
	return &specMetrics{m: m, spec: name}
}

type specMetrics struct {
	m    *Metrics
	spec string
}

func (s *specMetrics) TestIgnored(domain.TestID, error) {
	s.m.ignoredTotal.WithLabelValues(s.spec).Inc()
}

func (s *specMetrics) TestStarted(domain.TestID) {}

func (s *specMetrics) TestFailed(domain.TestID, error) {}

func (s *specMetrics) TestFinished(_ domain.TestID, outcome domain.Outcome) {
	s.m.testsTotal.WithLabelValues(s.spec, outcome.Result.String()).Inc()
	s.m.testDuration.WithLabelValues(s.spec).Observe(outcome.Duration.Seconds())
}

func (s *specMetrics) HookFailed(_ domain.TestID, err *domain.HookError) {
	s.m.hookFailuresTotal.WithLabelValues(s.spec, string(err.Kind)).Inc()
}

func (s *specMetrics) GroupFailed(_ []string, err *domain.HookError) {
	s.m.hookFailuresTotal.WithLabelValues(s.spec, string(err.Kind)).Inc()
}
