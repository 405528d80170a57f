// Package metrics counts effortlog use cases, notifications and logged hours.
//
// The CLI is short-lived, so nothing is scraped; the registry is written to a
// node-exporter textfile when the process exits.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/alexanderramin/effortlog/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrNoTextfile is returned by WriteTextfile when no path was given.
var ErrNoTextfile = errors.New("metrics textfile path is empty")

// Manager owns the effortlog collectors and the registry they live on.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  *prometheus.Registry

	useCases        *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	hoursSubmitted  *prometheus.CounterVec
	weeklyTotal     *prometheus.GaugeVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets custom buckets for the duration histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry registers the collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "effortlog",
		subsystem: "cli",
		buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.useCases = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "use_cases_total",
		Help:      "Service use cases executed, by name and outcome",
	}, []string{"use_case", "success"})

	m.useCaseDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "use_case_duration_seconds",
		Help:      "Service use case latency in seconds",
		Buckets:   m.buckets,
	}, []string{"use_case"})

	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_total",
		Help:      "Notifications dispatched after commit, by kind",
	}, []string{"kind"})

	m.hoursSubmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hours_submitted_total",
		Help:      "Effort hours accepted through single-record submission, by role",
	}, []string{"role"})

	m.weeklyTotal = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weekly_total_hours",
		Help:      "Last weekly total sent in a summary notification",
	}, []string{"cohort", "week_start"})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Manager) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	m.useCases.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Inc()
	m.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

// EffortSubmitted implements notify.Notifier.
func (m *Manager) EffortSubmitted(_ context.Context, _ *domain.Cohort, record *domain.EffortRecord) {
	m.notifications.WithLabelValues("effort_submitted").Inc()
	m.hoursSubmitted.WithLabelValues(string(record.Role)).Add(record.Hours.Float64())
}

// WeeklySummaryUpdated implements notify.Notifier.
func (m *Manager) WeeklySummaryUpdated(_ context.Context, cohort *domain.Cohort, summary *domain.WeeklySummary) {
	m.notifications.WithLabelValues("weekly_summary_updated").Inc()
	label := summary.CohortID
	if cohort != nil && cohort.Code != "" {
		label = cohort.Code
	}
	m.weeklyTotal.WithLabelValues(label, summary.WeekStart.Format(domain.DateLayout)).Set(summary.TotalHours.Float64())
}

// WriteTextfile writes every collected metric to path in the text exposition
// format. The file is replaced atomically.
func (m *Manager) WriteTextfile(path string) error {
	if path == "" {
		return ErrNoTextfile
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
