package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AssignmentMetrics records auto-assignment outcomes.
type AssignmentMetrics struct {
	duration *prometheus.HistogramVec
	assigned *prometheus.CounterVec
	noMatch  prometheus.Counter
}

// NewAssignmentMetrics registers the assignment metrics on the provided registerer.
func NewAssignmentMetrics(reg prometheus.Registerer) *AssignmentMetrics {
	if reg == nil {
		return &AssignmentMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_duration_seconds",
		Help:    "Duration of auto-assignment runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	assigned := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_decisions_total",
		Help: "Assignments made, labelled by the cascade tier that decided.",
	}, []string{"method"})
	noMatch := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_no_candidate_total",
		Help: "Assignment runs that ended without an eligible candidate.",
	})
	reg.MustRegister(duration, assigned, noMatch)
	return &AssignmentMetrics{
		duration: duration,
		assigned: assigned,
		noMatch:  noMatch,
	}
}

// ObserveDuration records the run duration with its outcome label.
func (a *AssignmentMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAssigned increments the decision counter for the given method label.
func (a *AssignmentMetrics) IncAssigned(method string) {
	if a == nil || a.assigned == nil {
		return
	}
	a.assigned.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncNoCandidate increments the no-candidate counter.
func (a *AssignmentMetrics) IncNoCandidate() {
	if a == nil || a.noMatch == nil {
		return
	}
	a.noMatch.Inc()
}

// CronJobMetrics records metadata for scheduled jobs.
type CronJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCronJobMetrics registers the cron job metrics on the provided registerer.
func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of cron jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful cron job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed cron job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &CronJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named job.
func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
