package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SubmissionMetrics counts lead submissions by outcome
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	writeLatency     *prometheus.HistogramVec
	followupsTotal   *prometheus.CounterVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentaid",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead form submissions by variant and outcome",
		}, []string{"variant", "outcome"}),
		writeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rentaid",
			Subsystem: "leads",
			Name:      "write_duration_seconds",
			Help:      "Time spent probing and writing to the datastore",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		followupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentaid",
			Subsystem: "leads",
			Name:      "followups_total",
			Help:      "Follow-up events published after a submission",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.writeLatency, m.followupsTotal)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(variant, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(variant, outcome).Inc()
}

func (m *SubmissionMetrics) ObserveWrite(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.writeLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *SubmissionMetrics) ObserveFollowup(status string) {
	if m == nil {
		return
	}
	m.followupsTotal.WithLabelValues(status).Inc()
}

// HTTPMetrics tracks request counts and latency per route
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentaid",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rentaid",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
