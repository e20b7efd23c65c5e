package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSubmissionMetrics(reg)

	m.ObserveSubmission("tenant", "ok")
	m.ObserveSubmission("tenant", "ok")
	m.ObserveSubmission("landlord", "duplicate_phone")
	m.ObserveWrite("ok", 20*time.Millisecond)
	m.ObserveFollowup("published")

	expected := `
# HELP rentaid_leads_submissions_total Lead form submissions by variant and outcome
# TYPE rentaid_leads_submissions_total counter
rentaid_leads_submissions_total{outcome="duplicate_phone",variant="landlord"} 1
rentaid_leads_submissions_total{outcome="ok",variant="tenant"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rentaid_leads_submissions_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "rentaid_leads_write_duration_seconds"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "rentaid_leads_followups_total"))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *SubmissionMetrics
	var h *HTTPMetrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission("tenant", "ok")
		m.ObserveWrite("ok", time.Second)
		m.ObserveFollowup("failed")
		h.ObserveRequest("GET", "/health", "200", time.Millisecond)
	})
}
