package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("POST", "/api/v1/enrollments", 201, 20*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/enrollments", 201, 30*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/enrollments/me", 404, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/enrollments", "2xx")); got != 2 {
		t.Fatalf("expected 2 created requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/enrollments/me", "4xx")); got != 1 {
		t.Fatalf("expected 1 not-found request, got %v", got)
	}
}

func TestNilReceiverIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
	m.IncInFlight()
	m.DecInFlight()

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "", 500, time.Millisecond)
}

func TestStatusLabel(t *testing.T) {
	cases := map[int]string{200: "2xx", 201: "2xx", 302: "3xx", 404: "4xx", 429: "4xx", 500: "5xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusLabel(status); got != want {
			t.Fatalf("status %d: expected %s got %s", status, want, got)
		}
	}
}
