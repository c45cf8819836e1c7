package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_APIRequestsTotal(t *testing.T) {
	before := getCounterVecValue(APIRequestsTotal, "search_shows", "200")
	APIRequestsTotal.WithLabelValues("search_shows", "200").Inc()
	after := getCounterVecValue(APIRequestsTotal, "search_shows", "200")

	if after != before+1 {
		t.Errorf("Expected search counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_FlowsTotal(t *testing.T) {
	before := getCounterVecValue(FlowsTotal, "episodes", "error")
	FlowsTotal.WithLabelValues("episodes", "error").Inc()
	after := getCounterVecValue(FlowsTotal, "episodes", "error")

	if after != before+1 {
		t.Errorf("Expected flow counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9191)

	if srv.Addr != "localhost:9191" {
		t.Errorf("Expected address 'localhost:9191', got '%s'", srv.Addr)
	}

	APIRequestDuration.WithLabelValues("list_episodes").Observe(0.1)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "showfinder_api_request_duration_seconds") {
		t.Error("Expected API latency histogram in scrape output")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}
