package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAction(t *testing.T) {
	m := New()

	m.ObserveAction("notify", "ok")
	m.ObserveAction("notify", "ok")
	m.ObserveAction("notify", "denied")

	if got := testutil.ToFloat64(m.actions.WithLabelValues("notify", "ok")); got != 2 {
		t.Errorf("Expected 2 ok notifications, got %v", got)
	}
	if got := testutil.ToFloat64(m.actions.WithLabelValues("notify", "denied")); got != 1 {
		t.Errorf("Expected 1 denied notification, got %v", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/api/denuncias/:id", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/denuncias/:id", "200")); got != 1 {
		t.Errorf("Expected 1 request, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("Expected unmatched route label, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSeverity("critical")

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `aduanas_deadline_classifications_total{severity="critical"} 1`) {
		t.Error("Expected severity counter in metrics output")
	}
}
