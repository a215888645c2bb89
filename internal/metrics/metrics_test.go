package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequest(t *testing.T) {
	m := New()
	m.RecordRequest("GET", "/movies/", "200", 20*time.Millisecond)
	m.RecordRequest("GET", "/movies/", "200", 10*time.Millisecond)

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/movies/", "200"))
	if got != 2 {
		t.Fatalf("requests counter = %v, want 2", got)
	}
}

func TestRecordDBOperation(t *testing.T) {
	m := New()
	m.RecordDBOperation("director", "get", "not_found")

	got := testutil.ToFloat64(m.dbOperations.WithLabelValues("director", "get", "not_found"))
	if got != 1 {
		t.Fatalf("db operations counter = %v, want 1", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.TrackActive(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "catalog_http_active_requests 1") {
		t.Fatalf("active gauge missing from exposition")
	}
}

func TestNewIsolatedRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	_ = New()
	_ = New()
}
