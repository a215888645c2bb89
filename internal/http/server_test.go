package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movie-catalog/internal/config"
	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// newStorelessServer builds a server without a database. Only paths that are
// rejected before reaching the store may be exercised with it.
func newStorelessServer(cfg config.Config) *Server {
	return New(cfg, nil, nil, nil, zerolog.Nop())
}

func TestEntityID_RejectsNonInteger(t *testing.T) {
	srv := newStorelessServer(config.Config{})

	for _, path := range []string{"/movies/abc", "/directors/1.5", "/genres/-x", "/movies/99999999999999999999"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(`{}`)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("%s %s status = %d, want 400", method, path, rec.Code)
			}
		}
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	srv := newStorelessServer(config.Config{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actors/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/movies/1", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH status = %d, want 405", rec.Code)
	}
}

func TestCreate_InvalidPayload(t *testing.T) {
	srv := newStorelessServer(config.Config{})

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"malformed movie", "/movies/", "invalid json", http.StatusUnprocessableEntity},
		{"empty body", "/directors/", "", http.StatusUnprocessableEntity},
		{"wrong type", "/movies/", `{"year":"twenty-ten"}`, http.StatusUnprocessableEntity},
		{"year out of range", "/movies/", `{"year":3000000000}`, http.StatusUnprocessableEntity},
		{"unknown field", "/genres/", `{"label":"Drama"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body)))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Code != "VALIDATION_ERROR" {
				t.Fatalf("unexpected error body %q: %v", rec.Body.String(), err)
			}
		})
	}
}

func TestListMovies_InvalidFilter(t *testing.T) {
	srv := newStorelessServer(config.Config{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/?director_id=nolan", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newStorelessServer(config.Config{})

	// Generate one instrumented request first.
	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies/abc", nil))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "catalog_http_requests_total{") || !strings.Contains(body, `status="400"`) {
		t.Fatalf("request counter missing:\n%s", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newStorelessServer(config.Config{CORSAllowedOrigins: []string{"https://catalog.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/movies/", nil)
	req.Header.Set("Origin", "https://catalog.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://catalog.example" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newStorelessServer(config.Config{RateLimitRequests: 1, RateLimitWindowSecs: 60})

	first := httptest.NewRecorder()
	srv.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/movies/abc", nil))
	second := httptest.NewRecorder()
	srv.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/movies/abc", nil))

	if first.Code != http.StatusBadRequest {
		t.Fatalf("first status = %d, want 400", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
}

func TestMovieMapping(t *testing.T) {
	title := "Inception"
	year := int32(2010)
	directorID := int64(1)
	id := int64(42)

	req := movieRequest{ID: &id, Title: &title, Year: &year, DirectorID: &directorID}
	movie := req.toDomain()
	if movie.ID != 0 {
		t.Fatalf("client id must not reach the domain, got %d", movie.ID)
	}
	if movie.Rating != nil || movie.GenreID != nil {
		t.Fatalf("absent attributes should stay nil: %+v", movie)
	}

	movie.ID = 7
	payload, err := json.Marshal(toMovieResponse(movie))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":7,"title":"Inception","description":null,"trailer":null,"year":2010,"rating":null,"genre_id":null,"director_id":1}`
	if string(payload) != want {
		t.Fatalf("payload = %s, want %s", payload, want)
	}
}

func TestToMovieResponses_PreservesOrderAndEmpty(t *testing.T) {
	empty, _ := json.Marshal(toMovieResponses(nil))
	if string(empty) != "[]" {
		t.Fatalf("empty list encodes as %s, want []", empty)
	}

	got := toMovieResponses([]domain.Movie{{ID: 3}, {ID: 1}, {ID: 2}})
	for i, want := range []int64{3, 1, 2} {
		if got[i].ID != want {
			t.Fatalf("item %d id = %d, want %d", i, got[i].ID, want)
		}
	}
}
