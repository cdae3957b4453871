package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
)

func TestRoutes(t *testing.T) {
	s := New(&Config{Metrics: true})

	// nested router, the same way modules route their own paths
	module := chi.NewRouter()
	module.Get("/media/{sceneId}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("scene " + chi.URLParam(r, "sceneId")))
	})
	s.Handle("/media/", module)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/ping", http.StatusOK, "pong"},
		{"/media/sc1", http.StatusOK, "scene sc1"},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/unknown", http.StatusOK, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			body, _ := io.ReadAll(w.Body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body = %q, want it to contain %q", body, tt.contains)
			}
		})
	}
}

func TestMetricsDisabled(t *testing.T) {
	s := New(&Config{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("metrics must not be served when disabled")
	}
}
