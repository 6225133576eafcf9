package pages

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func setup(t *testing.T) *chi.Mux {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "views"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "public", "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "views", "index.html"), []byte("<h1>notebook</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public", "css", "app.css"), []byte("body{}"), 0o644))

	mux := chi.NewMux()
	NewHandler(dir, slog.Default()).SetupRoutes(mux)
	return mux
}

func TestPages(t *testing.T) {
	mux := setup(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "index", path: "/", wantStatus: http.StatusOK, wantBody: "<h1>notebook</h1>"},
		{name: "missing view", path: "/planner", wantStatus: http.StatusNotFound},
		{name: "static asset", path: "/static/css/app.css", wantStatus: http.StatusOK, wantBody: "body{}"},
		{name: "missing asset", path: "/static/js/app.js", wantStatus: http.StatusNotFound},
		{name: "unknown route", path: "/admin", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
