// Package pages serves the browser front-end: a fixed set of HTML views
// and the static assets next to them.
package pages

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// Views maps a route to its file under {dir}/views.
var Views = map[string]string{
	"/":          "index.html",
	"/dashboard": "dashboard.html",
	"/notes":     "notes.html",
	"/planner":   "planner.html",
	"/habits":    "habits.html",
	"/math":      "math.html",
}

type Handler struct {
	dir string
	log *slog.Logger
}

func NewHandler(dir string, log *slog.Logger) *Handler {
	return &Handler{
		dir: dir,
		log: log.With(slog.String("component", "pages")),
	}
}

func (h *Handler) SetupRoutes(r chi.Router) {
	for route, file := range Views {
		r.Get(route, h.view(file))
	}

	public := http.Dir(filepath.Join(h.dir, "public"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(public)))
}

func (h *Handler) view(file string) http.HandlerFunc {
	path := filepath.Join(h.dir, "views", file)

	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(path); err != nil {
			h.log.Debug("view not found", slog.String("file", path))
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}
