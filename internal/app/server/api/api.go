// GET  /api/entry/{dateKey}  # Запись за дату (auth, если включен)
// POST /api/entry/{dateKey}  # Сохранить запись (auth, если включен)
// GET  /api/entries          # Даты с записями (auth, если включен)
// POST /api/session          # Выдать токен (только legacy и jwt)
// POST /api/preview          # Markdown -> HTML
// GET  /api/v1/health        # Проверка живости
// GET  /, /dashboard, ...    # Страницы фронтенда и /static/*

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	"notive/internal/app/server/api/http/entry"
	"notive/internal/app/server/api/http/health"
	"notive/internal/app/server/api/http/middleware"
	"notive/internal/app/server/api/http/middleware/auth"
	"notive/internal/app/server/api/http/middleware/logger"
	"notive/internal/app/server/api/http/pages"
	"notive/internal/app/server/api/http/preview"
	sessionAPI "notive/internal/app/server/api/http/session"
	"notive/internal/app/server/config"
	entryDomain "notive/internal/domain/entry"
	"notive/internal/domain/session"
	"notive/internal/render"
)

// Storage - хранилище записей, которое умеет отвечать на health check.
type Storage interface {
	entryDomain.Repository
	health.Pinger
}

type Handlers struct {
	Health  *health.Handler
	Entry   *entry.Handler
	Session *sessionAPI.Handler
	Preview *preview.Handler
	Pages   *pages.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(cfg *config.Config, storage Storage, log *slog.Logger) (*chi.Mux, error) {
	mux := chi.NewMux()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Notive API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h, err := handlers(cfg, storage, log)
	if err != nil {
		return nil, err
	}

	h.Health.SetupRoutes(API)
	h.Entry.SetupRoutes(API)
	h.Preview.SetupRoutes(API)
	if h.Session != nil {
		h.Session.SetupRoutes(API)
	}
	h.Pages.SetupRoutes(mux)

	return mux, nil
}

func handlers(cfg *config.Config, storage Storage, log *slog.Logger) (*Handlers, error) {
	sessionService, err := session.NewService(cfg.Auth, log)
	if err != nil {
		return nil, err
	}

	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := health.NewHandler(storage, cfg.Storage.Driver, log, middlewares.GetAllAndClear())

	entryService := entryDomain.NewService(storage, cfg.Entry.ValidateDateKeys, log)
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	entryHandler := entry.NewHandler(entryService, sessionService != nil, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	previewHandler := preview.NewHandler(render.NewHTMLRenderer(), log, middlewares.GetAllAndClear())

	var sessionHandler *sessionAPI.Handler
	if sessionService != nil {
		middlewares.Add(loggerMW.Middleware())
		sessionHandler = sessionAPI.NewHandler(sessionService, log, middlewares.GetAllAndClear())
	}

	return &Handlers{
		Health:  healthHandler,
		Entry:   entryHandler,
		Session: sessionHandler,
		Preview: previewHandler,
		Pages:   pages.NewHandler(cfg.Server.StaticDir, log),
	}, nil
}
