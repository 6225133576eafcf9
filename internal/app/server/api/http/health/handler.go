package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	StatusOK       = "OK"
	StatusDegraded = "DEGRADED"

	pingTimeout = 2 * time.Second
)

// Pinger reports whether the entry storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	storage    Pinger
	driver     string
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler creates the health handler. storage may be nil, then only
// the process itself is reported.
func NewHandler(storage Pinger, driver string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		storage:    storage,
		driver:     driver,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	out := &Output{
		Body: Response{
			Status:  StatusOK,
			Storage: h.driver,
		},
	}

	if h.storage == nil {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		h.log.Warn("storage ping failed", slog.String("driver", h.driver), slog.String("error", err.Error()))
		out.Body.Status = StatusDegraded
		out.Body.Error = "storage unavailable"
	}

	return out, nil
}
