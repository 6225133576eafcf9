package preview

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Renderer converts markdown into display HTML and never fails.
type Renderer interface {
	Render(src string) string
}

type Handler struct {
	renderer   Renderer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(renderer Renderer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		renderer:   renderer,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.renderOp(), h.render)
}

func (h *Handler) render(_ context.Context, input *renderInput) (*renderOutput, error) {
	return &renderOutput{
		Body: renderResponse{HTML: h.renderer.Render(input.Body.Content)},
	}, nil
}
