package session

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notive/internal/domain/session"
)

type Handler struct {
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		session:    session,
		log:        log.With(slog.String("component", "session_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	token, err := h.session.Create(ctx, input.Body.Username)
	if err != nil {
		if errors.Is(err, session.ErrInvalidName) {
			return nil, huma.Error400BadRequest("Invalid username")
		}
		h.log.Error("create session", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	h.log.Info("session issued", slog.String("owner", input.Body.Username))

	return &createOutput{Body: createResponse{Token: token}}, nil
}
