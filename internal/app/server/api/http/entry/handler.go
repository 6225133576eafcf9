package entry

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notive/internal/app/server/api/http/middleware/auth"
	"notive/internal/domain/entry"
)

const msgSaved = "Entry saved successfully"

type Handler struct {
	service    entry.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	security   []map[string][]string
}

// NewHandler wires the entry operations. With secured set the operations
// are documented as requiring a bearer token.
func NewHandler(service entry.Servicer, secured bool, log *slog.Logger, mws huma.Middlewares) *Handler {
	h := &Handler{
		service:    service,
		log:        log.With(slog.String("component", "entry_handler")),
		middleware: mws,
	}
	if secured {
		h.security = []map[string][]string{{"bearer": {}}}
	}
	return h
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.readOp(), h.read)
	huma.Register(api, h.writeOp(), h.write)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) read(ctx context.Context, input *dateKeyInput) (*readOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	e, err := h.service.Read(ctx, owner, input.DateKey)
	if err != nil {
		return nil, h.apiError(err)
	}

	out := &readOutput{Body: readResponse{Content: e.Content}}
	if !e.LastModified.IsZero() {
		lm := e.LastModified
		out.Body.LastModified = &lm
	}

	return out, nil
}

func (h *Handler) write(ctx context.Context, input *writeInput) (*writeOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if _, err := h.service.Write(ctx, owner, input.DateKey, input.Body.Content); err != nil {
		return nil, h.apiError(err)
	}

	return &writeOutput{
		Body: writeResponse{
			Success: true,
			Message: msgSaved,
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	owner, ok := auth.GetOwner(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	keys, err := h.service.List(ctx, owner)
	if err != nil {
		return nil, h.apiError(err)
	}

	return &listOutput{Body: listResponse{Entries: keys}}, nil
}

// apiError переводит доменные ошибки в HTTP-статусы. Подробности
// хранилища наружу не отдаются.
func (h *Handler) apiError(err error) error {
	switch {
	case errors.Is(err, entry.ErrMissingContent):
		return huma.Error400BadRequest("Content is required")
	case errors.Is(err, entry.ErrInvalidDateKey):
		return huma.Error400BadRequest("Invalid date key")
	case errors.Is(err, entry.ErrInvalidOwner):
		return huma.Error400BadRequest("Invalid owner")
	default:
		h.log.Error("entry operation failed", slog.String("error", err.Error()))
		return huma.Error500InternalServerError("Internal server error")
	}
}
