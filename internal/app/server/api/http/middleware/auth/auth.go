package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notive/internal/domain/entry"
	"notive/internal/domain/session"
)

const (
	MsgNoToken      = "Unauthorized. No session token provided."
	MsgInvalidToken = "Invalid session token."

	bearerPrefix = "Bearer "
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

// New builds the middleware. A nil session service disables credentials:
// every request is served as the anonymous owner.
func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const OwnerKey contextKey = "owner"

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if a.session == nil {
			next(huma.WithContext(ctx, WithOwner(ctx.Context(), entry.AnonymousOwner)))
			return
		}

		token := strings.TrimSpace(ctx.Header("Authorization"))
		token = strings.TrimSpace(strings.TrimPrefix(token, bearerPrefix))

		owner, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			msg := MsgInvalidToken
			if errors.Is(err, session.ErrNoToken) {
				msg = MsgNoToken
			}
			a.log.Warn("request rejected",
				slog.String("path", ctx.URL().Path),
				slog.String("error", err.Error()),
			)
			a.unauthorized(ctx, msg)
			return
		}

		next(huma.WithContext(ctx, WithOwner(ctx.Context(), owner)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context, msg string) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": msg,
	})
	if err != nil {
		a.log.Error("json encode", slog.String("error", err.Error()))
	}
}

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, OwnerKey, owner)
}

func GetOwner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerKey).(string)
	return owner, ok && owner != ""
}
