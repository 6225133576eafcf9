package session

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"notive/internal/app/server/config"
	"notive/internal/domain/entry"
)

// Servicer выдает токены и извлекает из них идентичность владельца записей.
type Servicer interface {
	Create(ctx context.Context, identity string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
}

// NewService returns the token service for the configured auth mode,
// or nil when sessions are disabled.
func NewService(cfg config.Auth, log *slog.Logger) (Servicer, error) {
	switch cfg.Mode {
	case config.AuthNone:
		return nil, nil
	case config.AuthLegacy:
		return NewLegacyService(log), nil
	case config.AuthJWT:
		return NewJWTService([]byte(cfg.Secret), cfg.SessionTTL, log), nil
	}
	return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
}

func checkIdentity(identity string) error {
	if err := entry.ValidateOwner(identity); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidName, identity)
	}
	return nil
}

type clock func() time.Time
