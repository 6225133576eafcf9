package session

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// LegacyService understands the browser login token base64("identity:timestamp").
// The token is not signed and never expires: it only names a storage partition.
type LegacyService struct {
	log *slog.Logger
	now clock
}

func NewLegacyService(log *slog.Logger) *LegacyService {
	return &LegacyService{
		log: log.With("component", "legacy_session"),
		now: time.Now,
	}
}

func (s *LegacyService) Create(_ context.Context, identity string) (string, error) {
	if err := checkIdentity(identity); err != nil {
		return "", err
	}

	raw := identity + ":" + s.now().UTC().Format(time.RFC3339Nano)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

func (s *LegacyService) Validate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}

	raw, err := decodeBase64(token)
	if err != nil {
		s.log.Debug("token is not base64", "error", err)
		return "", ErrInvalidToken
	}

	identity, _, ok := strings.Cut(string(raw), ":")
	if !ok || checkIdentity(identity) != nil {
		return "", ErrInvalidToken
	}

	return identity, nil
}

// decodeBase64 принимает и стандартный алфавит (btoa), и URL-safe вариант.
func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
