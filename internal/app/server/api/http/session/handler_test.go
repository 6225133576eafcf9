package session

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notive/internal/domain/session"
)

func TestHandler_Create(t *testing.T) {
	services := map[string]session.Servicer{
		"legacy": session.NewLegacyService(slog.Default()),
		"jwt":    session.NewJWTService([]byte("secret"), time.Hour, slog.Default()),
	}

	for name, svc := range services {
		t.Run(name, func(t *testing.T) {
			_, api := humatest.New(t)
			NewHandler(svc, slog.Default(), nil).SetupRoutes(api)

			resp := api.Post("/api/session", map[string]any{"username": "alice"})
			require.Equal(t, http.StatusOK, resp.Code)

			var body createResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.NotEmpty(t, body.Token)

			owner, err := svc.Validate(context.Background(), body.Token)
			require.NoError(t, err)
			assert.Equal(t, "alice", owner)
		})
	}
}

func TestHandler_CreateInvalid(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(session.NewLegacyService(slog.Default()), slog.Default(), nil).SetupRoutes(api)

	resp := api.Post("/api/session", map[string]any{"username": "../etc"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = api.Post("/api/session", map[string]any{"username": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
