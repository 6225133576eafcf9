package server

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notive/internal/app/server/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestApp_RunAndShutdown(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.Server{
			RunAddress:      freeAddr(t),
			StaticDir:       dir,
			ShutdownTimeout: time.Second,
		},
		Storage: config.Storage{Driver: config.DriverFS, EntriesDir: filepath.Join(dir, "entries")},
		Auth:    config.Auth{Mode: config.AuthNone},
	}

	ctx, cancel := context.WithCancel(context.Background())
	app, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := "http://" + cfg.Server.RunAddress + "/api/v1/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewApp_BadStorage(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "mongo"}}

	_, err := NewApp(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}
