package slogpretty

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestPrettyHandler_Handle(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("component", "test"))

	log.Info("entry saved", slog.String("date_key", "2024-01-01"))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "entry saved")
	assert.Contains(t, out, `"date_key": "2024-01-01"`)
	assert.Contains(t, out, `"component": "test"`)
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.Debug("plain")

	assert.Contains(t, buf.String(), "DEBUG:")
	assert.NotContains(t, buf.String(), "{")
}
