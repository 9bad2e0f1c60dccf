package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDefaultLogger(t *testing.T) {
	Set(nil)
	require.NotNil(t, Get())
}

func TestSetRoutesOutput(t *testing.T) {
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { Set(nil) })

	WithComponent("multilock").Debug("acquisition retrying", "rounds", 7)

	out := buf.String()
	require.True(t, strings.Contains(out, "component=multilock"), "got: %s", out)
	require.True(t, strings.Contains(out, "rounds=7"), "got: %s", out)
}
