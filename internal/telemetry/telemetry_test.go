package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/config"
)

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TelemetryConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitStdoutFallback(t *testing.T) {
	cfg := config.TelemetryConfig{
		Enabled:        true,
		ServiceName:    "findly-api",
		ServiceVersion: "1.0.0",
	}

	shutdown, err := Init(context.Background(), cfg, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTracerIsUsable(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "test-span")
	assert.NotNil(t, span)
	span.End()
}
