package telemetry_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/wavealign/internal/telemetry"
)

// TestSetup exports one span and one counter. otel globals delegate once
// per process, so both signals are checked in a single test.
func TestSetup(t *testing.T) {
	var spans bytes.Buffer
	reg := prometheus.NewRegistry()

	shutdown, err := telemetry.Setup(telemetry.Options{TraceWriter: &spans, Registerer: reg, Version: "test"})
	require.NoError(t, err)

	ctx := context.Background()
	_, span := otel.Tracer("telemetry_test").Start(ctx, "unit-span")
	span.End()

	counter, err := otel.Meter("telemetry_test").Int64Counter("unit_events")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "unit_events") {
			found = true
			require.NotEmpty(t, mf.GetMetric())
			assert.Equal(t, 3.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found, "counter bridged into the registry")

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, spans.String(), "unit-span")
	assert.Contains(t, spans.String(), telemetry.ServiceName)
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := telemetry.Setup(telemetry.Options{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
