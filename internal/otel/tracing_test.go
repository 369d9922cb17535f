package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"

	"spotapi/internal/logging"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	var buf bytes.Buffer

	shutdown, err := Init(context.Background(), logging.New(&buf, time.UTC))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	var buf bytes.Buffer

	shutdown, err := Init(context.Background(), logging.New(&buf, time.UTC))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "unsupported OTLP protocol: carrier-pigeon")
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_TRACES_SAMPLER", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	s := loadSettings()
	assert.False(t, s.disabled)
	assert.Equal(t, "spotapi", s.serviceName)
	assert.Equal(t, "grpc", s.protocol)
	assert.Equal(t, "collector:4317", s.endpoint)
	assert.Equal(t, "parentbased_always_on", s.sampler)

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "traces:4318")
	assert.Equal(t, "traces:4318", loadSettings().endpoint)
}

func TestParseSampler(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want trace.Sampler
	}{
		{name: "always_on", want: trace.AlwaysSample()},
		{name: "always_off", want: trace.NeverSample()},
		{name: "traceidratio", arg: "0.25", want: trace.TraceIDRatioBased(0.25)},
		{name: "traceidratio", arg: "7", want: trace.TraceIDRatioBased(1)},
		{name: "parentbased_traceidratio", arg: "junk", want: trace.ParentBased(trace.TraceIDRatioBased(1))},
		{name: "parentbased_always_off", want: trace.ParentBased(trace.NeverSample())},
		{name: "bogus", want: trace.ParentBased(trace.AlwaysSample())},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want.Description(), parseSampler(tt.name, tt.arg).Description())
		})
	}
}
