package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/revive/internal/adapters/telemetry"
)

type recordingLogger struct {
	debug []string
}

func (l *recordingLogger) Debug(msg string) { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Info(string)      {}
func (l *recordingLogger) Warn(string)      {}
func (l *recordingLogger) Error(error)      {}
func (l *recordingLogger) SetVerbose(bool)  {}

func TestLogProcessor_ReportsFinishedSpans(t *testing.T) {
	log := &recordingLogger{}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(log)),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "reload.cycle")
	span.End()

	require.Len(t, log.debug, 1)
	assert.Contains(t, log.debug[0], "reload.cycle finished in")
}

func TestLogProcessor_NilLogger(t *testing.T) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(nil)),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "reload.cycle")
	span.End()
}

func TestSetup_ReturnsWorkingShutdown(t *testing.T) {
	shutdown := telemetry.Setup(&recordingLogger{})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
