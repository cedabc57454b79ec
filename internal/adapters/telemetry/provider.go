// Package telemetry wires the OpenTelemetry SDK to the session logger so
// reload cycle spans surface as verbose timing lines.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/revive/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// LogProcessor is a SpanProcessor that reports finished spans through the
// session logger.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor creates a processor logging through the given logger.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart is a no-op; only finished spans are reported.
func (p *LogProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name and duration.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.logger == nil {
		return
	}
	dur := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	p.logger.Debug(fmt.Sprintf("%s finished in %s", s.Name(), dur))
}

// Shutdown implements sdktrace.SpanProcessor.
func (p *LogProcessor) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (p *LogProcessor) ForceFlush(context.Context) error { return nil }

// Setup installs a global TracerProvider backed by the log processor and
// returns its shutdown function.
func Setup(logger ports.Logger) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLogProcessor(logger)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
