package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// LogProcessor implements sdktrace.SpanProcessor by printing a timing line for
// every finished span.
type LogProcessor struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// NewLogProcessor returns a LogProcessor printing through logger.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart does nothing.
func (p *LogProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd prints the span name, subject and duration.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	subject := ""
	for _, attr := range s.Attributes() {
		switch attr.Key {
		case "kiln.command", "kiln.path", "kiln.root":
			subject = " " + attr.Value.Emit()
		}
	}

	status := ""
	if s.Status().Code == codes.Error {
		status = " (failed)"
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf("[trace] %s%s took %s%s", s.Name(), subject, elapsed, status))
}

// Shutdown does nothing.
func (p *LogProcessor) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush does nothing.
func (p *LogProcessor) ForceFlush(_ context.Context) error {
	return nil
}
