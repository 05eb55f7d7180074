package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// TraceLevel is the verbosity at which span timings are printed.
const TraceLevel = 2

// NewTracer returns the tracer for an invocation at the given verbosity and a
// function that flushes and shuts it down. Below TraceLevel spans are not
// recorded.
func NewTracer(logger ports.Logger, verbose int) (ports.Tracer, func(context.Context) error) {
	if verbose < TraceLevel {
		return NewNoOpTracer(), func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLogProcessor(logger)),
	)
	return NewOTelTracer(tp), tp.Shutdown
}
