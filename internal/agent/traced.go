package agent

import (
	"context"
	"log/slog"

	"flightdesk/internal/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type tracedTool struct {
	Tool
}

func withTrace(t Tool) Tool {
	return &tracedTool{Tool: t}
}

func (t *tracedTool) Execute(ctx context.Context, input string) (string, error) {
	attrs := []attribute.KeyValue{
		attribute.String("gen_ai.tool.name", t.Name()),
		attribute.String("gen_ai.tool.input", input),
	}
	if id := SessionIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("session.id", id))
	}
	ctx, span := trace.Tracer().Start(ctx, t.Name(), oteltrace.WithAttributes(attrs...))
	defer span.End()

	sc := span.SpanContext()
	slog.Debug("tool span started", "tool", t.Name(), "trace_id", sc.TraceID(), "span_id", sc.SpanID())

	result, err := t.Tool.Execute(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	span.SetAttributes(attribute.Int("gen_ai.tool.output_length", len(result)))
	return result, nil
}
