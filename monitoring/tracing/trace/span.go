// Package trace wraps the opentelemetry tracer used across the client.
package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/YoutacRandS-VA/teku"

// StartSpan starts a span named name as a child of any span in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// FromContext returns the span in ctx, or a no-op span.
func FromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// NewContext returns parent carrying span.
func NewContext(parent context.Context, span trace.Span) context.Context {
	return trace.ContextWithSpan(parent, span)
}

// Int64Attribute returns an int64 span attribute.
func Int64Attribute(key string, value int64) attribute.KeyValue {
	return attribute.Int64(key, value)
}

// StringAttribute returns a string span attribute.
func StringAttribute(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// BoolAttribute returns a bool span attribute.
func BoolAttribute(key string, value bool) attribute.KeyValue {
	return attribute.Bool(key, value)
}

// RecordError marks span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
