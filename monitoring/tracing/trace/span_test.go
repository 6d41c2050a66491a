package trace_test

import (
	"context"
	"errors"
	"testing"

	"github.com/YoutacRandS-VA/teku/monitoring/tracing/trace"
	"github.com/stretchr/testify/assert"
)

func TestStartSpan(t *testing.T) {
	ctx, span := trace.StartSpan(context.Background(), "test.span")
	defer span.End()
	assert.Equal(t, span, trace.FromContext(ctx))

	span.SetAttributes(
		trace.Int64Attribute("slot", 12),
		trace.StringAttribute("flow", "local"),
		trace.BoolAttribute("blobs", true),
	)
	assert.NotPanics(t, func() {
		trace.RecordError(span, nil)
		trace.RecordError(span, errors.New("boom"))
	})
}

func TestNewContext(t *testing.T) {
	_, span := trace.StartSpan(context.Background(), "test.parent")
	defer span.End()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	moved := trace.NewContext(ctx, span)
	assert.Equal(t, span, trace.FromContext(moved))
	assert.ErrorIs(t, moved.Err(), context.Canceled)
}

func TestAttributes(t *testing.T) {
	assert.Equal(t, int64(7), trace.Int64Attribute("k", 7).Value.AsInt64())
	assert.Equal(t, "v", trace.StringAttribute("k", "v").Value.AsString())
	assert.True(t, trace.BoolAttribute("k", true).Value.AsBool())
}
