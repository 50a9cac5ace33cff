package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNew_RecordsAndShutsDown(t *testing.T) {
	o, err := New("intake-test")
	require.NoError(t, err)
	require.NotNil(t, o.submissionCounter)

	ctx, span := o.StartSpan(context.Background(), "intake.submit", attribute.String("requestId", "r1"))
	assert.True(t, span.SpanContext().IsValid(), "sdk tracer assigns trace ids")
	o.RecordSubmission(ctx, "submitted", 120*time.Millisecond)
	span.End()

	assert.NotPanics(t, o.Shutdown)
}

func TestNoop_IsSafe(t *testing.T) {
	o := Noop()

	ctx, span := o.StartSpan(context.Background(), "places.lookup")
	assert.NotNil(t, ctx)
	span.End()

	assert.NotPanics(t, func() {
		o.RecordSubmission(context.Background(), "failed", time.Second)
		o.Shutdown()
	})

	var zero Observability
	_, span = zero.StartSpan(context.Background(), "zero")
	span.End()
}
