package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/wardrobe/pkg/config"
	"github.com/ghuser/wardrobe/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	require.NoError(t, err, "eventual success")
	assert.Equal(t, 3, calls)
}

// TestRetryWithBackoff_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	require.Error(t, err, "retries exhausted")
	assert.Equal(t, maxRetries, calls)
}

// TestRetryWithBackoff_ContextCancelled verifies retry stops when context is canceled.
func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
	require.Error(t, err)
	assert.Equal(t, 1, calls, "one attempt, then ctx.Done")
}

// TestStartForwarder_NonForwarderMode verifies StartForwarder returns an error
// when called on an EventBus not configured with forwarder mode.
func TestStartForwarder_NonForwarderMode(t *testing.T) {
	bus := &EventBus{useForwarder: false}
	assert.Error(t, bus.StartForwarder(context.Background()))
}

// TestNew_SelectsTransport verifies the driver switch.
func TestNew_SelectsTransport(t *testing.T) {
	bus, err := New(&config.Config{EventsDriver: config.EventsMemory}, nopLogger(), false)
	require.NoError(t, err)
	assert.Nil(t, bus.db, "memory bus holds no database handle")
	_ = bus.Close()

	_, err = New(&config.Config{EventsDriver: "kafka"}, nopLogger(), false)
	assert.Error(t, err, "unknown driver")
}

// TestMemoryEventBus_PublishSubscribe verifies a JSON message reaches a subscriber.
func TestMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan string, 1)
	errCh, err := bus.Subscribe(ctx, "wardrobe.test", func(_ context.Context, msg *message.Message) error {
		got <- string(msg.Payload) + "|" + msg.Metadata.Get("kind")
		return nil
	})
	require.NoError(t, err)
	go func() {
		for range errCh { //nolint:revive
		}
	}()

	require.NoError(t, bus.PublishJSON(ctx, "wardrobe.test", map[string]int{"n": 1}, map[string]string{"kind": "item.added"}))

	select {
	case v := <-got:
		assert.Equal(t, `{"n":1}|item.added`, v)
	case <-ctx.Done():
		t.Fatal("message was not delivered")
	}
}

// TestMemoryEventBus_HandlerFailureReported verifies exhausted retries surface on the error channel.
func TestMemoryEventBus_HandlerFailureReported(t *testing.T) {
	bus := NewMemoryEventBus(nopLogger())
	bus.retryDelay = time.Millisecond
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh, err := bus.Subscribe(ctx, "wardrobe.fail", func(context.Context, *message.Message) error {
		return errors.New("boom")
	})
	require.NoError(t, err)
	require.NoError(t, bus.PublishJSON(ctx, "wardrobe.fail", "x", nil))

	select {
	case err := <-errCh:
		assert.Error(t, err, "handler error")
	case <-ctx.Done():
		t.Fatal("no error reported")
	}
}

// TestMemoryEventBus_Ping verifies the in-process transport always reports healthy.
func TestMemoryEventBus_Ping(t *testing.T) {
	bus := NewMemoryEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck
	assert.NoError(t, bus.Ping(context.Background()))
}

// TestOTelPropagation_InjectExtract verifies that trace context injected via
// the same propagation path used by Publish/Subscribe round-trips correctly.
func TestOTelPropagation_InjectExtract(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	// Simulate Publish: inject trace context into message metadata.
	msg := message.NewMessage("id", nil)
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	// Simulate Subscribe: extract trace context from message metadata.
	extractCarrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		extractCarrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), extractCarrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	require.True(t, gotSpan.SpanContext().IsValid(), "extracted span context")
	assert.Equal(t, wantTraceID, gotSpan.SpanContext().TraceID())
}
