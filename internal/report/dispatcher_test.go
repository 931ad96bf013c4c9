package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu       sync.Mutex
	messages []Message
	err      error
	block    chan struct{}
	panicMsg string
}

func (r *recordingReporter) Report(ctx context.Context, msg Message) error {
	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)

	return r.err
}

func (r *recordingReporter) Close() error { return nil }

func (r *recordingReporter) sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func TestDispatcherDelivers(t *testing.T) {
	rec := &recordingReporter{}
	d := NewDispatcher(rec, time.Second)

	d.Submit("Wind", "120.56")
	d.Submit("Temperature", "21.50")
	require.True(t, d.Wait(time.Second))

	assert.ElementsMatch(t, []Message{
		{Key: "Wind", Value: "120.56"},
		{Key: "Temperature", Value: "21.50"},
	}, rec.sent())
}

func TestDispatcherSwallowsErrors(t *testing.T) {
	rec := &recordingReporter{err: assert.AnError}
	d := NewDispatcher(rec, time.Second)

	assert.NotPanics(t, func() {
		d.Submit("Wind", "1.00")
		require.True(t, d.Wait(time.Second))
	})
	assert.Len(t, rec.sent(), 1)
}

func TestDispatcherRecoversPanics(t *testing.T) {
	d := NewDispatcher(&recordingReporter{panicMsg: "boom"}, time.Second)

	d.Submit("Wind", "1.00")
	assert.True(t, d.Wait(time.Second))
}

func TestDispatcherSubmitDoesNotBlock(t *testing.T) {
	rec := &recordingReporter{block: make(chan struct{})}
	d := NewDispatcher(rec, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		d.Submit("Wind", FormatValue(float64(i)))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	assert.False(t, d.Wait(20*time.Millisecond), "reports are still blocked")

	close(rec.block)
	require.True(t, d.Wait(time.Second))
	assert.Len(t, rec.sent(), 5)
}

func TestDispatcherAppliesTimeout(t *testing.T) {
	rec := &recordingReporter{block: make(chan struct{})}
	d := NewDispatcher(rec, 10*time.Millisecond)

	d.Submit("Wind", "1.00")
	require.True(t, d.Wait(time.Second))
	assert.Empty(t, rec.sent())
}
