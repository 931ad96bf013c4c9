package schedule_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryTicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- schedule.Every(ctx, 5*time.Millisecond, false, func(context.Context) {
			ticks.Add(1)
		})
	}()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Every did not return after cancel")
	}
}

func TestEveryImmediate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan struct{}, 1)
	go func() {
		_ = schedule.Every(ctx, time.Hour, true, func(context.Context) {
			select {
			case first <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("immediate tick did not run")
	}
}

func TestEveryRejectsInvalidPeriod(t *testing.T) {
	err := schedule.Every(context.Background(), 0, false, func(context.Context) {
		t.Fatal("fn must not run")
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInterval))
}
