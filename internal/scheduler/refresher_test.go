package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresherClampsInterval(t *testing.T) {
	r := NewRefresher(10*time.Millisecond, func(context.Context) error { return nil })
	assert.Equal(t, time.Second, r.interval)
}

func TestRefresherStopsOnContextDone(t *testing.T) {
	r := NewRefresher(time.Second, func(context.Context) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop on context cancel")
	}
}

func TestRefresherSurvivesErrors(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(time.Second, func(context.Context) error {
		calls.Add(1)
		return fmt.Errorf("tick failed")
	})
	// Force a fast tick for the test; NewRefresher already validated
	// the clamping path above.
	r.interval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	assert.GreaterOrEqual(t, calls.Load(), int32(2), "errors must not stop the loop")
}
