package main

// Notes:
// - Real signal delivery is not tested; only cancellation via stop() and the
//   parent context is observable without platform-specific setup

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Cancellation sources
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("stop cancels", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatal("context should start live")
		}
		stop()
		if ctx.Err() == nil {
			t.Fatal("context should be canceled after stop()")
		}
	})

	t.Run("parent cancels", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
	})

	t.Run("watches interrupt", func(t *testing.T) {
		t.Parallel()

		if len(shutdownSignals) == 0 {
			t.Fatal("expected at least one shutdown signal")
		}
	})
}
