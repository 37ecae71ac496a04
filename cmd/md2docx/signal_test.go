package main

// Notes:
// - OS signal delivery is not exercised; only the context wiring is.

import (
	"context"
	"os"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Cancellation wiring
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("open until stopped", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatalf("ctx.Err() = %v before stop", ctx.Err())
		}
		stop()
		if ctx.Err() == nil {
			t.Fatal("ctx not cancelled after stop")
		}
	})

	t.Run("follows parent", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
	})
}

func TestStopSignals_IncludeInterrupt(t *testing.T) {
	t.Parallel()

	for _, s := range stopSignals {
		if s == os.Interrupt {
			return
		}
	}
	t.Errorf("stopSignals = %v, want os.Interrupt", stopSignals)
}
