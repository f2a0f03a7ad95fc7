package game

import (
	"context"
	"testing"
	"time"
)

func TestCloseBeforeRunMarksClosed(t *testing.T) {
	c := NewCoordinator()
	c.Close()

	if !c.runtime.isClosed() {
		t.Fatalf("expected coordinator to be closed")
	}

	c.Run(context.Background())
	if c.runtime.started.Load() {
		t.Fatalf("expected runtime to stay stopped after close")
	}
}

func TestEnqueueAfterCloseIsRejected(t *testing.T) {
	runtime := newTurnRuntime()
	runtime.end()

	if runtime.enqueue(requestCaptureCmd{}) {
		t.Fatalf("expected enqueue to be rejected after close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCoordinator()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx)

	c.Close()
	c.Close()

	if !c.runtime.isClosed() {
		t.Fatalf("expected coordinator to be closed")
	}
}

func TestContextCancellationClosesCoordinator(t *testing.T) {
	c := NewCoordinator()

	ctx, cancel := context.WithCancel(context.Background())
	c.Run(ctx)

	cancel()

	waitForCondition(t, 2*time.Second, "runtime to close", c.runtime.isClosed)
}
