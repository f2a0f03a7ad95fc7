package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

const turnQueueCapacity = 10

// queueItem carries a command or a completion signal into the coordinator's
// single consumer goroutine.
type queueItem struct {
	payload  any
	queuedAt time.Time
}

// Commands enqueued by the public controls.
type (
	requestCaptureCmd  struct{}
	cancelCaptureCmd   struct{}
	submitUtteranceCmd struct{ text string }
	resetCmd           struct{}
)

// Completion signals enqueued by background workers. Each carries the ID of
// the capture session or turn it belongs to so stale signals can be dropped.
type (
	captureEnded struct {
		captureID  string
		transcript string
		err        error
	}
	generationEnded struct {
		turnID       string
		continuation *storygen.Continuation
		err          error
	}
	narrationEnded struct {
		turnID string
		err    error
	}
)

// turnRuntime owns the coordinator's event queue and consumer lifecycle.
// All state transitions happen on the consumer goroutine, which is what
// guarantees at most one capture, generation, or narration is in flight.
type turnRuntime struct {
	baseContext context.Context

	queue   chan queueItem
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	endOnce   sync.Once

	started atomic.Bool
}

func newTurnRuntime() *turnRuntime {
	return &turnRuntime{
		baseContext: context.Background(),
		queue:       make(chan queueItem, turnQueueCapacity),
		closeCh:     make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (runtime *turnRuntime) configure(ctx context.Context) {
	if runtime == nil {
		return
	}

	runtime.baseContext = ctx
}

func (runtime *turnRuntime) start(c *Coordinator) (started bool) {
	if runtime == nil || runtime.isClosed() {
		return false
	}

	runtime.startOnce.Do(func() {
		if runtime.isClosed() {
			return
		}

		started = true
		runtime.started.Store(true)
		go func() {
			defer close(runtime.done)

			for {
				select {
				case <-runtime.closeCh:
					return
				case item := <-runtime.queue:
					if runtime.isClosed() {
						return
					}
					c.dispatch(item)
				}
			}
		}()
	})

	return started
}

func (runtime *turnRuntime) end() {
	if runtime == nil {
		return
	}

	runtime.endOnce.Do(func() {
		close(runtime.closeCh)
	})
}

func (runtime *turnRuntime) awaitCompletion() {
	if runtime == nil {
		return
	}

	if runtime.started.Load() {
		<-runtime.done
	}
}

func (runtime *turnRuntime) enqueue(payload any) bool {
	if runtime == nil || runtime.isClosed() {
		return false
	}

	item := queueItem{payload: payload, queuedAt: time.Now()}
	select {
	case <-runtime.closeCh:
		return false
	case runtime.queue <- item:
		return true
	}
}

func (runtime *turnRuntime) isClosed() bool {
	if runtime == nil {
		return false
	}

	select {
	case <-runtime.closeCh:
		return true
	default:
		return false
	}
}

func (runtime *turnRuntime) queuedItemCount() int {
	if runtime == nil {
		return 0
	}

	return len(runtime.queue)
}
