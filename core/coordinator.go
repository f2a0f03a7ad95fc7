// Package game coordinates a voice-driven interactive story: a turn loop
// that captures the player's spoken choice, extends the story through a
// text generation service, and narrates the new beat aloud.
package game

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Coordinator drives the turn cycle idle, listening, thinking, narrating
// and back to idle. All transitions run on a single consumer goroutine, so
// at most one capture, one generation, and one narration is ever in flight,
// and a turn's phases never overlap.
type Coordinator struct {
	closeOnce sync.Once
	runtime   *turnRuntime

	session *Session

	// capture is the speech recognition facade; unconfigured stays inert.
	capture *speechCapture
	// generator is the story continuation facade.
	generator *storyGeneration
	// narration is the synthesis facade; unconfigured keeps turns text-only.
	narration *narrationPlayer
	// audioIn is the capture device facade.
	audioIn *audioInput
	// audioOut is the playback device facade.
	audioOut *audioOutput

	runOptions RunOptions
	emitEvent  eventEmitter

	// Consumer-owned; touched only on the runtime goroutine.
	activeCaptureID string
	activeTurn      *turnRun
	queuedUtterance *queuedUtterance

	baseContext context.Context
}

func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	audioOut := newAudioOutput()

	c := &Coordinator{
		runtime:     newTurnRuntime(),
		session:     newSession(storygen.DefaultOpening()),
		capture:     newSpeechCapture(),
		generator:   newStoryGeneration(),
		narration:   newNarrationPlayer(audioOut),
		audioIn:     newAudioInput(),
		audioOut:    audioOut,
		emitEvent:   noopEventEmitter,
		baseContext: context.Background(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run starts the coordinator's turn loop and returns immediately.
//
// ctx is the base context for captures, generations, and narrations; when
// it is cancelled the coordinator closes.
//
// Contract: call Run at most once per coordinator instance. Repeated or
// concurrent calls are unsupported and may race while callbacks are being
// reconfigured.
func (c *Coordinator) Run(ctx context.Context, opts ...RunOption) {
	if c.runtime.isClosed() {
		log.Println("Warning: coordinator already closed, skipping Run")
		return
	}

	c.runOptions = RunOptions{}
	for _, opt := range opts {
		opt(&c.runOptions)
	}

	c.baseContext = ctx
	c.runtime.configure(ctx)

	c.emitEvent = newCallbackEventEmitter(c.runOptions)
	c.capture.SetEventEmitter(c.emitEvent)
	c.narration.SetEventEmitter(c.emitEvent)
	c.narration.setAudioCallback(c.runOptions.onNarrationAudio)

	if started := c.runtime.start(c); started {
		go func() {
			<-ctx.Done()
			c.Close()
		}()
	}
}

// Close ends the turn loop and releases the configured clients. In-flight
// turn contexts are cancelled through the runtime's close channel.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		c.runtime.end()

		if err := c.audioIn.Close(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close audio input: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		if err := c.capture.Close(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close speech capture client: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		if err := c.generator.Close(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close story generator: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		if err := c.narration.Close(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close speech synthesis client: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		if err := c.audioOut.Close(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close audio output: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		c.runtime.awaitCompletion()
	})
}

// Snapshot returns a point-in-time view of the session. Snapshots pair the
// story text with the choices that belong to it.
func (c *Coordinator) Snapshot() Snapshot {
	return c.session.Snapshot()
}
