package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// turnRun is the consumer-owned record of the turn in flight. priorChoices
// are the choices that were live when the utterance was accepted; the
// fallback continuation re-offers them.
type turnRun struct {
	id           string
	utterance    string
	priorChoices [2]string

	ctx    context.Context
	cancel context.CancelFunc
	span   trace.Span
}

// queuedUtterance holds at most one utterance submitted while a turn was
// already in flight. First submission wins; later ones are dropped until
// the slot drains.
type queuedUtterance struct {
	text     string
	queuedAt time.Time
}

// dispatch runs on the runtime consumer goroutine. Every state transition
// and every consumer-owned field mutation happens here.
func (c *Coordinator) dispatch(item queueItem) {
	switch payload := item.payload.(type) {
	case requestCaptureCmd:
		c.handleRequestCapture()
	case cancelCaptureCmd:
		c.handleCancelCapture()
	case submitUtteranceCmd:
		c.handleSubmitUtterance(payload.text, item.queuedAt)
	case resetCmd:
		c.handleReset()
	case captureEnded:
		c.handleCaptureEnded(payload)
	case generationEnded:
		c.handleGenerationEnded(payload)
	case narrationEnded:
		c.handleNarrationEnded(payload)
	}
}

func (c *Coordinator) transitionTo(state State) {
	previous := c.session.setState(state)
	if previous == state {
		return
	}

	c.emitEvent(events.NewStateChanged(string(previous), string(state)))
}

func (c *Coordinator) handleRequestCapture() {
	if state := c.session.State(); state != StateIdle {
		c.emitEvent(events.NewCaptureFailed(&CaptureStartError{
			Err: fmt.Errorf("capture requested in %s state", state),
		}))
		return
	}

	captureID := uuid.NewString()
	if err := c.capture.start(c.baseContext, captureID, c.audioIn.encodingInfo(), c.onCaptureTerminal); err != nil {
		c.emitEvent(events.NewCaptureFailed(&CaptureStartError{Err: err}))
		return
	}

	if err := c.audioIn.start(c.baseContext, c.onInputAudio); err != nil {
		if stopErr := c.capture.stop(); stopErr != nil {
			logger.Warn("failed to stop capture after audio input failure", "error", stopErr)
		}
		c.emitEvent(events.NewCaptureFailed(&CaptureStartError{Err: err}))
		return
	}

	c.activeCaptureID = captureID
	c.transitionTo(StateListening)
	c.emitEvent(events.NewCaptureStarted())
}

func (c *Coordinator) handleCancelCapture() {
	if c.session.State() != StateListening {
		return
	}

	c.stopAudioInput()

	// The stop request flushes finalized speech; the session's terminal
	// signal decides between thinking and idle. stop only errors when there
	// is no session to wait on, so recover to idle directly in that case.
	if err := c.capture.stop(); err != nil {
		c.emitEvent(events.NewCaptureFailed(err))
		c.activeCaptureID = ""
		c.transitionTo(StateIdle)
		c.drainQueuedUtterance()
	}
}

func (c *Coordinator) handleCaptureEnded(signal captureEnded) {
	// Terminals from a superseded or reset capture session are stale.
	if signal.captureID != c.activeCaptureID || c.session.State() != StateListening {
		return
	}

	c.activeCaptureID = ""
	c.stopAudioInput()

	if signal.err != nil {
		c.emitEvent(events.NewCaptureFailed(signal.err))
		c.transitionTo(StateIdle)
		c.drainQueuedUtterance()
		return
	}

	transcript := strings.TrimSpace(signal.transcript)
	if transcript == "" {
		c.emitEvent(events.NewCaptureEnded())
		c.transitionTo(StateIdle)
		c.drainQueuedUtterance()
		return
	}

	c.emitEvent(events.NewCaptureTranscriptFinal(transcript))
	c.startTurn(transcript, time.Time{})
}

func (c *Coordinator) handleSubmitUtterance(text string, queuedAt time.Time) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if c.session.State() != StateIdle {
		if c.queuedUtterance == nil {
			c.queuedUtterance = &queuedUtterance{text: text, queuedAt: queuedAt}
		}
		return
	}

	c.startTurn(text, queuedAt)
}

// startTurn moves the session into thinking and launches generation for the
// utterance. The caller must have established that the session is able to
// accept a turn.
func (c *Coordinator) startTurn(utterance string, queuedAt time.Time) {
	turnCtx, turnCancel := context.WithCancel(c.runtime.baseContext)
	go func() {
		select {
		case <-c.runtime.closeCh:
			turnCancel()
		case <-turnCtx.Done():
		}
	}()

	ctx, span := tracer.Start(turnCtx, "process turn")
	if !queuedAt.IsZero() {
		queuedTime := time.Since(queuedAt).Seconds()
		span.AddEvent("taken out of queue", trace.WithAttributes(attribute.Float64("turn.queued_time", queuedTime)))
		span.SetAttributes(attribute.Float64("turn.queued_time", queuedTime))
	}
	span.SetAttributes(attribute.Int("turn.utterance_length", len(utterance)))

	turn := &turnRun{
		id:           uuid.NewString(),
		utterance:    utterance,
		priorChoices: c.session.Choices(),
		ctx:          ctx,
		cancel:       turnCancel,
		span:         span,
	}
	c.activeTurn = turn

	c.session.setPendingTranscript(utterance)
	c.transitionTo(StateThinking)
	c.emitEvent(events.NewTurnStarted(utterance))

	request := storygen.Request{
		History:   c.session.StoryText(),
		Choices:   turn.priorChoices,
		Utterance: utterance,
	}
	go func() {
		continuation, err := c.generator.generate(turn.ctx, request)
		c.runtime.enqueue(generationEnded{turnID: turn.id, continuation: continuation, err: err})
	}()

	// Cleared as soon as generation owns the utterance; a duplicate
	// transcript can no longer trigger a second generation call.
	c.session.clearPendingTranscript()
}

func (c *Coordinator) handleGenerationEnded(signal generationEnded) {
	turn := c.activeTurn
	if turn == nil || signal.turnID != turn.id || c.session.State() != StateThinking {
		return
	}

	continuation := signal.continuation
	if signal.err != nil {
		turn.span.RecordError(signal.err)
		turnFallbacks.Add(turn.ctx, 1)
		c.emitEvent(events.NewTurnFallback(signal.err))
		continuation = storygen.FallbackContinuation(turn.priorChoices)
	}

	c.session.applyContinuation(continuation)
	c.emitEvent(events.NewStoryAdvanced(continuation.Story, continuation.Choices))
	c.transitionTo(StateNarrating)

	narrationText := continuation.Story
	if c.runOptions.narrateChoices {
		narrationText = fmt.Sprintf("%s\n\nYour choices: %s, or %s.",
			narrationText, continuation.Choices[0], continuation.Choices[1])
	}

	go func() {
		err := c.narration.speak(turn.ctx, narrationText)
		c.runtime.enqueue(narrationEnded{turnID: turn.id, err: err})
	}()
}

func (c *Coordinator) handleNarrationEnded(signal narrationEnded) {
	turn := c.activeTurn
	if turn == nil || signal.turnID != turn.id || c.session.State() != StateNarrating {
		return
	}

	if signal.err != nil {
		turn.span.RecordError(signal.err)
		turn.span.SetStatus(codes.Error, signal.err.Error())
		c.emitEvent(events.NewNarrationFailed(signal.err))
	} else {
		c.emitEvent(events.NewNarrationEnded())
	}

	c.emitEvent(events.NewTurnCompleted())
	c.session.clearPendingTranscript()
	turnsCompleted.Add(turn.ctx, 1)

	turn.span.SetAttributes(attribute.Int("turn.queued_items", c.runtime.queuedItemCount()))
	turn.span.End()
	turn.cancel()
	c.activeTurn = nil

	c.transitionTo(StateIdle)
	c.drainQueuedUtterance()
}

func (c *Coordinator) handleReset() {
	if turn := c.activeTurn; turn != nil {
		turn.span.AddEvent("session reset")
		turn.span.End()
		turn.cancel()
		c.activeTurn = nil
	}

	if c.activeCaptureID != "" {
		c.activeCaptureID = ""
		if err := c.capture.stop(); err != nil {
			logger.Warn("failed to stop capture during reset", "error", err)
		}
	}
	c.stopAudioInput()
	c.audioOut.clearBuffer()
	c.queuedUtterance = nil

	previous := c.session.State()
	c.session.resetToOpening()
	c.emitEvent(events.NewSessionReset())
	if previous != StateIdle {
		c.emitEvent(events.NewStateChanged(string(previous), string(StateIdle)))
	}
}

func (c *Coordinator) drainQueuedUtterance() {
	queued := c.queuedUtterance
	c.queuedUtterance = nil
	if queued == nil {
		return
	}

	c.startTurn(queued.text, queued.queuedAt)
}

func (c *Coordinator) stopAudioInput() {
	if err := c.audioIn.stop(); err != nil {
		logger.Warn("failed to stop audio input", "error", err)
	}
}

func (c *Coordinator) onCaptureTerminal(id string, transcript string, err error) {
	c.runtime.enqueue(captureEnded{captureID: id, transcript: transcript, err: err})
}

func (c *Coordinator) onInputAudio(audio []byte) {
	if c.runOptions.onInputAudio != nil {
		c.runOptions.onInputAudio(audio)
	}

	if err := c.capture.sendAudio(audio); err != nil {
		logger.Warn("failed to forward input audio to recognition", "error", err)
	}
}
