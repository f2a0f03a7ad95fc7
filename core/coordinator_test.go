package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	"github.com/codemaster-omvardhan/Echo-Tale/core/speechtotext"
	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
	"github.com/codemaster-omvardhan/Echo-Tale/core/texttospeech"
)

func TestVoiceTurnCycleUpdatesStory(t *testing.T) {
	capturer := &capturerStub{}
	generator := &generatorStub{continuation: storygen.Continuation{
		Story:   "The cave swallows the daylight.",
		Choices: [2]string{"Light a torch", "Feel along the wall"},
	}}
	synthesizer := &synthesizerStub{}

	c := NewCoordinator(
		WithSpeechCapturer(capturer),
		WithGenerator(generator),
		WithSynthesizer(synthesizer),
	)
	defer c.Close()

	opening := c.Snapshot()
	states := &transitionRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithStateChangedCallback(states.record))

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	callbacks := capturer.callbacks()
	callbacks.TranscriptionCallback("enter the cave")
	callbacks.UtteranceEndCallback()

	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		snapshot := c.Snapshot()
		return snapshot.State == StateIdle && strings.Contains(snapshot.StoryText, "The cave swallows the daylight.")
	})

	snapshot := c.Snapshot()
	if want := opening.StoryText + "\n\nThe cave swallows the daylight."; snapshot.StoryText != want {
		t.Fatalf("expected story %q, got %q", want, snapshot.StoryText)
	}
	if snapshot.Choices != [2]string{"Light a torch", "Feel along the wall"} {
		t.Fatalf("expected updated choices, got %v", snapshot.Choices)
	}
	if snapshot.PendingTranscript != "" {
		t.Fatalf("expected empty pending transcript, got %q", snapshot.PendingTranscript)
	}

	requests := generator.requestsSnapshot()
	if len(requests) != 1 {
		t.Fatalf("expected exactly one generation call, got %d", len(requests))
	}
	if requests[0].Utterance != "enter the cave" {
		t.Fatalf("expected utterance to reach the generator, got %q", requests[0].Utterance)
	}
	if requests[0].History != opening.StoryText {
		t.Fatalf("expected opening story as history, got %q", requests[0].History)
	}
	if requests[0].Choices != opening.Choices {
		t.Fatalf("expected opening choices in the request, got %v", requests[0].Choices)
	}

	spoken := synthesizer.spokenSnapshot()
	if len(spoken) != 1 || spoken[0] != "The cave swallows the daylight." {
		t.Fatalf("expected the new beat to be narrated, got %v", spoken)
	}

	wantTransitions := []string{
		"idle>listening",
		"listening>thinking",
		"thinking>narrating",
		"narrating>idle",
	}
	if got := states.snapshot(); !equalStrings(got, wantTransitions) {
		t.Fatalf("expected transitions %v, got %v", wantTransitions, got)
	}
}

func TestCaptureRejectedOutsideIdle(t *testing.T) {
	capturer := &capturerStub{}
	generator := &generatorStub{gate: make(chan struct{})}

	c := NewCoordinator(WithSpeechCapturer(capturer), WithGenerator(generator))
	defer c.Close()

	captureFailures := make(chan error, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithCaptureFailedCallback(func(err error) {
		select {
		case captureFailures <- err:
		default:
		}
	}))

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	callbacks := capturer.callbacks()
	callbacks.TranscriptionCallback("enter the cave")
	callbacks.UtteranceEndCallback()

	waitForCondition(t, 2*time.Second, "generation to start", func() bool {
		return c.Snapshot().State == StateThinking
	})

	c.RequestCapture()

	select {
	case err := <-captureFailures:
		startErr := &CaptureStartError{}
		if !errors.As(err, &startErr) {
			t.Fatalf("expected CaptureStartError, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for capture rejection")
	}

	if calls := capturer.transcribeCalls(); calls != 1 {
		t.Fatalf("expected a single transcription stream, got %d", calls)
	}

	close(generator.gate)
	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		return c.Snapshot().State == StateIdle
	})
}

func TestCaptureStartErrorStaysIdle(t *testing.T) {
	capturer := &capturerStub{startErr: errors.New("permission denied")}

	c := NewCoordinator(WithSpeechCapturer(capturer))
	defer c.Close()

	captureFailed := make(chan error, 1)
	states := &transitionRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx,
		WithStateChangedCallback(states.record),
		WithCaptureFailedCallback(func(err error) {
			select {
			case captureFailed <- err:
			default:
			}
		}),
	)

	c.RequestCapture()

	select {
	case err := <-captureFailed:
		startErr := &CaptureStartError{}
		if !errors.As(err, &startErr) {
			t.Fatalf("expected CaptureStartError, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for capture failure")
	}

	if state := c.Snapshot().State; state != StateIdle {
		t.Fatalf("expected idle state after failed capture start, got %s", state)
	}
	if transitions := states.snapshot(); len(transitions) != 0 {
		t.Fatalf("expected no state transitions, got %v", transitions)
	}
}

func TestCaptureErrorDiscardsPartialTranscript(t *testing.T) {
	capturer := &capturerStub{}
	generator := &generatorStub{}

	c := NewCoordinator(WithSpeechCapturer(capturer), WithGenerator(generator))
	defer c.Close()

	recorder := &eventRecorder{}
	opening := c.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithEventCallback(recorder.record))

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	callbacks := capturer.callbacks()
	callbacks.TranscriptionCallback("enter the")
	callbacks.ClosedCallback(errors.New("socket closed"))

	waitForCondition(t, 2*time.Second, "capture failure to resolve", func() bool {
		return recorder.has(events.KindCaptureFailed) && c.Snapshot().State == StateIdle
	})

	if count := generator.requestCount(); count != 0 {
		t.Fatalf("expected no generation calls after capture error, got %d", count)
	}
	if story := c.Snapshot().StoryText; story != opening.StoryText {
		t.Fatalf("expected story to stay unchanged, got %q", story)
	}
	if recorder.has(events.KindTurnStarted) {
		t.Fatalf("expected no turn after capture error")
	}
}

func TestCancelCaptureWithoutTranscriptReturnsIdle(t *testing.T) {
	capturer := &capturerStub{}
	generator := &generatorStub{}

	c := NewCoordinator(WithSpeechCapturer(capturer), WithGenerator(generator))
	defer c.Close()

	recorder := &eventRecorder{}
	opening := c.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithEventCallback(recorder.record))

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	c.CancelCapture()

	waitForCondition(t, 2*time.Second, "capture to end", func() bool {
		return recorder.has(events.KindCaptureEnded) && c.Snapshot().State == StateIdle
	})

	if count := generator.requestCount(); count != 0 {
		t.Fatalf("expected no generation calls, got %d", count)
	}
	if story := c.Snapshot().StoryText; story != opening.StoryText {
		t.Fatalf("expected story to stay unchanged, got %q", story)
	}
}

func TestCancelCaptureForwardsFinalizedTranscript(t *testing.T) {
	capturer := &capturerStub{}
	generator := &generatorStub{continuation: storygen.Continuation{
		Story:   "Sunlight warms the road ahead.",
		Choices: [2]string{"Follow the river", "Climb the ridge"},
	}}

	c := NewCoordinator(WithSpeechCapturer(capturer), WithGenerator(generator))
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx)

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	capturer.callbacks().TranscriptionCallback("take the sunny path")
	c.CancelCapture()

	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		snapshot := c.Snapshot()
		return snapshot.State == StateIdle && strings.Contains(snapshot.StoryText, "Sunlight warms the road ahead.")
	})

	requests := generator.requestsSnapshot()
	if len(requests) != 1 || requests[0].Utterance != "take the sunny path" {
		t.Fatalf("expected the finalized transcript to drive a turn, got %v", requests)
	}
}

func TestDuplicateCaptureTerminalGeneratesOnce(t *testing.T) {
	capturer := &capturerStub{}
	generator := &generatorStub{continuation: storygen.Continuation{
		Story:   "The torch flickers to life.",
		Choices: [2]string{"Press deeper", "Mark the wall"},
	}}

	c := NewCoordinator(WithSpeechCapturer(capturer), WithGenerator(generator))
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx)

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	callbacks := capturer.callbacks()
	callbacks.TranscriptionCallback("light the torch")
	callbacks.ClosedCallback(nil)
	callbacks.ClosedCallback(nil)

	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		return c.Snapshot().State == StateIdle && generator.requestCount() > 0
	})

	if count := generator.requestCount(); count != 1 {
		t.Fatalf("expected exactly one generation call, got %d", count)
	}
}

func TestGenerationFailureFallsBackToPriorChoices(t *testing.T) {
	generator := &generatorStub{err: errors.New("model offline")}

	c := NewCoordinator(WithGenerator(generator))
	defer c.Close()

	opening := c.Snapshot()
	fallbackEngaged := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithTurnFallbackCallback(func(err error) {
		select {
		case fallbackEngaged <- err:
		default:
		}
	}))

	c.SubmitUtterance("enter the cave")

	select {
	case err := <-fallbackEngaged:
		generationErr := &GenerationError{}
		if !errors.As(err, &generationErr) {
			t.Fatalf("expected GenerationError, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for fallback")
	}

	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		snapshot := c.Snapshot()
		return snapshot.State == StateIdle && snapshot.StoryText != opening.StoryText
	})

	snapshot := c.Snapshot()
	if snapshot.Choices != opening.Choices {
		t.Fatalf("expected fallback to re-offer prior choices, got %v", snapshot.Choices)
	}
}

func TestPlaybackErrorKeepsAppliedStory(t *testing.T) {
	generator := &generatorStub{continuation: storygen.Continuation{
		Story:   "Thunder rolls over the hills.",
		Choices: [2]string{"Seek shelter", "Press on"},
	}}
	synthesizer := &synthesizerStub{err: errors.New("device gone")}

	c := NewCoordinator(WithGenerator(generator), WithSynthesizer(synthesizer))
	defer c.Close()

	recorder := &eventRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithEventCallback(recorder.record))

	c.SubmitUtterance("press on")

	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		return recorder.has(events.KindNarrationFailed) && c.Snapshot().State == StateIdle
	})

	snapshot := c.Snapshot()
	if !strings.Contains(snapshot.StoryText, "Thunder rolls over the hills.") {
		t.Fatalf("expected applied story to survive playback failure, got %q", snapshot.StoryText)
	}
	if snapshot.Choices != [2]string{"Seek shelter", "Press on"} {
		t.Fatalf("expected updated choices to survive playback failure, got %v", snapshot.Choices)
	}
}

func TestSubmitUtteranceRunsTextOnlyTurn(t *testing.T) {
	generator := &generatorStub{continuation: storygen.Continuation{
		Story:   "The gate creaks open.",
		Choices: [2]string{"Step through", "Wait and listen"},
	}}

	c := NewCoordinator(WithGenerator(generator))
	defer c.Close()

	recorder := &eventRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithEventCallback(recorder.record))

	c.SubmitUtterance("open the gate")

	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		snapshot := c.Snapshot()
		return snapshot.State == StateIdle && strings.Contains(snapshot.StoryText, "The gate creaks open.")
	})

	// Text-only sessions still pass through the narrating phase.
	if !recorder.has(events.KindNarrationStarted) {
		t.Fatalf("expected narration started event in text-only mode")
	}
	if !recorder.has(events.KindTurnCompleted) {
		t.Fatalf("expected turn completed event")
	}
}

func TestQueuedUtteranceRunsAfterActiveTurn(t *testing.T) {
	generator := &generatorStub{
		gate: make(chan struct{}, 2),
		continuation: storygen.Continuation{
			Story:   "Another step forward.",
			Choices: [2]string{"Keep going", "Turn back"},
		},
	}

	c := NewCoordinator(WithGenerator(generator))
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx)

	c.SubmitUtterance("first")
	waitForCondition(t, 2*time.Second, "first turn to start", func() bool {
		return generator.requestCount() == 1
	})

	c.SubmitUtterance("second")
	c.SubmitUtterance("third")

	generator.gate <- struct{}{}
	waitForCondition(t, 2*time.Second, "queued turn to start", func() bool {
		return generator.requestCount() == 2
	})

	generator.gate <- struct{}{}
	waitForCondition(t, 2*time.Second, "queued turn to complete", func() bool {
		snapshot := c.Snapshot()
		return snapshot.State == StateIdle && strings.Count(snapshot.StoryText, "Another step forward.") == 2
	})

	requests := generator.requestsSnapshot()
	if len(requests) != 2 {
		t.Fatalf("expected the third submission to be dropped, got %d requests", len(requests))
	}
	if requests[0].Utterance != "first" || requests[1].Utterance != "second" {
		t.Fatalf("expected queued utterance to run in order, got %v", requests)
	}
	if !strings.Contains(requests[1].History, "Another step forward.") {
		t.Fatalf("expected queued turn to see the first beat in history, got %q", requests[1].History)
	}
}

func TestResetRestoresOpening(t *testing.T) {
	generator := &generatorStub{continuation: storygen.Continuation{
		Story:   "The map crumbles to dust.",
		Choices: [2]string{"Retrace your steps", "Trust your memory"},
	}}

	c := NewCoordinator(WithGenerator(generator))
	defer c.Close()

	recorder := &eventRecorder{}
	opening := c.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithEventCallback(recorder.record))

	c.SubmitUtterance("read the map")
	waitForCondition(t, 2*time.Second, "turn to complete", func() bool {
		snapshot := c.Snapshot()
		return snapshot.State == StateIdle && snapshot.StoryText != opening.StoryText
	})

	c.Reset()
	waitForCondition(t, 2*time.Second, "session to reset", func() bool {
		return recorder.has(events.KindSessionReset)
	})

	snapshot := c.Snapshot()
	if snapshot.StoryText != opening.StoryText {
		t.Fatalf("expected opening story after reset, got %q", snapshot.StoryText)
	}
	if snapshot.Choices != opening.Choices {
		t.Fatalf("expected opening choices after reset, got %v", snapshot.Choices)
	}
	if snapshot.State != StateIdle {
		t.Fatalf("expected idle state after reset, got %s", snapshot.State)
	}
}

func TestInterimTranscriptJoinsFinalizedSegments(t *testing.T) {
	capturer := &capturerStub{}

	c := NewCoordinator(WithSpeechCapturer(capturer))
	defer c.Close()

	interims := &stringRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx, WithInterimTranscriptionCallback(interims.record))

	c.RequestCapture()
	waitForCondition(t, 2*time.Second, "capture to start", func() bool {
		return c.Snapshot().State == StateListening
	})

	callbacks := capturer.callbacks()
	callbacks.InterimTranscriptionCallback("enter")
	callbacks.TranscriptionCallback("enter the cave")
	callbacks.InterimTranscriptionCallback("and light")

	want := []string{"enter", "enter the cave", "enter the cave and light"}
	waitForCondition(t, 2*time.Second, "interim updates", func() bool {
		return equalStrings(interims.snapshot(), want)
	})
}

func waitForCondition(t *testing.T, timeout time.Duration, description string, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s", description)
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

type transitionRecorder struct {
	mu          sync.Mutex
	transitions []string
}

func (r *transitionRecorder) record(from, to State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, fmt.Sprintf("%s>%s", from, to))
}

func (r *transitionRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.transitions...)
}

type eventRecorder struct {
	mu    sync.Mutex
	kinds []events.Kind
}

func (r *eventRecorder) record(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, event.Kind())
}

func (r *eventRecorder) has(kind events.Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, recorded := range r.kinds {
		if recorded == kind {
			return true
		}
	}
	return false
}

type stringRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *stringRecorder) record(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *stringRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

type capturerStub struct {
	mu         sync.Mutex
	options    speechtotext.TranscriptionOptions
	startErr   error
	stopErr    error
	startCalls int
}

func (s *capturerStub) Transcribe(_ context.Context, opts ...speechtotext.TranscriptionOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startErr != nil {
		return s.startErr
	}

	options := speechtotext.TranscriptionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	s.options = options
	s.startCalls++
	return nil
}

func (s *capturerStub) SendAudio([]byte) error { return nil }

// StopStream closes the stream synchronously, mirroring a recognizer that
// flushes and reports a clean close.
func (s *capturerStub) StopStream() error {
	s.mu.Lock()
	err := s.stopErr
	closedCallback := s.options.ClosedCallback
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if closedCallback != nil {
		closedCallback(nil)
	}
	return nil
}

func (s *capturerStub) callbacks() speechtotext.TranscriptionOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

func (s *capturerStub) transcribeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startCalls
}

type generatorStub struct {
	mu           sync.Mutex
	continuation storygen.Continuation
	err          error
	requests     []storygen.Request

	// gate, when set, blocks each call until a token arrives or the turn
	// context is cancelled.
	gate chan struct{}
}

func (s *generatorStub) GenerateContinuation(ctx context.Context, req storygen.Request) (*storygen.Continuation, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	gate := s.gate
	err := s.err
	continuation := s.continuation
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	return &continuation, nil
}

func (s *generatorStub) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *generatorStub) requestsSnapshot() []storygen.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storygen.Request(nil), s.requests...)
}

type synthesizerStub struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

func (s *synthesizerStub) Speak(_ context.Context, text string, _ ...texttospeech.SpeakOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spoken = append(s.spoken, text)
	return s.err
}

func (s *synthesizerStub) spokenSnapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}
