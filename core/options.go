package game

import (
	"context"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	"github.com/codemaster-omvardhan/Echo-Tale/core/speechtotext"
	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
	"github.com/codemaster-omvardhan/Echo-Tale/core/texttospeech"
)

type CoordinatorOption func(*Coordinator)

// SpeechCapturer is the live speech recognition capability. One terminal
// signal per session is delivered through the ClosedCallback option.
type SpeechCapturer interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
	StopStream() error
}

func WithSpeechCapturer(client SpeechCapturer) CoordinatorOption {
	return func(c *Coordinator) { c.capture.set(client) }
}

// ContinuationGenerator produces the next story beat for an utterance.
type ContinuationGenerator interface {
	GenerateContinuation(ctx context.Context, req storygen.Request) (*storygen.Continuation, error)
}

func WithGenerator(client ContinuationGenerator) CoordinatorOption {
	return func(c *Coordinator) { c.generator.set(client) }
}

// SpeechSynthesizer turns a story beat into audio. Speak blocks until every
// chunk for the utterance has been delivered.
type SpeechSynthesizer interface {
	Speak(ctx context.Context, text string, opts ...texttospeech.SpeakOption) error
}

func WithSynthesizer(client SpeechSynthesizer) CoordinatorOption {
	return func(c *Coordinator) { c.narration.set(client) }
}

// AudioInput is a capture device that streams microphone audio.
type AudioInput interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	CaptureEncodingInfo() audio.EncodingInfo
}

func WithAudioInput(client AudioInput) CoordinatorOption {
	return func(c *Coordinator) { c.audioIn.set(client) }
}

// AudioOutput is a playback device for synthesized narration.
type AudioOutput interface {
	SendAudio(audio []byte) error
	Drain(ctx context.Context) error
	ClearBuffer()
	PlaybackEncodingInfo() audio.EncodingInfo
}

func WithAudioOutput(client AudioOutput) CoordinatorOption {
	return func(c *Coordinator) { c.audioOut.set(client) }
}

// WithOpening replaces the built-in opening story and seed choices.
func WithOpening(opening storygen.Opening) CoordinatorOption {
	return func(c *Coordinator) { c.session = newSession(opening) }
}

// WithCaptureLocale sets the language hint passed to speech recognition.
func WithCaptureLocale(locale string) CoordinatorOption {
	return func(c *Coordinator) { c.capture.setLocale(locale) }
}

type RunOptions struct {
	onEvent                func(event events.Event)
	onStateChanged         func(from, to State)
	onInterimTranscription func(transcript string)
	onTranscription        func(transcript string)
	onStoryAdvanced        func(beat string, choices [2]string)
	onTurnFallback         func(err error)
	onCaptureFailed        func(err error)
	onInputAudio           func(audio []byte)
	onNarrationAudio       func(audio []byte)

	narrateChoices bool
}

type RunOption func(*RunOptions)

// WithEventCallback registers a callback for every event the coordinator
// emits, before any of the typed callbacks fire.
func WithEventCallback(callback func(event events.Event)) RunOption {
	return func(o *RunOptions) { o.onEvent = callback }
}

// WithStateChangedCallback registers a callback for coordinator state
// transitions.
func WithStateChangedCallback(callback func(from, to State)) RunOption {
	return func(o *RunOptions) { o.onStateChanged = callback }
}

// WithInterimTranscriptionCallback registers a callback for interim
// transcriptions produced while the player is speaking. An empty transcript
// clears the previous snapshot.
func WithInterimTranscriptionCallback(callback func(transcript string)) RunOption {
	return func(o *RunOptions) { o.onInterimTranscription = callback }
}

// WithTranscriptionCallback registers a callback for the final transcript of
// each capture session.
func WithTranscriptionCallback(callback func(transcript string)) RunOption {
	return func(o *RunOptions) { o.onTranscription = callback }
}

// WithStoryAdvancedCallback registers a callback for applied continuations.
func WithStoryAdvancedCallback(callback func(beat string, choices [2]string)) RunOption {
	return func(o *RunOptions) { o.onStoryAdvanced = callback }
}

// WithTurnFallbackCallback registers a callback for turns that engaged the
// fallback continuation after a generation failure.
func WithTurnFallbackCallback(callback func(err error)) RunOption {
	return func(o *RunOptions) { o.onTurnFallback = callback }
}

// WithCaptureFailedCallback registers a callback for absorbed capture
// errors.
func WithCaptureFailedCallback(callback func(err error)) RunOption {
	return func(o *RunOptions) { o.onCaptureFailed = callback }
}

// WithInputAudioCallback registers a callback for raw input audio chunks.
//
// The provided slice is passed through as-is (no defensive copy). The
// callback runs inline on the input-audio path and should not block.
func WithInputAudioCallback(callback func(audio []byte)) RunOption {
	return func(o *RunOptions) { o.onInputAudio = callback }
}

// WithNarrationAudioCallback registers a callback for synthesized narration
// audio chunks, in delivery order.
func WithNarrationAudioCallback(callback func(audio []byte)) RunOption {
	return func(o *RunOptions) { o.onNarrationAudio = callback }
}

// WithChoiceNarration appends the two current choices to each narrated
// beat.
func WithChoiceNarration() RunOption {
	return func(o *RunOptions) { o.narrateChoices = true }
}
