package game

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	"github.com/codemaster-omvardhan/Echo-Tale/core/speechtotext"
)

// speechCapture wraps the configured SpeechCapturer and reduces its
// per-segment callbacks to a single terminal signal per capture session.
type speechCapture struct {
	client SpeechCapturer
	locale string

	mu     sync.Mutex
	active *captureSession

	emitEvent eventEmitter
}

// captureSession accumulates finalized transcript segments until the stream
// resolves. terminate fires at most once no matter how many paths race to
// end the session.
type captureSession struct {
	id string

	mu       sync.Mutex
	segments []string

	terminalOnce sync.Once
	terminate    func(transcript string, err error)
}

func (s *captureSession) appendSegment(segment string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.segments = append(s.segments, segment)
}

// runningTranscript joins the finalized segments with the current interim
// tail, if any.
func (s *captureSession) runningTranscript(interim string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	joined := strings.Join(s.segments, " ")
	return strings.TrimSpace(joined + " " + interim)
}

func (s *captureSession) transcript() string {
	return s.runningTranscript("")
}

func newSpeechCapture() *speechCapture {
	return &speechCapture{emitEvent: noopEventEmitter}
}

func (c *speechCapture) set(client SpeechCapturer) {
	if c == nil {
		return
	}

	c.client = client
}

func (c *speechCapture) setLocale(locale string) {
	if c == nil {
		return
	}

	c.locale = locale
}

func (c *speechCapture) isConfigured() bool {
	return c != nil && c.client != nil
}

func (c *speechCapture) SetEventEmitter(emitter eventEmitter) {
	if c == nil {
		return
	}

	if emitter == nil {
		emitter = noopEventEmitter
	}
	c.emitEvent = emitter
}

// start opens a transcription stream for one capture session. onTerminal is
// called exactly once with the session's full transcript, or with the error
// that ended the stream.
func (c *speechCapture) start(
	ctx context.Context,
	id string,
	encodingInfo audio.EncodingInfo,
	onTerminal func(id string, transcript string, err error),
) error {
	if !c.isConfigured() {
		return errors.New("speech capture client is not configured")
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return errors.New("capture session already active")
	}

	session := &captureSession{id: id}
	session.terminate = func(transcript string, err error) {
		session.terminalOnce.Do(func() {
			c.mu.Lock()
			if c.active == session {
				c.active = nil
			}
			c.mu.Unlock()

			onTerminal(id, transcript, err)
		})
	}
	c.active = session
	c.mu.Unlock()

	options := []speechtotext.TranscriptionOption{
		speechtotext.WithEncodingInfo(encodingInfo),
		speechtotext.WithInterimTranscriptionCallback(func(transcript string) {
			c.emitEvent(events.NewCaptureInterimTranscript(session.runningTranscript(transcript)))
		}),
		speechtotext.WithTranscriptionCallback(func(transcript string) {
			session.appendSegment(transcript)
			c.emitEvent(events.NewCaptureInterimTranscript(session.transcript()))
		}),
		speechtotext.WithUtteranceEndCallback(func() {
			if err := c.client.StopStream(); err != nil {
				session.terminate(session.transcript(), &CaptureStopError{Err: err})
			}
		}),
		speechtotext.WithClosedCallback(func(err error) {
			if err != nil {
				session.terminate("", err)
				return
			}

			c.emitEvent(events.NewCaptureInterimTranscript(""))
			session.terminate(session.transcript(), nil)
		}),
	}
	if c.locale != "" {
		options = append(options, speechtotext.WithLanguage(c.locale))
	}

	if err := c.client.Transcribe(ctx, options...); err != nil {
		c.mu.Lock()
		if c.active == session {
			c.active = nil
		}
		c.mu.Unlock()

		return err
	}

	return nil
}

func (c *speechCapture) sendAudio(audio []byte) error {
	if !c.isConfigured() {
		return errors.New("speech capture client is not configured")
	}

	return c.client.SendAudio(audio)
}

// stop requests the active session to flush and close. The session's
// terminal fires once the stream delivers its remaining finalized segments,
// or immediately when the stop request itself fails.
func (c *speechCapture) stop() error {
	if !c.isConfigured() {
		return &CaptureStopError{Err: errors.New("speech capture client is not configured")}
	}

	c.mu.Lock()
	session := c.active
	c.mu.Unlock()
	if session == nil {
		return &CaptureStopError{Err: errors.New("no active capture session")}
	}

	if err := c.client.StopStream(); err != nil {
		session.terminate(session.transcript(), &CaptureStopError{Err: err})
	}

	return nil
}

func (c *speechCapture) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	switch client := c.client.(type) {
	case interface{ Close(ctx context.Context) error }:
		return client.Close(ctx)
	case interface{ Close() error }:
		return client.Close()
	case interface{ Close(ctx context.Context) }:
		client.Close(ctx)
	case interface{ Close() }:
		client.Close()
	}

	return nil
}
