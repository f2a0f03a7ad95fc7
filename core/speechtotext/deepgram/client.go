// Package deepgram implements live speech recognition over the Deepgram
// listen websocket API.
package deepgram

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultBaseURL = "wss://api.deepgram.com"
	defaultModel   = "nova-3"
)

type TranscriptionClient struct {
	baseURL string
	model   string

	conn   *websocket.Conn
	connMu sync.Mutex

	// closing marks a deliberate shutdown so the read loop can report a
	// clean close instead of a read error.
	closing atomic.Bool

	lastMsgTs time.Time
	tsMu      sync.Mutex
}

type ClientOption func(*TranscriptionClient)

// WithBaseURL overrides the websocket endpoint, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *TranscriptionClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithModel overrides the recognition model.
func WithModel(model string) ClientOption {
	return func(c *TranscriptionClient) {
		if model != "" {
			c.model = model
		}
	}
}

func NewTranscriptionClient(opts ...ClientOption) *TranscriptionClient {
	client := &TranscriptionClient{
		baseURL: defaultBaseURL,
		model:   defaultModel,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close force-closes the transcription stream. Prefer StopStream, which lets
// the server flush remaining finalized segments first.
func (s *TranscriptionClient) Close(_ context.Context) error {
	s.closing.Store(true)

	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			return err
		}
		s.conn = nil
	}
	return nil
}

func (s *TranscriptionClient) touchLastMessage() {
	s.tsMu.Lock()
	s.lastMsgTs = time.Now()
	s.tsMu.Unlock()
}

func (s *TranscriptionClient) sinceLastMessage() time.Duration {
	s.tsMu.Lock()
	defer s.tsMu.Unlock()
	return time.Since(s.lastMsgTs)
}
