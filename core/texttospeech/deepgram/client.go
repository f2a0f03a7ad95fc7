// Package deepgram implements speech synthesis over the Deepgram speak
// websocket API.
package deepgram

import (
	"fmt"
	"slices"
)

const defaultBaseURL = "wss://api.deepgram.com"

type SpeechClient struct {
	baseURL string
	voice   deepgramVoice
}

type ClientOption func(*SpeechClient)

// WithBaseURL overrides the websocket endpoint, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *SpeechClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithVoice selects the voice model used for synthesis. The model is
// validated against [GetAvailableVoices] when the client is constructed.
func WithVoice(model string) ClientOption {
	return func(c *SpeechClient) {
		if model != "" {
			c.voice = deepgramVoice(model)
		}
	}
}

func NewSpeechClient(opts ...ClientOption) (*SpeechClient, error) {
	client := &SpeechClient{
		baseURL: defaultBaseURL,
		voice:   defaultVoice,
	}

	for _, opt := range opts {
		opt(client)
	}

	if !slices.Contains(GetAvailableVoices(), client.voice) {
		return nil, fmt.Errorf("invalid voice %q", client.voice)
	}

	return client, nil
}
