package game

import (
	"context"

	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	"github.com/codemaster-omvardhan/Echo-Tale/core/texttospeech"
)

// narrationPlayer wraps the configured SpeechSynthesizer and routes
// synthesized audio into the playback device.
type narrationPlayer struct {
	client   SpeechSynthesizer
	audioOut *audioOutput

	onAudio func(audio []byte)

	emitEvent eventEmitter
}

func newNarrationPlayer(audioOut *audioOutput) *narrationPlayer {
	return &narrationPlayer{
		audioOut:  audioOut,
		emitEvent: noopEventEmitter,
	}
}

func (p *narrationPlayer) set(client SpeechSynthesizer) {
	if p == nil {
		return
	}

	p.client = client
}

func (p *narrationPlayer) isConfigured() bool {
	return p != nil && p.client != nil
}

func (p *narrationPlayer) SetEventEmitter(emitter eventEmitter) {
	if p == nil {
		return
	}

	if emitter == nil {
		emitter = noopEventEmitter
	}
	p.emitEvent = emitter
}

func (p *narrationPlayer) setAudioCallback(callback func(audio []byte)) {
	if p == nil {
		return
	}

	p.onAudio = callback
}

// speak synthesizes text and blocks until playback has drained. Without a
// configured synthesizer it returns immediately, which keeps text-only
// sessions moving through the same turn phases.
func (p *narrationPlayer) speak(ctx context.Context, text string) error {
	p.emitEvent(events.NewNarrationStarted(text))

	if !p.isConfigured() {
		return nil
	}

	err := p.client.Speak(ctx, text,
		texttospeech.WithEncodingInfo(p.audioOut.encodingInfo()),
		texttospeech.WithSpeechAudioCallback(func(audio []byte) {
			if p.onAudio != nil {
				p.onAudio(audio)
			}
			if err := p.audioOut.sendAudio(audio); err != nil {
				logger.WarnContext(ctx, "failed to queue narration audio for playback", "error", err)
			}
		}),
	)
	if err != nil {
		return &PlaybackError{Err: err}
	}

	if err := p.audioOut.drain(ctx); err != nil {
		return &PlaybackError{Err: err}
	}

	return nil
}

func (p *narrationPlayer) Close(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}

	switch client := p.client.(type) {
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
