package game

import (
	"context"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
)

// audioOutput wraps the configured AudioOutput playback device. All methods
// degrade to no-ops without a device so narration can run text-only.
type audioOutput struct {
	client AudioOutput
}

func newAudioOutput() *audioOutput {
	return &audioOutput{}
}

func (o *audioOutput) set(client AudioOutput) {
	if o == nil {
		return
	}

	o.client = client
}

func (o *audioOutput) isConfigured() bool {
	return o != nil && o.client != nil
}

func (o *audioOutput) sendAudio(audio []byte) error {
	if !o.isConfigured() {
		return nil
	}

	return o.client.SendAudio(audio)
}

// drain blocks until queued playback audio has been consumed.
func (o *audioOutput) drain(ctx context.Context) error {
	if !o.isConfigured() {
		return nil
	}

	return o.client.Drain(ctx)
}

func (o *audioOutput) clearBuffer() {
	if !o.isConfigured() {
		return
	}

	o.client.ClearBuffer()
}

func (o *audioOutput) encodingInfo() audio.EncodingInfo {
	if !o.isConfigured() {
		return audio.GetDefaultPlaybackEncodingInfo()
	}

	encodingInfo := o.client.PlaybackEncodingInfo()
	if encodingInfo.IsZero() {
		return audio.GetDefaultPlaybackEncodingInfo()
	}

	return encodingInfo
}

func (o *audioOutput) Close(ctx context.Context) error {
	if o == nil || o.client == nil {
		return nil
	}

	switch client := o.client.(type) {
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
