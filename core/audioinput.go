package game

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
)

// audioInput wraps the configured AudioInput capture device.
type audioInput struct {
	client AudioInput

	capturing atomic.Bool
}

func newAudioInput() *audioInput {
	return &audioInput{}
}

func (i *audioInput) set(client AudioInput) {
	if i == nil {
		return
	}

	i.client = client
}

func (i *audioInput) isConfigured() bool {
	return i != nil && i.client != nil
}

// start begins feeding device audio into onAudio. Without a configured
// device it is a no-op so audio can be fed externally through SendAudio.
func (i *audioInput) start(ctx context.Context, onAudio func(audio []byte)) error {
	if !i.isConfigured() {
		return nil
	}

	if !i.capturing.CompareAndSwap(false, true) {
		return errors.New("audio input device is already capturing")
	}

	if err := i.client.StartCapture(ctx, onAudio); err != nil {
		i.capturing.Store(false)
		return err
	}

	return nil
}

func (i *audioInput) stop() error {
	if !i.isConfigured() {
		return nil
	}

	if !i.capturing.CompareAndSwap(true, false) {
		return nil
	}

	return i.client.StopCapture()
}

func (i *audioInput) encodingInfo() audio.EncodingInfo {
	if !i.isConfigured() {
		return audio.GetDefaultEncodingInfo()
	}

	encodingInfo := i.client.CaptureEncodingInfo()
	if encodingInfo.IsZero() {
		return audio.GetDefaultEncodingInfo()
	}

	return encodingInfo
}

func (i *audioInput) Close(ctx context.Context) error {
	if i == nil || i.client == nil {
		return nil
	}

	switch client := i.client.(type) {
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
