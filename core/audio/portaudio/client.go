// Package portaudio provides an alternate microphone and speaker backend for
// systems where the default backend misbehaves. Capture and playback share
// one duplex stream at the capture sample rate.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
	"github.com/gordonklaus/portaudio"
)

type Client struct {
	bufferSize    int
	stream        *portaudio.Stream
	leftoverAudio []byte

	in  []int16
	out []int16

	onAudio   func(audio []byte)
	capturing bool
	stopCh    chan struct{}

	mu        sync.Mutex
	closeOnce sync.Once
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, audio.DefaultSampleRate, bufferSize, in, out)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
		out:        out,
	}, nil
}

func (c *Client) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.mu.Lock()
	if c.capturing {
		c.mu.Unlock()
		return fmt.Errorf("capture already active")
	}
	c.capturing = true
	c.onAudio = onAudio
	c.stopCh = make(chan struct{})
	stopCh := c.stopCh
	c.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			default:
				if err := c.stream.Read(); err != nil {
					continue
				}

				audioBuffer := bytes.Buffer{}
				_ = binary.Write(&audioBuffer, binary.LittleEndian, c.in)
				c.mu.Lock()
				onAudio := c.onAudio
				c.mu.Unlock()
				if onAudio != nil {
					onAudio(audioBuffer.Bytes())
				}
			}
		}
	}()

	return nil
}

func (c *Client) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.capturing {
		return nil
	}

	c.capturing = false
	c.onAudio = nil
	close(c.stopCh)
	return nil
}

func (c *Client) SendAudio(audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bufferSize := c.bufferSize * 2

	audio = append(c.leftoverAudio, audio...)
	for i := 0; i < len(audio)/bufferSize+1; i++ {
		if (i+1)*bufferSize > len(audio) {
			c.leftoverAudio = make([]byte, len(audio)-i*bufferSize)
			copy(c.leftoverAudio, audio[i*bufferSize:])
			break
		}

		_ = binary.Read(bytes.NewBuffer(audio[i*bufferSize:(i+1)*bufferSize]), binary.LittleEndian, c.out)
		_ = c.stream.Write()
	}

	return nil
}

// Drain plays out whatever remains in the leftover buffer. Writes block on
// the stream, so returning means the audio was handed to the device.
func (c *Client) Drain(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bufferSize := c.bufferSize * 2

	audio := c.leftoverAudio
	c.leftoverAudio = nil
	if len(audio) == 0 {
		return nil
	}

	// Pad the tail up to a full buffer so the last samples are not stuck
	// waiting for a future write.
	if rem := len(audio) % bufferSize; rem != 0 {
		audio = append(audio, make([]byte, bufferSize-rem)...)
	}

	for i := 0; i < len(audio)/bufferSize; i++ {
		_ = binary.Read(bytes.NewBuffer(audio[i*bufferSize:(i+1)*bufferSize]), binary.LittleEndian, c.out)
		_ = c.stream.Write()
	}
	return nil
}

func (c *Client) ClearBuffer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leftoverAudio = make([]byte, 0)
}

func (c *Client) CaptureEncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
	}
}

func (c *Client) PlaybackEncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
	}
}

// Close is safe to call more than once; the same device usually serves as
// both the input and the output client.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		_ = c.StopCapture()
		_ = c.stream.Close()
		_ = portaudio.Terminate()
	})
}
