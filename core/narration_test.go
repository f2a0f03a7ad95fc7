package game

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	"github.com/codemaster-omvardhan/Echo-Tale/core/texttospeech"
)

type chunkedSynthesizerStub struct {
	chunks [][]byte
	err    error
}

func (s *chunkedSynthesizerStub) Speak(_ context.Context, _ string, opts ...texttospeech.SpeakOption) error {
	options := texttospeech.SpeakOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	for _, chunk := range s.chunks {
		if options.SpeechAudioCallback != nil {
			options.SpeechAudioCallback(chunk)
		}
	}
	return s.err
}

type playbackDeviceStub struct {
	mu         sync.Mutex
	sent       [][]byte
	drainCalls int
	drainErr   error
}

func (s *playbackDeviceStub) SendAudio(audio []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, append([]byte(nil), audio...))
	return nil
}

func (s *playbackDeviceStub) Drain(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainCalls++
	return s.drainErr
}

func (s *playbackDeviceStub) ClearBuffer() {}

func (s *playbackDeviceStub) PlaybackEncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultPlaybackEncodingInfo()
}

func (s *playbackDeviceStub) sentSnapshot() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.sent...)
}

func TestSpeakWithoutSynthesizerStillReportsNarration(t *testing.T) {
	player := newNarrationPlayer(newAudioOutput())

	recorder := &eventRecorder{}
	player.SetEventEmitter(recorder.record)

	if err := player.speak(context.Background(), "The gate creaks open."); err != nil {
		t.Fatalf("expected text-only narration to succeed, got %v", err)
	}
	if !recorder.has(events.KindNarrationStarted) {
		t.Fatalf("expected narration started event")
	}
}

func TestSpeakRoutesAudioToOutputAndCallback(t *testing.T) {
	device := &playbackDeviceStub{}
	output := newAudioOutput()
	output.set(device)

	player := newNarrationPlayer(output)
	player.set(&chunkedSynthesizerStub{chunks: [][]byte{{0x01}, {0x02}, {0x03}}})

	var observed [][]byte
	player.setAudioCallback(func(audio []byte) {
		observed = append(observed, audio)
	})

	if err := player.speak(context.Background(), "Thunder rolls."); err != nil {
		t.Fatalf("expected narration to succeed, got %v", err)
	}

	sent := device.sentSnapshot()
	if len(sent) != 3 {
		t.Fatalf("expected three chunks at the playback device, got %d", len(sent))
	}
	for i, want := range [][]byte{{0x01}, {0x02}, {0x03}} {
		if !bytes.Equal(sent[i], want) {
			t.Fatalf("expected chunk %d to be %v, got %v", i, want, sent[i])
		}
	}
	if len(observed) != 3 {
		t.Fatalf("expected the audio callback to observe every chunk, got %d", len(observed))
	}
	if device.drainCalls != 1 {
		t.Fatalf("expected a single drain, got %d", device.drainCalls)
	}
}

func TestSpeakWrapsSynthesisError(t *testing.T) {
	player := newNarrationPlayer(newAudioOutput())
	player.set(&chunkedSynthesizerStub{err: errors.New("connection refused")})

	err := player.speak(context.Background(), "Thunder rolls.")
	playbackErr := &PlaybackError{}
	if !errors.As(err, &playbackErr) {
		t.Fatalf("expected PlaybackError, got %v", err)
	}
}

func TestSpeakWrapsDrainError(t *testing.T) {
	device := &playbackDeviceStub{drainErr: errors.New("device lost")}
	output := newAudioOutput()
	output.set(device)

	player := newNarrationPlayer(output)
	player.set(&chunkedSynthesizerStub{chunks: [][]byte{{0x01}}})

	err := player.speak(context.Background(), "Thunder rolls.")
	playbackErr := &PlaybackError{}
	if !errors.As(err, &playbackErr) {
		t.Fatalf("expected PlaybackError, got %v", err)
	}
}
