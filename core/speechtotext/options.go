// Package speechtotext defines the option surface shared by speech
// recognition clients.
package speechtotext

import "github.com/codemaster-omvardhan/Echo-Tale/core/audio"

type TranscriptionOptions struct {
	// Language is the BCP-47 locale the recognizer should transcribe in.
	Language string

	// InterimTranscriptionCallback is called with the current unfinalized
	// transcript segment while speech is in progress.
	InterimTranscriptionCallback func(transcript string)
	// TranscriptionCallback is called with each finalized transcript segment.
	// Segments never change once delivered.
	TranscriptionCallback func(transcript string)

	// SpeechStartedCallback is called when the recognizer detects speech.
	SpeechStartedCallback func()
	// UtteranceEndCallback is called when the recognizer decides the current
	// utterance is over. Finalized segments delivered before this call make
	// up the utterance.
	UtteranceEndCallback func()
	// ClosedCallback is called exactly once when the transcription stream
	// ends. A nil error means the stream closed cleanly.
	ClosedCallback func(err error)

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

// WithLanguage sets the locale the recognizer transcribes in.
func WithLanguage(language string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if language != "" {
			o.Language = language
		}
	}
}

func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithUtteranceEndCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.UtteranceEndCallback = callback
	}
}

func WithClosedCallback(callback func(err error)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.ClosedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
