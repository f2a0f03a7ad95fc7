// Package texttospeech holds the options shared by speech synthesis
// providers.
package texttospeech

import "github.com/codemaster-omvardhan/Echo-Tale/core/audio"

type SpeakOptions struct {
	// SpeechAudioCallback receives synthesized audio chunks in order as
	// they arrive.
	SpeechAudioCallback func(audio []byte)

	EncodingInfo audio.EncodingInfo
}

type SpeakOption func(*SpeakOptions)

// WithSpeechAudioCallback sets the callback that receives synthesized audio
// chunks.
func WithSpeechAudioCallback(callback func(audio []byte)) SpeakOption {
	return func(options *SpeakOptions) {
		options.SpeechAudioCallback = callback
	}
}

// WithEncodingInfo requests the encoding audio chunks should be synthesized
// in. Zero values are ignored so providers keep their defaults.
func WithEncodingInfo(encodingInfo audio.EncodingInfo) SpeakOption {
	return func(options *SpeakOptions) {
		if encodingInfo.IsZero() {
			return
		}
		options.EncodingInfo = encodingInfo
	}
}
