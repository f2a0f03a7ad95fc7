package audio

const (
	// DefaultSampleRate is the capture-side default, chosen to match what
	// speech recognition services expect.
	DefaultSampleRate = 16000
	// DefaultPlaybackSampleRate is the playback-side default for synthesized
	// speech.
	DefaultPlaybackSampleRate = 48000

	DefaultFormat = EncodingLinear16
)

// GetDefaultEncodingInfo returns the capture-side default encoding.
func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: DefaultFormat}
}

// GetDefaultPlaybackEncodingInfo returns the playback-side default encoding.
func GetDefaultPlaybackEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultPlaybackSampleRate, Format: DefaultFormat}
}

// EncodingInfo describes the raw audio format flowing between devices and
// speech services.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// SilenceValue returns the byte that encodes silence in this format.
func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

// BytesPerSecond returns the byte rate of a single channel.
func (e EncodingInfo) BytesPerSecond() int {
	return e.SampleRate * e.Format.ByteSize()
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
