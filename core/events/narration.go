package events

const (
	// KindNarrationStarted identifies the start of playback for a story beat.
	KindNarrationStarted Kind = "narration.started"
	// KindNarrationEnded identifies completed playback.
	KindNarrationEnded Kind = "narration.ended"
	// KindNarrationFailed identifies playback that reported an error.
	KindNarrationFailed Kind = "narration.failed"
)

// NarrationStarted marks the start of playback and carries the spoken text.
type NarrationStarted struct {
	Base
	Text string
}

// NewNarrationStarted creates a narration started event.
func NewNarrationStarted(text string) NarrationStarted {
	return NarrationStarted{Base: NewBase(KindNarrationStarted), Text: text}
}

// NarrationEnded marks completed playback.
type NarrationEnded struct{ Base }

// NewNarrationEnded creates a narration ended event.
func NewNarrationEnded() NarrationEnded {
	return NarrationEnded{Base: NewBase(KindNarrationEnded)}
}

// NarrationFailed marks playback that reported an error. The story update
// applied before playback is kept.
type NarrationFailed struct {
	Base
	Err error
}

// NewNarrationFailed creates a narration failed event.
func NewNarrationFailed(err error) NarrationFailed {
	return NarrationFailed{Base: NewBase(KindNarrationFailed), Err: err}
}
