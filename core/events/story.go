package events

const (
	// KindStoryAdvanced identifies an applied continuation.
	KindStoryAdvanced Kind = "story.advanced"
)

// StoryAdvanced carries the newly applied story beat and the new choice pair.
type StoryAdvanced struct {
	Base
	Beat    string
	Choices [2]string
}

// NewStoryAdvanced creates a story advanced event.
func NewStoryAdvanced(beat string, choices [2]string) StoryAdvanced {
	return StoryAdvanced{Base: NewBase(KindStoryAdvanced), Beat: beat, Choices: choices}
}
