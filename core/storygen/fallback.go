package storygen

const fallbackStory = "The mists thicken for a moment and the storyteller pauses, gathering the thread of the tale. When the air clears, the same paths still lie before you."

// FallbackContinuation is the beat used when generation fails. It re-offers
// the choices the player already had so the game stays playable.
func FallbackContinuation(choices [2]string) *Continuation {
	return &Continuation{Story: fallbackStory, Choices: choices}
}
