package game

// State is the turn cycle position of a session. The machine cycles
// indefinitely; there is no terminal state.
type State string

const (
	// StateIdle waits for the player to request capture or submit text.
	StateIdle State = "idle"
	// StateListening streams microphone audio into speech recognition.
	StateListening State = "listening"
	// StateThinking waits for the story continuation to be generated.
	StateThinking State = "thinking"
	// StateNarrating plays the new story beat back to the player.
	StateNarrating State = "narrating"
)
