package events

const (
	// KindTurnStarted identifies an accepted utterance entering generation.
	KindTurnStarted Kind = "turn.started"
	// KindTurnFallback identifies a turn that engaged the fallback continuation.
	KindTurnFallback Kind = "turn.fallback_engaged"
	// KindTurnCompleted identifies a finished turn.
	KindTurnCompleted Kind = "turn.completed"
)

// TurnStarted marks the start of generation for an accepted utterance.
type TurnStarted struct {
	Base
	Utterance string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(utterance string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), Utterance: utterance}
}

// TurnFallback marks a turn whose generation failed and was replaced by the
// fallback continuation. Err is the generation failure that triggered it.
type TurnFallback struct {
	Base
	Err error
}

// NewTurnFallback creates a turn fallback event.
func NewTurnFallback(err error) TurnFallback {
	return TurnFallback{Base: NewBase(KindTurnFallback), Err: err}
}

// TurnCompleted marks a turn that ran to the end of its cycle.
type TurnCompleted struct{ Base }

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted() TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted)}
}
