package events

const (
	// KindStateChanged identifies a coordinator state transition.
	KindStateChanged Kind = "session.state_changed"
	// KindSessionReset identifies a session reset to its opening.
	KindSessionReset Kind = "session.reset"
)

// StateChanged carries both endpoints of a coordinator state transition.
// The endpoints are the state names so this package stays dependency-free.
type StateChanged struct {
	Base
	From string
	To   string
}

// NewStateChanged creates a state changed event.
func NewStateChanged(from, to string) StateChanged {
	return StateChanged{Base: NewBase(KindStateChanged), From: from, To: to}
}

// SessionReset marks a session restored to its opening story and seed
// choices.
type SessionReset struct{ Base }

// NewSessionReset creates a session reset event.
func NewSessionReset() SessionReset {
	return SessionReset{Base: NewBase(KindSessionReset)}
}
