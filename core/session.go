package game

import (
	"sync"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

// Session holds the narrative state of one game. It is mutated only by the
// coordinator's runtime goroutine; everyone else reads snapshots.
type Session struct {
	mu sync.RWMutex

	state             State
	storyText         string
	choices           [2]string
	pendingTranscript string

	opening storygen.Opening
}

func newSession(opening storygen.Opening) *Session {
	session := &Session{opening: opening}
	session.resetToOpening()
	return session
}

func (s *Session) resetToOpening() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.storyText = s.opening.Story
	s.choices = [2]string{s.opening.FirstChoice, s.opening.SecondChoice}
	s.pendingTranscript = ""
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// setState records the transition and returns the previous state.
func (s *Session) setState(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.state
	s.state = state
	return previous
}

func (s *Session) StoryText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storyText
}

func (s *Session) Choices() [2]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.choices
}

func (s *Session) setPendingTranscript(transcript string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingTranscript = transcript
}

func (s *Session) clearPendingTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingTranscript = ""
}

// applyContinuation appends the beat and replaces the choices in one
// critical section so snapshots never pair a new beat with stale choices.
func (s *Session) applyContinuation(continuation *storygen.Continuation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storyText == "" {
		s.storyText = continuation.Story
	} else {
		s.storyText = s.storyText + "\n\n" + continuation.Story
	}
	s.choices = continuation.Choices
}

// Snapshot is a point-in-time view of session state.
type Snapshot struct {
	State             State
	StoryText         string
	Choices           [2]string
	PendingTranscript string
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		State:             s.state,
		StoryText:         s.storyText,
		Choices:           s.choices,
		PendingTranscript: s.pendingTranscript,
	}
}
