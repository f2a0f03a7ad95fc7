package game

import (
	"testing"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

func TestApplyContinuationAppendsBeatAndReplacesChoices(t *testing.T) {
	session := newSession(storygen.Opening{
		Story:        "You stand at a crossroads.",
		FirstChoice:  "Go north",
		SecondChoice: "Go south",
	})

	session.applyContinuation(&storygen.Continuation{
		Story:   "The north road is muddy.",
		Choices: [2]string{"Wade through", "Cut across the field"},
	})

	snapshot := session.Snapshot()
	if want := "You stand at a crossroads.\n\nThe north road is muddy."; snapshot.StoryText != want {
		t.Fatalf("expected story %q, got %q", want, snapshot.StoryText)
	}
	if snapshot.Choices != [2]string{"Wade through", "Cut across the field"} {
		t.Fatalf("expected replaced choices, got %v", snapshot.Choices)
	}
}

func TestApplyContinuationWithoutHistoryOmitsSeparator(t *testing.T) {
	session := newSession(storygen.Opening{FirstChoice: "Left", SecondChoice: "Right"})

	session.applyContinuation(&storygen.Continuation{
		Story:   "A door appears.",
		Choices: [2]string{"Open it", "Knock"},
	})

	if story := session.StoryText(); story != "A door appears." {
		t.Fatalf("expected story without separator, got %q", story)
	}
}

func TestResetToOpeningRestoresEverything(t *testing.T) {
	session := newSession(storygen.Opening{
		Story:        "Opening line.",
		FirstChoice:  "One",
		SecondChoice: "Two",
	})

	session.setState(StateThinking)
	session.setPendingTranscript("go one")
	session.applyContinuation(&storygen.Continuation{
		Story:   "Another line.",
		Choices: [2]string{"Three", "Four"},
	})

	session.resetToOpening()

	snapshot := session.Snapshot()
	if snapshot.State != StateIdle {
		t.Fatalf("expected idle state, got %s", snapshot.State)
	}
	if snapshot.StoryText != "Opening line." {
		t.Fatalf("expected opening story, got %q", snapshot.StoryText)
	}
	if snapshot.Choices != [2]string{"One", "Two"} {
		t.Fatalf("expected opening choices, got %v", snapshot.Choices)
	}
	if snapshot.PendingTranscript != "" {
		t.Fatalf("expected cleared pending transcript, got %q", snapshot.PendingTranscript)
	}
}

func TestSetStateReturnsPrevious(t *testing.T) {
	session := newSession(storygen.DefaultOpening())

	if previous := session.setState(StateListening); previous != StateIdle {
		t.Fatalf("expected idle as previous state, got %s", previous)
	}
	if previous := session.setState(StateThinking); previous != StateListening {
		t.Fatalf("expected listening as previous state, got %s", previous)
	}
	if state := session.State(); state != StateThinking {
		t.Fatalf("expected thinking, got %s", state)
	}
}
