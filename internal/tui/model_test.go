package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	game "github.com/codemaster-omvardhan/Echo-Tale/core"
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
)

type coordinatorStub struct {
	snapshot game.Snapshot

	captureRequests int
	captureCancels  int
	resets          int
	submitted       []string
}

func (s *coordinatorStub) RequestCapture()             { s.captureRequests++ }
func (s *coordinatorStub) CancelCapture()              { s.captureCancels++ }
func (s *coordinatorStub) SubmitUtterance(text string) { s.submitted = append(s.submitted, text) }
func (s *coordinatorStub) Reset()                      { s.resets++ }
func (s *coordinatorStub) Snapshot() game.Snapshot     { return s.snapshot }

func newTestStub() *coordinatorStub {
	return &coordinatorStub{snapshot: game.Snapshot{
		State:     game.StateIdle,
		StoryText: "You stand at the mouth of a cave.",
		Choices:   [2]string{"Enter the cave", "Take the sunny path"},
	}}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTalkKeyTogglesCapture(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	updated, _ := m.Update(keyMsg(" "))
	m = updated.(Model)
	assert.Equal(t, 1, stub.captureRequests)
	assert.Equal(t, 0, stub.captureCancels)

	m.snapshot.State = game.StateListening
	_, _ = m.Update(keyMsg(" "))
	assert.Equal(t, 1, stub.captureRequests)
	assert.Equal(t, 1, stub.captureCancels)
}

func TestTalkKeyIgnoredWhileThinking(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)
	m.snapshot.State = game.StateThinking

	_, _ = m.Update(keyMsg(" "))
	assert.Equal(t, 0, stub.captureRequests)
	assert.Equal(t, 0, stub.captureCancels)
}

func TestChoiceKeysSubmitCurrentChoices(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	updated, _ := m.Update(keyMsg("1"))
	m = updated.(Model)
	_, _ = m.Update(keyMsg("2"))

	require.Len(t, stub.submitted, 2)
	assert.Equal(t, "Enter the cave", stub.submitted[0])
	assert.Equal(t, "Take the sunny path", stub.submitted[1])
}

func TestResetKeyRestartsStory(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	_, _ = m.Update(keyMsg("r"))
	assert.Equal(t, 1, stub.resets)
}

func TestQuitKeyReturnsQuit(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestInterimEventShowsHeardLine(t *testing.T) {
	stub := newTestStub()
	stub.snapshot.State = game.StateListening
	m := NewModel(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	updated, _ = m.Update(EventMsg{Event: events.NewCaptureInterimTranscript("enter the")})
	m = updated.(Model)

	assert.Contains(t, m.View(), "enter the")
}

func TestStoryAdvancedShowsNewBeat(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	stub.snapshot.StoryText = "You stand at the mouth of a cave.\n\nThe dark swallows your torchlight."
	stub.snapshot.Choices = [2]string{"Press deeper", "Turn back"}
	updated, _ = m.Update(EventMsg{Event: events.NewStoryAdvanced("The dark swallows your torchlight.", stub.snapshot.Choices)})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "The dark swallows your torchlight.")
	assert.Contains(t, view, "Press deeper")
	assert.Contains(t, view, "Turn back")
}

func TestViewShowsTitleStateAndChoices(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Echo Tale")
	assert.Contains(t, view, "IDLE")
	assert.Contains(t, view, "Enter the cave")
	assert.Contains(t, view, "Take the sunny path")
}

func TestCaptureFailedShowsStatus(t *testing.T) {
	stub := newTestStub()
	m := NewModel(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	updated, _ = m.Update(EventMsg{Event: events.NewCaptureFailed(assert.AnError)})
	m = updated.(Model)

	assert.Contains(t, m.View(), "Capture failed")
}
