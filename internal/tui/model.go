// Package tui renders the game in the terminal: the story so far, the two
// open choices, live capture feedback, and the turn status.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	game "github.com/codemaster-omvardhan/Echo-Tale/core"
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
)

// Coordinator is the slice of the game coordinator the TUI drives.
type Coordinator interface {
	RequestCapture()
	CancelCapture()
	SubmitUtterance(text string)
	Reset()
	Snapshot() game.Snapshot
}

// EventMsg carries a coordinator event into the program. The runner feeds
// these through Program.Send from the coordinator's event callback.
type EventMsg struct {
	Event events.Event
}

type Model struct {
	coordinator Coordinator

	keys   keyMap
	styles styles

	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	snapshot game.Snapshot
	interim  string
	status   string

	width  int
	height int
	ready  bool
}

func NewModel(coordinator Coordinator) Model {
	return Model{
		coordinator: coordinator,
		keys:        defaultKeyMap(),
		styles:      defaultStyles(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Points)),
		help:        help.New(),
		snapshot:    coordinator.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Talk):
			switch m.snapshot.State {
			case game.StateIdle:
				m.coordinator.RequestCapture()
			case game.StateListening:
				m.coordinator.CancelCapture()
			}
			return m, nil

		case key.Matches(msg, m.keys.ChoiceOne):
			m.coordinator.SubmitUtterance(m.snapshot.Choices[0])
			return m, nil

		case key.Matches(msg, m.keys.ChoiceTwo):
			m.coordinator.SubmitUtterance(m.snapshot.Choices[1])
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.coordinator.Reset()
			return m, nil
		}

	case EventMsg:
		return m.handleEvent(msg.Event)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleEvent(event events.Event) (tea.Model, tea.Cmd) {
	m.snapshot = m.coordinator.Snapshot()

	switch event := event.(type) {
	case events.CaptureStarted:
		m.interim = ""
		m.status = ""
	case events.CaptureInterimTranscript:
		m.interim = event.Transcript
	case events.CaptureTranscriptFinal:
		m.interim = event.Transcript
	case events.CaptureEnded:
		m.interim = ""
		m.status = "Heard nothing; press space to try again."
	case events.CaptureFailed:
		m.interim = ""
		m.status = fmt.Sprintf("Capture failed: %v", event.Err)
	case events.TurnStarted:
		m.status = ""
	case events.TurnFallback:
		m.status = "The storyteller lost the thread for a moment."
	case events.NarrationFailed:
		m.status = fmt.Sprintf("Narration failed: %v", event.Err)
	case events.StoryAdvanced:
		m.interim = ""
		m.refreshStory()
		m.viewport.GotoBottom()
	case events.SessionReset:
		m.interim = ""
		m.status = ""
		m.refreshStory()
		m.viewport.GotoTop()
	}

	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Starting up..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	)
}

func (m *Model) resize() {
	chromeHeight := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
	viewportHeight := m.height - chromeHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}
	m.refreshStory()
}

func (m *Model) refreshStory() {
	m.snapshot = m.coordinator.Snapshot()

	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}
	m.viewport.SetContent(m.styles.Story.Render(wordwrap.String(m.snapshot.StoryText, width)))
}

func (m Model) headerView() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render("Echo Tale"),
		" ",
		m.stateBadge(),
	) + "\n"
}

func (m Model) stateBadge() string {
	switch m.snapshot.State {
	case game.StateListening:
		return m.styles.BadgeListening.Render("LISTENING")
	case game.StateThinking:
		return m.styles.BadgeThinking.Render(m.spinner.View() + " THINKING")
	case game.StateNarrating:
		return m.styles.BadgeNarrating.Render(m.spinner.View() + " NARRATING")
	default:
		return m.styles.BadgeIdle.Render("IDLE")
	}
}

func (m Model) footerView() string {
	sections := []string{}

	if m.snapshot.State == game.StateListening {
		heard := "..."
		if m.interim != "" {
			heard = m.interim
		}
		sections = append(sections, m.styles.Interim.Render("you: "+heard))
	}

	sections = append(sections, m.choicesView())

	if m.status != "" {
		sections = append(sections, m.styles.Status.Render(m.status))
	}

	sections = append(sections, m.styles.Help.Render(m.help.View(m.keys)))

	return "\n" + strings.Join(sections, "\n")
}

func (m Model) choicesView() string {
	first := m.styles.ChoiceKey.Render(" 1.") + " " + m.styles.ChoiceText.Render(m.snapshot.Choices[0])
	second := m.styles.ChoiceKey.Render(" 2.") + " " + m.styles.ChoiceText.Render(m.snapshot.Choices[1])
	return lipgloss.JoinVertical(lipgloss.Left, first, second)
}
