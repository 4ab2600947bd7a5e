package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "quizforge/internal/modules/session/dto"
	apperrors "quizforge/internal/platform/errors"
	"quizforge/internal/ui/theme"
)

const (
	stateAwaiting  = "awaiting-settings"
	stateRunning   = "running"
	stateCompleted = "completed"
)

// Port is the part of the session use-case the player drives.
type Port interface {
	Load(ctx context.Context, testPath string) (sessiondto.SnapshotOutput, error)
	Begin(ctx context.Context, name string) (sessiondto.SnapshotOutput, error)
	Tick(ctx context.Context) (sessiondto.TickOutput, error)
	Answer(ctx context.Context, choice int) (sessiondto.AnswerOutput, error)
	Move(ctx context.Context, delta int) (sessiondto.SnapshotOutput, error)
	Abandon(ctx context.Context) error
}

// StatusMsg carries a one-line outcome for the root status bar.
type StatusMsg struct{ Text string }

// TickMsg is the one-second countdown. Ticks from an earlier run are
// dropped by comparing Run.
type TickMsg struct {
	Run  int
	Time time.Time
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Prev   key.Binding
	Next   key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "choose")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑/↓", "choose")),
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "prev/next question")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "prev/next question")),
	}
}

// Model is the test player. cursor is the highlighted choice, -1 for none.
type Model struct {
	port     Port
	keys     KeyMap
	snap     sessiondto.SnapshotOutput
	loaded   bool
	name     textinput.Model
	cursor   int
	run      int
	interval time.Duration
	width    int
	height   int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.Prompt = "Name: "
	ti.CharLimit = 64
	return Model{port: port, keys: DefaultKeys(), name: ti, cursor: -1, interval: time.Second}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Keys() KeyMap { return m.keys }

// Typing reports whether the name field has the keyboard.
func (m Model) Typing() bool { return m.loaded && m.snap.State == stateAwaiting }

func (m Model) Running() bool { return m.loaded && m.snap.State == stateRunning }

// Launch loads the test at path, dropping any session in progress.
func (m *Model) Launch(path string) tea.Cmd {
	snap, err := m.port.Load(context.Background(), path)
	if err != nil {
		if errors.Is(err, apperrors.ErrDamagedFile) {
			return status("File is damaged!")
		}
		return status("launch: " + err.Error())
	}
	m.run++
	m.snap = snap
	m.loaded = true
	m.cursor = -1
	m.name.SetValue("")
	return tea.Batch(m.name.Focus(), status(fmt.Sprintf("loaded %s (%d questions)", path, snap.Total)))
}

// Close abandons the session without recording a result.
func (m *Model) Close() {
	if !m.loaded {
		return
	}
	_ = m.port.Abandon(context.Background())
	m.run++
	m.loaded = false
	m.snap = sessiondto.SnapshotOutput{}
	m.name.Blur()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if msg.Run != m.run || !m.Running() {
			return m, nil
		}
		out, err := m.port.Tick(context.Background())
		if err != nil {
			return m, status("timer: " + err.Error())
		}
		m.snap = out.Snapshot
		if !out.Continue {
			return m, status("time is up")
		}
		return m, m.tick()

	case tea.KeyMsg:
		if !m.loaded {
			return m, nil
		}
		switch m.snap.State {
		case stateAwaiting:
			if key.Matches(msg, m.keys.Accept) {
				return m.begin()
			}
			var cmd tea.Cmd
			m.name, cmd = m.name.Update(msg)
			return m, cmd
		case stateRunning:
			return m.handleRunning(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Pane.Width(m.paneWidth()).Render(
			theme.Title.Render("Player") + "\n\n" +
				theme.Muted.Render("No test loaded. Use the palette: test:launch <path>"))
	}
	switch m.snap.State {
	case stateAwaiting:
		return m.renderAwaiting()
	case stateCompleted:
		return m.renderCompleted()
	}
	return m.renderRunning()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) begin() (Model, tea.Cmd) {
	snap, err := m.port.Begin(context.Background(), m.name.Value())
	if err != nil {
		return m, status("start: " + err.Error())
	}
	m.snap = snap
	m.name.Blur()
	m.cursor = -1
	return m, tea.Batch(m.tick(), status("test started"))
}

func (m Model) handleRunning(msg tea.KeyMsg) (Model, tea.Cmd) {
	choices := len(m.snap.Item.Choices)
	switch {
	case key.Matches(msg, m.keys.Up):
		if choices > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = choices - 1
			}
		}
	case key.Matches(msg, m.keys.Down):
		if choices > 0 {
			m.cursor = (m.cursor + 1) % choices
		}
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Next):
		delta := 1
		if key.Matches(msg, m.keys.Prev) {
			delta = -1
		}
		snap, err := m.port.Move(context.Background(), delta)
		if err != nil {
			return m, status(err.Error())
		}
		m.snap = snap
		m.cursor = -1
	case key.Matches(msg, m.keys.Accept):
		out, err := m.port.Answer(context.Background(), m.cursor+1)
		if err != nil {
			return m, status("answer: " + err.Error())
		}
		m.snap = out.Snapshot
		m.cursor = -1
		if m.snap.State == stateCompleted {
			return m, status("test completed")
		}
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	run := m.run
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg{Run: run, Time: t}
	})
}

func (m Model) paneWidth() int {
	if m.width < 40 {
		return 60
	}
	return m.width - 4
}

func (m Model) renderAwaiting() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.snap.TestPath) + "\n\n")
	sb.WriteString(fmt.Sprintf("Total questions: %d\n\n", m.snap.Total))
	sb.WriteString(m.name.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("enter starts the test"))
	return theme.PaneActive.Width(m.paneWidth()).Render(sb.String())
}

func (m Model) renderRunning() string {
	s := m.snap
	var sb strings.Builder

	seconds := fmt.Sprintf("Seconds left: %d", s.TimeLeft)
	if s.TimeLeft > s.PerQuestion {
		seconds = theme.Good.Render(seconds)
	} else {
		seconds = theme.Bad.Render(seconds)
	}
	sb.WriteString(seconds + "   ")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Questions left: %d   Total questions: %d", s.Remaining, s.Total)) + "\n\n")

	sb.WriteString(theme.Title.Render(s.Item.Prompt) + "\n\n")
	for i, c := range s.Item.Choices {
		line := fmt.Sprintf("%d) %s", i+1, c)
		if i == m.cursor {
			sb.WriteString(theme.Selected.Render("› "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("question %d of %d remaining", s.Current+1, s.Remaining)))
	return theme.PaneActive.Width(m.paneWidth()).Render(sb.String())
}

func (m Model) renderCompleted() string {
	s := m.snap
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render("TEST COMPLETED!") + "\n\n")
	if r := s.Result; r != nil {
		sb.WriteString(fmt.Sprintf("Correct answers: %d of %d\n", r.Correct, r.Answered))
		sb.WriteString(fmt.Sprintf("Questions answered: %d of %d\n", r.Answered, r.Total))
		sb.WriteString(fmt.Sprintf("Seconds used: %d of %d\n", r.SecondsUsed, r.Budget))
		if r.Expired {
			sb.WriteString("\n" + theme.Bad.Render("Time ran out; unanswered questions count as missed.") + "\n")
		}
		if r.LogPath != "" {
			sb.WriteString("\n" + theme.Muted.Render("Result saved to "+r.LogPath))
		}
	}
	return lipgloss.Place(m.paneWidth(), max(m.height-2, 10), lipgloss.Center, lipgloss.Center,
		theme.PaneActive.Render(sb.String()))
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}
