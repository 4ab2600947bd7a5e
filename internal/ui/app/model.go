package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quizdto "quizforge/internal/modules/quiz/dto"
	sessiondto "quizforge/internal/modules/session/dto"
	settingsdto "quizforge/internal/modules/settings/dto"
	"quizforge/internal/ui/components"
	"quizforge/internal/ui/theme"
	editorview "quizforge/internal/ui/views/editor"
	playerview "quizforge/internal/ui/views/player"
	resultsview "quizforge/internal/ui/views/results"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type quizPort interface {
	NewDraft(ctx context.Context) (quizdto.DraftOutput, error)
	OpenDraft(ctx context.Context, path string) (quizdto.DraftOutput, error)
	SaveDraft(ctx context.Context, path string) (quizdto.DraftOutput, error)
	Draft(ctx context.Context) (quizdto.DraftOutput, error)
	Edit(ctx context.Context, input quizdto.EditInput) (quizdto.DraftOutput, error)
}

type sessionPort interface {
	Load(ctx context.Context, testPath string) (sessiondto.SnapshotOutput, error)
	Begin(ctx context.Context, name string) (sessiondto.SnapshotOutput, error)
	Tick(ctx context.Context) (sessiondto.TickOutput, error)
	Answer(ctx context.Context, choice int) (sessiondto.AnswerOutput, error)
	Move(ctx context.Context, delta int) (sessiondto.SnapshotOutput, error)
	Abandon(ctx context.Context) error
	Results(ctx context.Context, limit int) ([]sessiondto.ResultOutput, error)
}

type settingsPort interface {
	Show(ctx context.Context) (settingsdto.SettingsOutput, error)
	Save(ctx context.Context, seconds int, dir string) (settingsdto.SettingsOutput, error)
}

// ─── screens ─────────────────────────────────────────────────────────────────

type Screen int

const (
	ScreenEditor Screen = iota
	ScreenPlayer
	ScreenResults
	screenCount
)

var screenLabels = [screenCount]string{"Editor", "Player", "Results"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Editor  key.Binding
	Player  key.Binding
	Results key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding

	editor editorview.KeyMap
	player playerview.KeyMap
}

func defaultKeys() keyMap {
	return keyMap{
		Editor:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "editor")),
		Player:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "player")),
		Results: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "results")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		editor:  editorview.DefaultKeys(),
		player:  playerview.DefaultKeys(),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Editor, k.Player, k.Results, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	e, p := k.editor, k.player
	return [][]key.Binding{
		{e.AddQuestion, e.DeleteQuestion, e.AddAnswer, e.DeleteAnswer, e.MarkCorrect},
		{e.NextField, e.PrevField, e.PrevQuestion, e.NextQuestion, e.Save, e.Leave, e.Enter},
		{p.Up, p.Accept, p.Prev},
		{k.Editor, k.Player, k.Results, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes input between the editor and
// player screens and owns the help overlay, the command palette and the
// status bar.
type Model struct {
	settings settingsPort

	editor  editorview.Model
	player  playerview.Model
	results resultsview.Model

	screen   Screen
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	pending  tea.Cmd
	width    int
	height   int
}

func NewModel(quiz quizPort, session sessionPort, settings settingsPort, start Screen) Model {
	return Model{
		settings: settings,
		editor:   editorview.New(quiz),
		player:   playerview.New(session),
		results:  resultsview.New(session),
		screen:   start,
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
		status:   "ready",
	}
}

// Launch loads a test into the player and switches to it.
func (m *Model) Launch(path string) tea.Cmd {
	m.screen = ScreenPlayer
	return m.player.Launch(path)
}

// Preload launches path before the program starts; its command runs from
// Init.
func (m *Model) Preload(path string) {
	m.pending = m.Launch(path)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), m.player.Init(), m.results.Init(), m.pending)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case editorview.StatusMsg:
		m.status = msg.Text
		return m, nil

	case playerview.StatusMsg:
		m.status = msg.Text
		return m, nil

	case playerview.TickMsg:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd

	case resultsview.LoadedMsg:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// Global bindings yield while a form field has the keyboard.
		if !m.typing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.showHelp = true
				return m, nil
			case key.Matches(msg, m.keys.Palette):
				return m, m.palette.Open()
			}
		}
		switch {
		case key.Matches(msg, m.keys.Editor):
			m.screen = ScreenEditor
			return m, nil
		case key.Matches(msg, m.keys.Player):
			m.screen = ScreenPlayer
			return m, nil
		case key.Matches(msg, m.keys.Results):
			m.screen = ScreenResults
			return m, m.results.Reload()
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenEditor:
		m.editor, cmd = m.editor.Update(msg)
	case ScreenPlayer:
		m.player, cmd = m.player.Update(msg)
	case ScreenResults:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.FullHelpView(m.keys.FullHelp()))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.screen == ScreenPlayer:
		content = m.player.View()
	case m.screen == ScreenResults:
		content = m.results.View()
	default:
		content = m.editor.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, screenCount)
	for i := Screen(0); i < screenCount; i++ {
		label := screenLabels[i]
		if i == m.screen {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "quizforge  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.player.Running() {
		left = theme.Hot.Render("● test running") + "  " + left
	}
	right := theme.Muted.Render("f1/f2/f3:screens  esc then ?:help  :::palette  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "test:new":
		m.screen = ScreenEditor
		return m, m.editor.NewTest()

	case "test:open":
		if arg == "" {
			m.status = "usage: test:open <path>"
			return m, nil
		}
		m.screen = ScreenEditor
		return m, m.editor.Open(arg)

	case "test:save":
		return m, m.editor.Save(arg)

	case "test:launch":
		path := arg
		if path == "" {
			draft := m.editor.Draft()
			if draft.Path == "" || !draft.Saved {
				m.status = "save the test before launching it"
				return m, nil
			}
			path = draft.Path
		}
		return m, m.Launch(path)

	case "test:close":
		m.player.Close()
		m.status = "test closed, nothing recorded"
		return m, nil

	case "settings:save":
		if len(parts) < 3 {
			m.status = "usage: settings:save <seconds> <dir>"
			return m, nil
		}
		seconds, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid seconds: " + parts[1]
			return m, nil
		}
		dir := strings.TrimSpace(strings.TrimPrefix(arg, parts[1]))
		out, err := m.settings.Save(context.Background(), seconds, dir)
		if err != nil {
			m.status = "settings: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("settings saved: %ds per question, results in %s", out.TimePerQuestion, out.ResultsDir)
		return m, nil

	case "settings:show":
		out, err := m.settings.Show(context.Background())
		if err != nil {
			m.status = "settings: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%ds per question, results in %s", out.TimePerQuestion, out.ResultsDir)
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) typing() bool {
	switch m.screen {
	case ScreenEditor:
		return m.editor.Typing()
	case ScreenPlayer:
		return m.player.Typing()
	case ScreenResults:
		return m.results.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.editor, _ = m.editor.Update(sz)
	m.player, _ = m.player.Update(sz)
	m.results, _ = m.results.Update(sz)
}
