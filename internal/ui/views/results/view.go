package results

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "quizforge/internal/modules/session/dto"
	"quizforge/internal/ui/theme"
)

const pageSize = 200

// Port lists recorded results, newest first.
type Port interface {
	Results(ctx context.Context, limit int) ([]sessiondto.ResultOutput, error)
}

type LoadedMsg struct {
	Results []sessiondto.ResultOutput
	Err     error
}

type resultItem struct {
	result sessiondto.ResultOutput
}

func (i resultItem) Title() string {
	name := i.result.Name
	if name == "" {
		name = "(anonymous)"
	}
	return fmt.Sprintf("%s  %d/%d", name, i.result.Correct, i.result.Total)
}

func (i resultItem) Description() string {
	return i.result.FinishedAt.Format("2006-01-02 15:04") + "  " + filepath.Base(i.result.TestPath)
}

func (i resultItem) FilterValue() string { return i.result.Name + " " + i.result.TestPath }

// Model lists past sessions beside the details of the selected one.
type Model struct {
	port    Port
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Results"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, preview: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

// Reload fetches the results again; the returned command yields LoadedMsg.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Filtering reports whether the list's search filter has the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Results: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Results"
		items := make([]list.Item, len(msg.Results))
		for i, r := range msg.Results {
			items[i] = resultItem{result: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.ResetSelected()
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prev := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prev {
			m.preview.SetContent(m.renderDetail())
		}
		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading results…")
	}
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.preview.Width = m.width - listW - 6
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(resultItem)
	if !ok {
		return theme.Muted.Render("No results yet. Finish a test to record one.")
	}
	r := item.result
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("test:     ") + r.TestPath + "\n")
	sb.WriteString(theme.Muted.Render("finished: ") + r.FinishedAt.Format("2006-01-02 15:04:05") + "\n\n")
	sb.WriteString(fmt.Sprintf("Correct answers: %d of %d\n", r.Correct, r.Answered))
	sb.WriteString(fmt.Sprintf("Questions answered: %d of %d\n", r.Answered, r.Total))
	sb.WriteString(fmt.Sprintf("Seconds used: %d of %d\n", r.SecondsUsed, r.Budget))
	if r.Expired {
		sb.WriteString("\n" + theme.Bad.Render("time ran out") + "\n")
	}
	if r.LogPath != "" {
		sb.WriteString("\n" + theme.Muted.Render("log: ") + r.LogPath + "\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		results, err := m.port.Results(context.Background(), pageSize)
		return LoadedMsg{Results: results, Err: err}
	}
}
