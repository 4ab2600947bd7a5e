package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizforge/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const maxHistory = 20

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"test:new",
	"test:open <path>",
	"test:save [path]",
	"test:launch [path]",
	"test:close",
	"settings:save <seconds> <dir>",
	"settings:show",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
// Submitted commands are kept so up/down can recall them.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "test:open quiz.json"
	ti.CharLimit = 512
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) History() []string { return append([]string(nil), p.history...) }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.remember(val)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.recall > 0 {
				p.recall--
				p.input.SetValue(p.history[p.recall])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.recall < len(p.history)-1 {
				p.recall++
				p.input.SetValue(p.history[p.recall])
			} else {
				p.recall = len(p.history)
				p.input.SetValue("")
			}
			p.input.CursorEnd()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matching := matchHints(p.input.Value()); len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(val string) {
	if val == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == val {
		return
	}
	p.history = append(p.history, val)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

// matchHints filters hints by the command word typed so far.
func matchHints(input string) []string {
	word := strings.ToLower(strings.TrimSpace(input))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	var out []string
	for _, h := range paletteHints {
		if word == "" || strings.HasPrefix(h, word) {
			out = append(out, h)
		}
	}
	return out
}
