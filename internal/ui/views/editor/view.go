package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quizdto "quizforge/internal/modules/quiz/dto"
	"quizforge/internal/ui/theme"
)

// Port is the part of the quiz use-case the editor drives.
type Port interface {
	NewDraft(ctx context.Context) (quizdto.DraftOutput, error)
	OpenDraft(ctx context.Context, path string) (quizdto.DraftOutput, error)
	SaveDraft(ctx context.Context, path string) (quizdto.DraftOutput, error)
	Draft(ctx context.Context) (quizdto.DraftOutput, error)
	Edit(ctx context.Context, input quizdto.EditInput) (quizdto.DraftOutput, error)
}

// StatusMsg carries a one-line outcome for the root status bar.
type StatusMsg struct{ Text string }

type KeyMap struct {
	AddQuestion    key.Binding
	DeleteQuestion key.Binding
	AddAnswer      key.Binding
	DeleteAnswer   key.Binding
	MarkCorrect    key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	PrevQuestion   key.Binding
	NextQuestion   key.Binding
	Save           key.Binding
	Leave          key.Binding
	Enter          key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		AddQuestion:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add question")),
		DeleteQuestion: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete question")),
		AddAnswer:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add answer")),
		DeleteAnswer:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "delete answer")),
		MarkCorrect:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "mark correct")),
		NextField:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		PrevQuestion:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev question")),
		NextQuestion:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "next question")),
		Save:           key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Leave:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form")),
		Enter:          key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter", "edit form")),
	}
}

// Model is the test editor: a question list beside a form holding the
// prompt and answer fields of the selected question.
type Model struct {
	port    Port
	keys    KeyMap
	draft   quizdto.DraftOutput
	prompt  textinput.Model
	answers []textinput.Model
	focus   int // 0 prompt, 1..n answers
	editing bool
	width   int
	height  int
}

func New(port Port) Model {
	m := Model{port: port, keys: DefaultKeys(), editing: true}
	if draft, err := port.Draft(context.Background()); err == nil {
		m.load(draft)
	}
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Keys() KeyMap { return m.keys }

// Typing reports whether a form field has the keyboard; global bindings
// must yield while it does.
func (m Model) Typing() bool { return m.editing }

func (m Model) Draft() quizdto.DraftOutput { return m.draft }

func (m *Model) NewTest() tea.Cmd {
	out, err := m.port.NewDraft(context.Background())
	if err != nil {
		return status("new test: " + err.Error())
	}
	m.load(out)
	return status("new test")
}

// Open replaces the form with the test at path. A damaged file leaves the
// form as it was.
func (m *Model) Open(path string) tea.Cmd {
	out, err := m.port.OpenDraft(context.Background(), path)
	if err != nil {
		return status("File is damaged!")
	}
	m.load(out)
	return status(fmt.Sprintf("opened %s (%d questions)", path, len(out.Questions)))
}

// Save writes the draft to path, or to the file it came from when path is
// empty.
func (m *Model) Save(path string) tea.Cmd {
	if path == "" && m.draft.Path == "" {
		return status("usage: test:save <path>")
	}
	out, err := m.port.SaveDraft(context.Background(), path)
	if err != nil {
		return status("save failed: " + err.Error())
	}
	m.draft = out
	return status("saved " + out.Path)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case tea.KeyMsg:
		if !m.editing {
			if key.Matches(msg, m.keys.Enter) {
				m.editing = true
				return m, m.focusField()
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Leave):
			m.editing = false
			m.blurAll()
			return m, nil
		case key.Matches(msg, m.keys.AddQuestion):
			return m.edit(quizdto.EditInput{Op: quizdto.EditAddQuestion}, true)
		case key.Matches(msg, m.keys.DeleteQuestion):
			return m.edit(quizdto.EditInput{Op: quizdto.EditDeleteQuestion}, true)
		case key.Matches(msg, m.keys.AddAnswer):
			next, cmd := m.edit(quizdto.EditInput{Op: quizdto.EditAddAnswer}, true)
			next.focus = len(next.answers)
			return next, tea.Batch(cmd, next.focusField())
		case key.Matches(msg, m.keys.DeleteAnswer):
			return m.edit(quizdto.EditInput{Op: quizdto.EditDeleteAnswer}, true)
		case key.Matches(msg, m.keys.MarkCorrect):
			return m.edit(quizdto.EditInput{Op: quizdto.EditMarkCorrect, Index: m.focus}, false)
		case key.Matches(msg, m.keys.PrevQuestion):
			if m.draft.Current == 0 {
				return m, nil
			}
			return m.edit(quizdto.EditInput{Op: quizdto.EditSelect, Index: m.draft.Current - 1}, true)
		case key.Matches(msg, m.keys.NextQuestion):
			if m.draft.Current >= len(m.draft.Questions)-1 {
				return m, nil
			}
			return m.edit(quizdto.EditInput{Op: quizdto.EditSelect, Index: m.draft.Current + 1}, true)
		case key.Matches(msg, m.keys.NextField):
			m.focus = (m.focus + 1) % (len(m.answers) + 1)
			return m, m.focusField()
		case key.Matches(msg, m.keys.PrevField):
			m.focus = (m.focus + len(m.answers)) % (len(m.answers) + 1)
			return m, m.focusField()
		case key.Matches(msg, m.keys.Save):
			cmd := m.Save("")
			return m, cmd
		}
		return m.typeInto(msg)
	}
	return m.typeInto(msg)
}

func (m Model) View() string {
	list := m.renderList()
	form := m.renderForm()
	return lipgloss.JoinHorizontal(lipgloss.Top, list, form)
}

// ─── private ─────────────────────────────────────────────────────────────────

// typeInto forwards msg to the focused field and pushes any text change to
// the draft.
func (m Model) typeInto(msg tea.Msg) (Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		before := m.prompt.Value()
		m.prompt, cmd = m.prompt.Update(msg)
		if after := m.prompt.Value(); after != before {
			if out, err := m.port.Edit(context.Background(), quizdto.EditInput{Op: quizdto.EditSetPrompt, Text: after}); err == nil {
				m.draft = out
			}
		}
		return m, cmd
	}
	idx := m.focus - 1
	before := m.answers[idx].Value()
	m.answers[idx], cmd = m.answers[idx].Update(msg)
	if after := m.answers[idx].Value(); after != before {
		if out, err := m.port.Edit(context.Background(), quizdto.EditInput{Op: quizdto.EditSetAnswer, Index: m.focus, Text: after}); err == nil {
			m.draft = out
		}
	}
	return m, cmd
}

// edit applies a structural change; reload rebuilds the form fields.
func (m Model) edit(input quizdto.EditInput, reload bool) (Model, tea.Cmd) {
	out, err := m.port.Edit(context.Background(), input)
	if err != nil {
		return m, status(describe(input.Op, err))
	}
	if reload {
		focus := m.focus
		m.load(out)
		if input.Op != quizdto.EditSelect && input.Op != quizdto.EditAddQuestion && input.Op != quizdto.EditDeleteQuestion {
			m.focus = min(focus, len(m.answers))
		}
		return m, m.focusField()
	}
	m.draft = out
	return m, nil
}

func (m *Model) load(draft quizdto.DraftOutput) {
	m.draft = draft
	m.focus = 0
	q := draft.Questions[draft.Current]
	m.prompt = newInput("Question", q.Prompt)
	m.answers = make([]textinput.Model, len(q.Answers))
	for i, a := range q.Answers {
		m.answers[i] = newInput(fmt.Sprintf("Answer %d", i+1), a)
	}
	m.resizeInputs()
	if m.editing {
		m.focusField()
	}
}

func (m *Model) focusField() tea.Cmd {
	m.blurAll()
	if m.focus == 0 {
		return m.prompt.Focus()
	}
	return m.answers[m.focus-1].Focus()
}

func (m *Model) blurAll() {
	m.prompt.Blur()
	for i := range m.answers {
		m.answers[i].Blur()
	}
}

func (m *Model) resizeInputs() {
	w := m.formWidth() - 8
	if w < 10 {
		w = 10
	}
	m.prompt.Width = w
	for i := range m.answers {
		m.answers[i].Width = w
	}
}

func (m Model) listWidth() int {
	if m.width < 60 {
		return 20
	}
	return m.width / 3
}

func (m Model) formWidth() int {
	w := m.width - m.listWidth() - 4
	if w < 30 {
		w = 50
	}
	return w
}

func (m Model) renderList() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Questions") + "\n\n")
	rows := max(m.height-8, 3)
	first := 0
	if m.draft.Current >= rows {
		first = m.draft.Current - rows + 1
	}
	limit := m.listWidth() - 8
	for i := first; i < len(m.draft.Questions) && i < first+rows; i++ {
		label := m.draft.Questions[i].Prompt
		if label == "" {
			label = "(empty)"
		}
		if runes := []rune(label); limit > 3 && len(runes) > limit {
			label = string(runes[:limit-1]) + "…"
		}
		line := fmt.Sprintf("%3d. %s", i+1, label)
		if i == m.draft.Current {
			sb.WriteString(theme.Selected.Render(line) + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}
	return theme.Pane.Width(m.listWidth()).Render(sb.String())
}

func (m Model) renderForm() string {
	q := m.draft.Questions[m.draft.Current]
	var sb strings.Builder

	saved := theme.Bad.Render("Not saved!")
	if m.draft.Saved {
		saved = theme.Good.Render("Saved")
	}
	name := m.draft.Path
	if name == "" {
		name = "untitled"
	}
	sb.WriteString(theme.Title.Render(name) + "  " + saved + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Current question: %d   Total questions: %d   Answers to question: %d",
		m.draft.Current+1, len(m.draft.Questions), len(q.Answers))) + "\n\n")

	sb.WriteString(m.prompt.View() + "\n\n")
	for i, in := range m.answers {
		marker := "  "
		if q.Correct == i+1 {
			marker = theme.Good.Render("✓ ")
		}
		sb.WriteString(marker + in.View() + "\n")
	}
	if len(m.answers) == 0 {
		sb.WriteString(theme.Muted.Render("  no answers yet, ctrl+a adds one") + "\n")
	}
	if q.Correct == 0 {
		sb.WriteString("\n" + theme.Hot.Render("no correct answer marked") + "\n")
	}

	style := theme.Pane
	if m.editing {
		style = theme.PaneActive
	}
	return style.Width(m.formWidth()).Render(sb.String())
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 1024
	ti.SetValue(value)
	return ti
}

func describe(op quizdto.EditOp, err error) string {
	return fmt.Sprintf("%s: %v", op, err)
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}
