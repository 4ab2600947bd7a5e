package editor_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	quizout "quizforge/internal/modules/quiz/adapter/out"
	"quizforge/internal/modules/quiz/service"
	"quizforge/internal/modules/quiz/usecase"
	"quizforge/internal/ui/views/editor"
)

func typeText(t *testing.T, m editor.Model, text string) editor.Model {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(m editor.Model, k tea.KeyType) editor.Model {
	m, _ = m.Update(tea.KeyMsg{Type: k})
	return m
}

func TestEditorBuildsAndSavesQuestion(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	m := editor.New(uc)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m = typeText(t, m, "Capital of Italy?")
	m = press(m, tea.KeyCtrlA)
	m = typeText(t, m, "Milan")
	m = press(m, tea.KeyCtrlA)
	m = typeText(t, m, "Rome")
	m = press(m, tea.KeyCtrlK)

	draft := m.Draft()
	q := draft.Questions[0]
	if q.Prompt != "Capital of Italy?" || len(q.Answers) != 2 || q.Answers[1] != "Rome" || q.Correct != 2 {
		t.Fatalf("unexpected question %+v", q)
	}
	if draft.Saved {
		t.Fatalf("edited draft must not be saved")
	}
	if !strings.Contains(m.View(), "Not saved!") {
		t.Fatalf("view must flag unsaved changes")
	}

	path := filepath.Join(t.TempDir(), "italy.json")
	if cmd := m.Save(path); cmd == nil {
		t.Fatalf("save must report status")
	}
	if !m.Draft().Saved || !strings.Contains(m.View(), "Saved") {
		t.Fatalf("draft must be saved after save")
	}
	reopened, err := uc.OpenTest(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Questions[0].Correct != 2 {
		t.Fatalf("unexpected reopened test %+v", reopened)
	}
}

func TestEditorQuestionNavigationAndDelete(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	m := editor.New(uc)

	m = typeText(t, m, "first")
	m = press(m, tea.KeyCtrlN)
	m = typeText(t, m, "second")
	if got := m.Draft(); got.Current != 1 || len(got.Questions) != 2 {
		t.Fatalf("expected second question selected, got %+v", got)
	}
	m = press(m, tea.KeyPgUp)
	if m.Draft().Current != 0 {
		t.Fatalf("pgup must select the first question")
	}
	m = press(m, tea.KeyPgUp)
	if m.Draft().Current != 0 {
		t.Fatalf("pgup on the first question must stay put")
	}
	if !strings.Contains(m.View(), "Current question: 1") || !strings.Contains(m.View(), "Total questions: 2") {
		t.Fatalf("status lines missing from view:\n%s", m.View())
	}
	m = press(m, tea.KeyCtrlD)
	if got := m.Draft(); len(got.Questions) != 1 || got.Questions[0].Prompt != "second" {
		t.Fatalf("unexpected draft after delete %+v", got)
	}
	var status tea.Msg
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil {
		status = cmd()
	}
	if msg, ok := status.(editor.StatusMsg); !ok || !strings.Contains(msg.Text, "only question") {
		t.Fatalf("expected refusal to delete the only question, got %#v", status)
	}
	_ = m
}

func TestEditorOpenDamagedFileKeepsForm(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	m := editor.New(uc)
	m = typeText(t, m, "keep")

	cmd := m.Open(filepath.Join(t.TempDir(), "missing.json"))
	msg, ok := cmd().(editor.StatusMsg)
	if !ok || msg.Text != "File is damaged!" {
		t.Fatalf("expected damaged file status, got %#v", msg)
	}
	if m.Draft().Questions[0].Prompt != "keep" {
		t.Fatalf("form must survive a damaged open")
	}
}

func TestEditorEscReleasesKeyboard(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	m := editor.New(uc)
	if !m.Typing() {
		t.Fatalf("editor starts in the form")
	}
	m = press(m, tea.KeyEsc)
	if m.Typing() {
		t.Fatalf("esc must release the keyboard")
	}
	m = typeText(t, m, "ignored")
	if m.Draft().Questions[0].Prompt != "" {
		t.Fatalf("keys outside the form must not edit")
	}
	m = press(m, tea.KeyEnter)
	if !m.Typing() {
		t.Fatalf("enter must return to the form")
	}
}
