package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	quizout "quizforge/internal/modules/quiz/adapter/out"
	"quizforge/internal/modules/quiz/service"
	"quizforge/internal/modules/quiz/usecase"
	sessiondto "quizforge/internal/modules/session/dto"
	settingsdto "quizforge/internal/modules/settings/dto"
	"quizforge/internal/ui/app"
	"quizforge/internal/ui/components"
)

type stubSession struct {
	resultCalls int
}

func (s *stubSession) Load(context.Context, string) (sessiondto.SnapshotOutput, error) {
	return sessiondto.SnapshotOutput{}, nil
}
func (s *stubSession) Begin(context.Context, string) (sessiondto.SnapshotOutput, error) {
	return sessiondto.SnapshotOutput{}, nil
}
func (s *stubSession) Tick(context.Context) (sessiondto.TickOutput, error) {
	return sessiondto.TickOutput{}, nil
}
func (s *stubSession) Answer(context.Context, int) (sessiondto.AnswerOutput, error) {
	return sessiondto.AnswerOutput{}, nil
}
func (s *stubSession) Move(context.Context, int) (sessiondto.SnapshotOutput, error) {
	return sessiondto.SnapshotOutput{}, nil
}
func (s *stubSession) Abandon(context.Context) error { return nil }
func (s *stubSession) Results(context.Context, int) ([]sessiondto.ResultOutput, error) {
	s.resultCalls++
	return nil, nil
}

type stubSettings struct {
	seconds int
	dir     string
}

func (s *stubSettings) Show(context.Context) (settingsdto.SettingsOutput, error) {
	return settingsdto.SettingsOutput{TimePerQuestion: 50, ResultsDir: "/home/ada"}, nil
}
func (s *stubSettings) Save(_ context.Context, seconds int, dir string) (settingsdto.SettingsOutput, error) {
	s.seconds, s.dir = seconds, dir
	return settingsdto.SettingsOutput{TimePerQuestion: seconds, ResultsDir: dir}, nil
}

func newModel(t *testing.T) (app.Model, *stubSession, *stubSettings) {
	t.Helper()
	quiz := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	sess, set := &stubSession{}, &stubSettings{}
	m := app.NewModel(quiz, sess, set, app.ScreenEditor)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(app.Model), sess, set
}

func submit(m app.Model, input string) app.Model {
	next, _ := m.Update(components.PaletteSubmitMsg{Input: input})
	return next.(app.Model)
}

func TestPaletteSettingsSave(t *testing.T) {
	t.Parallel()
	m, _, set := newModel(t)

	m = submit(m, "settings:save 30 /tmp/quiz results")
	if set.seconds != 30 || set.dir != "/tmp/quiz results" {
		t.Fatalf("unexpected settings saved: %+v", set)
	}
	if !strings.Contains(m.View(), "settings saved: 30s per question") {
		t.Fatalf("status not updated:\n%s", m.View())
	}

	m = submit(m, "settings:save soon /tmp")
	if !strings.Contains(m.View(), "invalid seconds: soon") {
		t.Fatalf("expected invalid seconds status:\n%s", m.View())
	}
}

func TestPaletteLaunchNeedsSavedDraft(t *testing.T) {
	t.Parallel()
	m, _, _ := newModel(t)

	m = submit(m, "test:launch")
	if !strings.Contains(m.View(), "save the test before launching it") {
		t.Fatalf("expected save hint:\n%s", m.View())
	}
	m = submit(m, "test:frobnicate")
	if !strings.Contains(m.View(), "unknown command: test:frobnicate") {
		t.Fatalf("expected unknown command status:\n%s", m.View())
	}
}

func TestResultsScreenReloadsOnEnter(t *testing.T) {
	t.Parallel()
	m, sess, _ := newModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF3})
	m = next.(app.Model)
	if cmd == nil {
		t.Fatal("switching to results must reload them")
	}
	for _, c := range cmd().(tea.BatchMsg) {
		if msg := c(); msg != nil {
			next, _ = m.Update(msg)
			m = next.(app.Model)
		}
	}
	if sess.resultCalls != 1 {
		t.Fatalf("expected one results query, got %d", sess.resultCalls)
	}
	if !strings.Contains(m.View(), "No results yet") {
		t.Fatalf("expected empty results screen:\n%s", m.View())
	}
}
