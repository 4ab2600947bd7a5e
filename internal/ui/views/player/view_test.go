package player_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "quizforge/internal/modules/session/dto"
	apperrors "quizforge/internal/platform/errors"
	"quizforge/internal/ui/views/player"
)

// fakeSession plays a one-question test with a three second budget.
type fakeSession struct {
	snap      sessiondto.SnapshotOutput
	answers   []int
	moves     []int
	abandoned bool
}

func (f *fakeSession) Load(_ context.Context, path string) (sessiondto.SnapshotOutput, error) {
	if path != "quiz.json" {
		return sessiondto.SnapshotOutput{}, apperrors.ErrDamagedFile
	}
	f.snap = sessiondto.SnapshotOutput{TestPath: path, State: "awaiting-settings", Total: 1, Remaining: 1}
	return f.snap, nil
}

func (f *fakeSession) Begin(_ context.Context, name string) (sessiondto.SnapshotOutput, error) {
	f.snap.Name = name
	f.snap.State = "running"
	f.snap.PerQuestion = 3
	f.snap.Budget = 3
	f.snap.TimeLeft = 3
	f.snap.HasItem = true
	f.snap.Item = sessiondto.ItemOutput{Prompt: "2+2", Choices: []string{"3", "4"}}
	return f.snap, nil
}

func (f *fakeSession) Tick(context.Context) (sessiondto.TickOutput, error) {
	f.snap.TimeLeft--
	if f.snap.TimeLeft == 0 {
		f.complete(true)
		return sessiondto.TickOutput{Continue: false, Snapshot: f.snap}, nil
	}
	return sessiondto.TickOutput{Continue: true, Snapshot: f.snap}, nil
}

func (f *fakeSession) Answer(_ context.Context, choice int) (sessiondto.AnswerOutput, error) {
	f.answers = append(f.answers, choice)
	f.snap.Answered = 1
	if choice == 2 {
		f.snap.Correct = 1
	}
	f.complete(false)
	return sessiondto.AnswerOutput{Hit: choice == 2, Snapshot: f.snap}, nil
}

func (f *fakeSession) Move(_ context.Context, delta int) (sessiondto.SnapshotOutput, error) {
	f.moves = append(f.moves, delta)
	return f.snap, nil
}

func (f *fakeSession) Abandon(context.Context) error {
	f.abandoned = true
	return nil
}

func (f *fakeSession) complete(expired bool) {
	f.snap.State = "completed"
	f.snap.Expired = expired
	f.snap.HasItem = false
	f.snap.Remaining = 0
	f.snap.Result = &sessiondto.ResultOutput{
		Name:        f.snap.Name,
		Correct:     f.snap.Correct,
		Answered:    f.snap.Answered,
		Total:       1,
		SecondsUsed: f.snap.Budget - f.snap.TimeLeft,
		Budget:      f.snap.Budget,
		Expired:     expired,
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func started(t *testing.T, fake *fakeSession) player.Model {
	t.Helper()
	m := player.New(fake)
	if cmd := m.Launch("quiz.json"); cmd == nil {
		t.Fatalf("launch must return a command")
	}
	if !m.Typing() {
		t.Fatalf("loaded test must ask for a name")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("begin must arm the timer")
	}
	if !m.Running() {
		t.Fatalf("expected running session")
	}
	return m
}

func TestPlayerAnswersWithSelectedChoice(t *testing.T) {
	t.Parallel()
	fake := &fakeSession{}
	m := started(t, fake)
	if fake.snap.Name != "Ada" {
		t.Fatalf("expected name Ada, got %q", fake.snap.Name)
	}
	if !strings.Contains(m.View(), "Seconds left: 3") {
		t.Fatalf("running view must show seconds left:\n%s", m.View())
	}

	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyEnter))
	if len(fake.answers) != 1 || fake.answers[0] != 2 {
		t.Fatalf("expected choice 2 submitted, got %v", fake.answers)
	}
	view := m.View()
	if !strings.Contains(view, "TEST COMPLETED!") || !strings.Contains(view, "Correct answers: 1 of 1") {
		t.Fatalf("unexpected completed view:\n%s", view)
	}
}

func TestPlayerSubmitsZeroWithoutSelection(t *testing.T) {
	t.Parallel()
	fake := &fakeSession{}
	m := started(t, fake)
	m, _ = m.Update(key(tea.KeyLeft))
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyEnter))
	if len(fake.moves) != 2 || fake.moves[0] != -1 || fake.moves[1] != 1 {
		t.Fatalf("unexpected moves %v", fake.moves)
	}
	if len(fake.answers) != 1 || fake.answers[0] != 0 {
		t.Fatalf("expected empty submission, got %v", fake.answers)
	}
}

func TestPlayerTicksUntilExpiry(t *testing.T) {
	t.Parallel()
	fake := &fakeSession{}
	m := started(t, fake)

	var cmd tea.Cmd
	for i := 0; i < 2; i++ {
		m, cmd = m.Update(player.TickMsg{Run: 1, Time: time.Now()})
		if cmd == nil {
			t.Fatalf("tick %d must re-arm the timer", i+1)
		}
	}
	m, cmd = m.Update(player.TickMsg{Run: 1, Time: time.Now()})
	if msg, ok := cmd().(player.StatusMsg); !ok || msg.Text != "time is up" {
		t.Fatalf("expected time is up status, got %#v", msg)
	}
	if m.Running() || !strings.Contains(m.View(), "Time ran out") {
		t.Fatalf("expected expired completion:\n%s", m.View())
	}
	m, cmd = m.Update(player.TickMsg{Run: 1, Time: time.Now()})
	if cmd != nil {
		t.Fatalf("ticks after completion must be dropped")
	}
	if fake.snap.TimeLeft != 0 {
		t.Fatalf("stale tick reached the session")
	}
}

func TestPlayerDropsTicksFromEarlierRun(t *testing.T) {
	t.Parallel()
	fake := &fakeSession{}
	m := started(t, fake)
	m, cmd := m.Update(player.TickMsg{Run: 99})
	if cmd != nil || fake.snap.TimeLeft != 3 {
		t.Fatalf("foreign tick must be ignored")
	}
	m.Close()
	if !fake.abandoned || m.Running() {
		t.Fatalf("close must abandon the session")
	}
}

func TestPlayerLaunchDamagedFile(t *testing.T) {
	t.Parallel()
	m := player.New(&fakeSession{})
	msg := m.Launch("broken.json")()
	if status, ok := msg.(player.StatusMsg); !ok || status.Text != "File is damaged!" {
		t.Fatalf("expected damaged file status, got %#v", msg)
	}
	if m.Typing() || m.Running() {
		t.Fatalf("failed launch must leave the player empty")
	}
}
