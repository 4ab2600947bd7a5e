package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "quizforge/internal/platform/errors"
)

type State string

const (
	AwaitingSettings State = "awaiting-settings"
	Running          State = "running"
	Completed        State = "completed"
)

// Item is one question as the player sees it. Correct is the 1-based
// position of the right choice; 0 matches a submission with nothing chosen.
type Item struct {
	Prompt  string
	Choices []string
	Correct int
}

// Session is one timed run through a test. Remaining shrinks as questions
// are answered; Current always points into it while Running.
type Session struct {
	ID          string
	Name        string
	TestPath    string
	PerQuestion int
	Total       int
	Budget      int
	TimeLeft    int
	Remaining   []Item
	Current     int
	Correct     int
	Answered    int
	Expired     bool
	State       State
	StartedAt   time.Time
	FinishedAt  time.Time
}

func New(id, testPath string, items []Item) (*Session, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: test has no questions", apperrors.ErrInvalidInput)
	}
	remaining := make([]Item, len(items))
	for i, item := range items {
		item.Choices = append([]string(nil), item.Choices...)
		remaining[i] = item
	}
	return &Session{
		ID:        id,
		TestPath:  testPath,
		Total:     len(items),
		Remaining: remaining,
		State:     AwaitingSettings,
	}, nil
}

func (s *Session) Start(name string, perQuestion int, now time.Time) error {
	if s.State != AwaitingSettings {
		return fmt.Errorf("%w: cannot start a %s session", apperrors.ErrSessionState, s.State)
	}
	if perQuestion <= 0 {
		return fmt.Errorf("%w: time per question must be positive", apperrors.ErrInvalidInput)
	}
	s.Name = strings.TrimSpace(name)
	s.PerQuestion = perQuestion
	s.Budget = s.Total * perQuestion
	s.TimeLeft = s.Budget
	s.StartedAt = now
	s.State = Running
	return nil
}

// Tick spends one second. It reports whether the countdown should be
// re-armed; false is the stop signal.
func (s *Session) Tick(now time.Time) bool {
	if s.State != Running {
		return false
	}
	s.TimeLeft--
	if s.TimeLeft > 0 {
		return true
	}
	s.TimeLeft = 0
	s.Expired = true
	s.Remaining = nil
	s.Current = 0
	s.complete(now)
	return false
}

// Answer scores the current question against choice and removes it.
// It reports whether the choice was correct.
func (s *Session) Answer(choice int, now time.Time) (bool, error) {
	if s.State != Running {
		return false, fmt.Errorf("%w: cannot answer a %s session", apperrors.ErrSessionState, s.State)
	}
	item := s.Remaining[s.Current]
	if choice < 0 || choice > len(item.Choices) {
		return false, fmt.Errorf("%w: choice %d of %d", apperrors.ErrInvalidInput, choice, len(item.Choices))
	}
	hit := choice == item.Correct
	if hit {
		s.Correct++
	}
	s.Answered++
	s.Remaining = append(s.Remaining[:s.Current], s.Remaining[s.Current+1:]...)
	if s.Current >= len(s.Remaining) {
		s.Current = len(s.Remaining) - 1
	}
	if len(s.Remaining) == 0 {
		s.Current = 0
		s.complete(now)
	}
	return hit, nil
}

func (s *Session) Previous() {
	if s.State == Running && s.Current > 0 {
		s.Current--
	}
}

func (s *Session) Next() {
	if s.State == Running && s.Current < len(s.Remaining)-1 {
		s.Current++
	}
}

// CurrentItem returns the question on screen; ok is false outside Running.
func (s *Session) CurrentItem() (Item, bool) {
	if s.State != Running || len(s.Remaining) == 0 {
		return Item{}, false
	}
	return s.Remaining[s.Current], true
}

func (s *Session) complete(now time.Time) {
	s.State = Completed
	s.FinishedAt = now
}

func (s *Session) Result() Result {
	return Result{
		SessionID:   s.ID,
		Name:        s.Name,
		TestPath:    s.TestPath,
		FinishedAt:  s.FinishedAt,
		Correct:     s.Correct,
		Answered:    s.Answered,
		Total:       s.Total,
		SecondsUsed: s.Budget - s.TimeLeft,
		Budget:      s.Budget,
		Expired:     s.Expired,
	}
}
