package usecase

import (
	"context"
	"fmt"

	quizin "quizforge/internal/modules/quiz/port/in"
	"quizforge/internal/modules/session/domain"
	sessiondto "quizforge/internal/modules/session/dto"
	sessionin "quizforge/internal/modules/session/port/in"
	"quizforge/internal/modules/session/service"
	settingsin "quizforge/internal/modules/settings/port/in"
	apperrors "quizforge/internal/platform/errors"
)

// Interactor owns the one session shown by the player screen. Calls come
// from the UI event loop only.
type Interactor struct {
	svc        *service.SessionService
	quiz       quizin.Usecase
	settings   settingsin.Usecase
	session    *domain.Session
	resultsDir string
	result     *domain.Result
}

func NewInteractor(svc *service.SessionService, quiz quizin.Usecase, settings settingsin.Usecase) sessionin.Usecase {
	return &Interactor{svc: svc, quiz: quiz, settings: settings}
}

// Load reads a test and prepares a session awaiting the participant's name.
// On failure the previous session is kept.
func (i *Interactor) Load(ctx context.Context, testPath string) (sessiondto.SnapshotOutput, error) {
	test, err := i.quiz.OpenTest(ctx, testPath)
	if err != nil {
		return sessiondto.SnapshotOutput{}, err
	}
	items := make([]domain.Item, 0, len(test.Questions))
	for _, q := range test.Questions {
		items = append(items, domain.Item{Prompt: q.Prompt, Choices: q.Answers, Correct: q.Correct})
	}
	session, err := i.svc.Create(test.Path, items)
	if err != nil {
		return sessiondto.SnapshotOutput{}, err
	}
	i.session = session
	i.result = nil
	return i.snapshot(), nil
}

func (i *Interactor) Begin(ctx context.Context, name string) (sessiondto.SnapshotOutput, error) {
	if i.session == nil {
		return sessiondto.SnapshotOutput{}, apperrors.ErrNoSession
	}
	settings, err := i.settings.Load(ctx)
	if err != nil {
		return sessiondto.SnapshotOutput{}, fmt.Errorf("load settings: %w", err)
	}
	if err := i.svc.Start(i.session, name, settings.TimePerQuestion); err != nil {
		return i.snapshot(), err
	}
	i.resultsDir = settings.ResultsDir
	return i.snapshot(), nil
}

func (i *Interactor) Tick(ctx context.Context) (sessiondto.TickOutput, error) {
	if i.session == nil {
		return sessiondto.TickOutput{}, apperrors.ErrNoSession
	}
	wasRunning := i.session.State == domain.Running
	keep := i.svc.Tick(i.session)
	if wasRunning && i.session.State == domain.Completed {
		i.finish(ctx)
	}
	return sessiondto.TickOutput{Continue: keep, Snapshot: i.snapshot()}, nil
}

func (i *Interactor) Answer(ctx context.Context, choice int) (sessiondto.AnswerOutput, error) {
	if i.session == nil {
		return sessiondto.AnswerOutput{}, apperrors.ErrNoSession
	}
	hit, err := i.svc.Answer(i.session, choice)
	if err != nil {
		return sessiondto.AnswerOutput{Snapshot: i.snapshot()}, err
	}
	if i.session.State == domain.Completed {
		i.finish(ctx)
	}
	return sessiondto.AnswerOutput{Hit: hit, Snapshot: i.snapshot()}, nil
}

// Move steps the question pointer back (delta < 0) or forward (delta > 0).
func (i *Interactor) Move(_ context.Context, delta int) (sessiondto.SnapshotOutput, error) {
	if i.session == nil {
		return sessiondto.SnapshotOutput{}, apperrors.ErrNoSession
	}
	for ; delta < 0; delta++ {
		i.session.Previous()
	}
	for ; delta > 0; delta-- {
		i.session.Next()
	}
	return i.snapshot(), nil
}

func (i *Interactor) Snapshot(_ context.Context) (sessiondto.SnapshotOutput, error) {
	if i.session == nil {
		return sessiondto.SnapshotOutput{}, apperrors.ErrNoSession
	}
	return i.snapshot(), nil
}

// Abandon drops the current session without recording anything.
func (i *Interactor) Abandon(_ context.Context) error {
	i.session = nil
	i.result = nil
	return nil
}

func (i *Interactor) ListResults(ctx context.Context, limit int) ([]sessiondto.ResultOutput, error) {
	results, err := i.svc.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.ResultOutput, 0, len(results))
	for _, r := range results {
		out = append(out, toResultOutput(r))
	}
	return out, nil
}

func (i *Interactor) finish(ctx context.Context) {
	result := i.svc.Finish(ctx, i.session, i.resultsDir)
	i.result = &result
}

func (i *Interactor) snapshot() sessiondto.SnapshotOutput {
	s := i.session
	out := sessiondto.SnapshotOutput{
		SessionID:   s.ID,
		Name:        s.Name,
		TestPath:    s.TestPath,
		State:       string(s.State),
		Current:     s.Current,
		Remaining:   len(s.Remaining),
		Total:       s.Total,
		TimeLeft:    s.TimeLeft,
		PerQuestion: s.PerQuestion,
		Budget:      s.Budget,
		Correct:     s.Correct,
		Answered:    s.Answered,
		Expired:     s.Expired,
	}
	if item, ok := s.CurrentItem(); ok {
		out.HasItem = true
		out.Item = sessiondto.ItemOutput{Prompt: item.Prompt, Choices: append([]string(nil), item.Choices...)}
	}
	if i.result != nil {
		r := toResultOutput(*i.result)
		out.Result = &r
	}
	return out
}

func toResultOutput(r domain.Result) sessiondto.ResultOutput {
	return sessiondto.ResultOutput{
		SessionID:   r.SessionID,
		Name:        r.Name,
		TestPath:    r.TestPath,
		FinishedAt:  r.FinishedAt,
		Correct:     r.Correct,
		Answered:    r.Answered,
		Total:       r.Total,
		SecondsUsed: r.SecondsUsed,
		Budget:      r.Budget,
		Expired:     r.Expired,
		LogPath:     r.LogPath,
	}
}
