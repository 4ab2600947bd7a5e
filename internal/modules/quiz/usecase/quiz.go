package usecase

import (
	"context"
	"fmt"

	"quizforge/internal/modules/quiz/domain"
	"quizforge/internal/modules/quiz/dto"
	quizin "quizforge/internal/modules/quiz/port/in"
	"quizforge/internal/modules/quiz/service"
	apperrors "quizforge/internal/platform/errors"
)

// Interactor keeps the editor draft in memory between calls. It is driven
// from a single event loop and is not safe for concurrent use.
type Interactor struct {
	svc       *service.QuizService
	draft     *domain.Draft
	draftPath string
}

func NewInteractor(svc *service.QuizService) quizin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OpenTest(ctx context.Context, path string) (dto.TestOutput, error) {
	test, err := i.svc.Open(ctx, path)
	if err != nil {
		return dto.TestOutput{}, err
	}
	return dto.TestOutput{Path: path, Questions: toQuestionOutputs(test.Questions)}, nil
}

func (i *Interactor) NewDraft(_ context.Context) (dto.DraftOutput, error) {
	i.draft = domain.NewDraft()
	i.draftPath = ""
	return i.output(), nil
}

// OpenDraft replaces the current draft only when the file loads; a damaged
// file leaves the form untouched.
func (i *Interactor) OpenDraft(ctx context.Context, path string) (dto.DraftOutput, error) {
	test, err := i.svc.Open(ctx, path)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	i.draft = domain.DraftFromTest(test)
	i.draftPath = path
	return i.output(), nil
}

func (i *Interactor) SaveDraft(ctx context.Context, path string) (dto.DraftOutput, error) {
	if i.draft == nil {
		return dto.DraftOutput{}, fmt.Errorf("%w: no draft open", apperrors.ErrInvalidInput)
	}
	if path == "" {
		path = i.draftPath
	}
	if err := i.svc.Save(ctx, path, i.draft.Test()); err != nil {
		return dto.DraftOutput{}, err
	}
	i.draft.MarkSaved()
	i.draftPath = path
	return i.output(), nil
}

func (i *Interactor) Draft(_ context.Context) (dto.DraftOutput, error) {
	if i.draft == nil {
		i.draft = domain.NewDraft()
	}
	return i.output(), nil
}

func (i *Interactor) Edit(_ context.Context, input dto.EditInput) (dto.DraftOutput, error) {
	if i.draft == nil {
		i.draft = domain.NewDraft()
	}
	var err error
	switch input.Op {
	case dto.EditAddQuestion:
		err = i.draft.AddQuestion()
	case dto.EditDeleteQuestion:
		err = i.draft.DeleteQuestion()
	case dto.EditSelect:
		err = i.draft.Select(input.Index)
	case dto.EditSetPrompt:
		i.draft.SetPrompt(input.Text)
	case dto.EditAddAnswer:
		err = i.draft.AddAnswer()
	case dto.EditDeleteAnswer:
		err = i.draft.DeleteAnswer()
	case dto.EditSetAnswer:
		err = i.draft.SetAnswer(input.Index, input.Text)
	case dto.EditMarkCorrect:
		err = i.draft.MarkCorrect(input.Index)
	default:
		err = fmt.Errorf("%w: unknown edit %q", apperrors.ErrInvalidInput, input.Op)
	}
	return i.output(), err
}

func (i *Interactor) Convert(ctx context.Context, input dto.ConvertInput) (dto.ConvertOutput, error) {
	if input.Source == input.Target {
		return dto.ConvertOutput{}, fmt.Errorf("%w: source and target are the same file", apperrors.ErrInvalidInput)
	}
	test, err := i.svc.Open(ctx, input.Source)
	if err != nil {
		return dto.ConvertOutput{}, err
	}
	if err := i.svc.Save(ctx, input.Target, test); err != nil {
		return dto.ConvertOutput{}, err
	}
	return dto.ConvertOutput{Target: input.Target, Questions: len(test.Questions)}, nil
}

func (i *Interactor) output() dto.DraftOutput {
	return dto.DraftOutput{
		Path:      i.draftPath,
		Questions: toQuestionOutputs(i.draft.Questions),
		Current:   i.draft.Current,
		Saved:     i.draft.Saved,
	}
}

func toQuestionOutputs(questions []domain.Question) []dto.QuestionOutput {
	out := make([]dto.QuestionOutput, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionOutput{
			Prompt:  q.Prompt,
			Answers: append([]string(nil), q.Answers...),
			Correct: q.Correct,
		})
	}
	return out
}
