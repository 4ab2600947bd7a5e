package in

import (
	"context"

	quizdto "quizforge/internal/modules/quiz/dto"
	quizin "quizforge/internal/modules/quiz/port/in"
)

type CLIHandler struct {
	usecase quizin.Usecase
}

func NewCLIHandler(usecase quizin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Create writes a new test holding one blank question.
func (h CLIHandler) Create(ctx context.Context, path string) (quizdto.DraftOutput, error) {
	if _, err := h.usecase.NewDraft(ctx); err != nil {
		return quizdto.DraftOutput{}, err
	}
	return h.usecase.SaveDraft(ctx, path)
}

func (h CLIHandler) Show(ctx context.Context, path string) (quizdto.TestOutput, error) {
	return h.usecase.OpenTest(ctx, path)
}

// AddQuestion inserts a blank question after question `after` (1-based);
// 0 appends it at the end.
func (h CLIHandler) AddQuestion(ctx context.Context, path string, after int, prompt string) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, after, func(d quizdto.DraftOutput) (quizdto.DraftOutput, error) {
		if after == 0 {
			if _, err := h.usecase.Edit(ctx, quizdto.EditInput{Op: quizdto.EditSelect, Index: len(d.Questions) - 1}); err != nil {
				return d, err
			}
		}
		out, err := h.usecase.Edit(ctx, quizdto.EditInput{Op: quizdto.EditAddQuestion})
		if err != nil || prompt == "" {
			return out, err
		}
		return h.usecase.Edit(ctx, quizdto.EditInput{Op: quizdto.EditSetPrompt, Text: prompt})
	})
}

func (h CLIHandler) DeleteQuestion(ctx context.Context, path string, question int) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, question, h.apply(ctx, quizdto.EditInput{Op: quizdto.EditDeleteQuestion}))
}

func (h CLIHandler) SetPrompt(ctx context.Context, path string, question int, text string) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, question, h.apply(ctx, quizdto.EditInput{Op: quizdto.EditSetPrompt, Text: text}))
}

// AddAnswer appends an answer holding text to question (1-based).
func (h CLIHandler) AddAnswer(ctx context.Context, path string, question int, text string) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, question, func(quizdto.DraftOutput) (quizdto.DraftOutput, error) {
		out, err := h.usecase.Edit(ctx, quizdto.EditInput{Op: quizdto.EditAddAnswer})
		if err != nil || text == "" {
			return out, err
		}
		position := len(out.Questions[out.Current].Answers)
		return h.usecase.Edit(ctx, quizdto.EditInput{Op: quizdto.EditSetAnswer, Index: position, Text: text})
	})
}

func (h CLIHandler) DeleteAnswer(ctx context.Context, path string, question int) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, question, h.apply(ctx, quizdto.EditInput{Op: quizdto.EditDeleteAnswer}))
}

func (h CLIHandler) SetAnswer(ctx context.Context, path string, question, position int, text string) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, question, h.apply(ctx, quizdto.EditInput{Op: quizdto.EditSetAnswer, Index: position, Text: text}))
}

// MarkCorrect marks answer position (1-based) correct; 0 clears the mark.
func (h CLIHandler) MarkCorrect(ctx context.Context, path string, question, position int) (quizdto.DraftOutput, error) {
	return h.editFile(ctx, path, question, h.apply(ctx, quizdto.EditInput{Op: quizdto.EditMarkCorrect, Index: position}))
}

func (h CLIHandler) Convert(ctx context.Context, source, target string) (quizdto.ConvertOutput, error) {
	return h.usecase.Convert(ctx, quizdto.ConvertInput{Source: source, Target: target})
}

func (h CLIHandler) NewDraft(ctx context.Context) (quizdto.DraftOutput, error) {
	return h.usecase.NewDraft(ctx)
}

func (h CLIHandler) OpenDraft(ctx context.Context, path string) (quizdto.DraftOutput, error) {
	return h.usecase.OpenDraft(ctx, path)
}

func (h CLIHandler) SaveDraft(ctx context.Context, path string) (quizdto.DraftOutput, error) {
	return h.usecase.SaveDraft(ctx, path)
}

func (h CLIHandler) Draft(ctx context.Context) (quizdto.DraftOutput, error) {
	return h.usecase.Draft(ctx)
}

func (h CLIHandler) Edit(ctx context.Context, input quizdto.EditInput) (quizdto.DraftOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h CLIHandler) OpenTest(ctx context.Context, path string) (quizdto.TestOutput, error) {
	return h.usecase.OpenTest(ctx, path)
}

// editFile opens path, selects question (1-based; 0 keeps the first), runs
// fn against the draft and saves the file back.
func (h CLIHandler) editFile(ctx context.Context, path string, question int, fn func(quizdto.DraftOutput) (quizdto.DraftOutput, error)) (quizdto.DraftOutput, error) {
	out, err := h.usecase.OpenDraft(ctx, path)
	if err != nil {
		return quizdto.DraftOutput{}, err
	}
	if question > 0 {
		if out, err = h.usecase.Edit(ctx, quizdto.EditInput{Op: quizdto.EditSelect, Index: question - 1}); err != nil {
			return quizdto.DraftOutput{}, err
		}
	}
	if _, err := fn(out); err != nil {
		return quizdto.DraftOutput{}, err
	}
	return h.usecase.SaveDraft(ctx, path)
}

func (h CLIHandler) apply(ctx context.Context, input quizdto.EditInput) func(quizdto.DraftOutput) (quizdto.DraftOutput, error) {
	return func(quizdto.DraftOutput) (quizdto.DraftOutput, error) {
		return h.usecase.Edit(ctx, input)
	}
}
