package domain

import (
	"fmt"

	apperrors "quizforge/internal/platform/errors"
)

// Draft is the editor's working copy of a test together with the question
// currently shown in the form.
type Draft struct {
	Questions []Question
	Current   int
	Saved     bool
}

func NewDraft() *Draft {
	return &Draft{Questions: []Question{{}}}
}

func DraftFromTest(test Test) *Draft {
	d := &Draft{Questions: test.Clone().Questions, Saved: true}
	if len(d.Questions) == 0 {
		d.Questions = []Question{{}}
	}
	return d
}

func (d *Draft) Test() Test {
	return Test{Questions: d.Questions}.Clone()
}

func (d *Draft) CurrentQuestion() Question {
	return d.Questions[d.Current]
}

// AddQuestion inserts a blank question after the current one and selects it.
func (d *Draft) AddQuestion() error {
	if len(d.Questions) >= MaxQuestions {
		return apperrors.ErrTooManyQuestions
	}
	at := d.Current + 1
	d.Questions = append(d.Questions, Question{})
	copy(d.Questions[at+1:], d.Questions[at:])
	d.Questions[at] = Question{}
	d.Current = at
	d.Saved = false
	return nil
}

// DeleteQuestion removes the current question and selects its predecessor.
func (d *Draft) DeleteQuestion() error {
	if len(d.Questions) <= 1 {
		return apperrors.ErrLastQuestion
	}
	d.Questions = append(d.Questions[:d.Current], d.Questions[d.Current+1:]...)
	if d.Current > 0 {
		d.Current--
	}
	d.Saved = false
	return nil
}

func (d *Draft) Select(index int) error {
	if index < 0 || index >= len(d.Questions) {
		return fmt.Errorf("%w: question %d of %d", apperrors.ErrInvalidInput, index+1, len(d.Questions))
	}
	d.Current = index
	return nil
}

func (d *Draft) SetPrompt(text string) {
	if d.Questions[d.Current].Prompt == text {
		return
	}
	d.Questions[d.Current].Prompt = text
	d.Saved = false
}

func (d *Draft) AddAnswer() error {
	q := &d.Questions[d.Current]
	if len(q.Answers) >= MaxAnswers {
		return apperrors.ErrTooManyAnswers
	}
	q.Answers = append(q.Answers, "")
	d.Saved = false
	return nil
}

// DeleteAnswer drops the last answer; a mark on it falls back to none.
func (d *Draft) DeleteAnswer() error {
	q := &d.Questions[d.Current]
	if len(q.Answers) == 0 {
		return apperrors.ErrNoAnswers
	}
	if q.Correct == len(q.Answers) {
		q.Correct = 0
	}
	q.Answers = q.Answers[:len(q.Answers)-1]
	d.Saved = false
	return nil
}

// SetAnswer replaces the text of answer position (1-based).
func (d *Draft) SetAnswer(position int, text string) error {
	q := &d.Questions[d.Current]
	if position < 1 || position > len(q.Answers) {
		return fmt.Errorf("%w: answer %d of %d", apperrors.ErrInvalidInput, position, len(q.Answers))
	}
	if q.Answers[position-1] == text {
		return nil
	}
	q.Answers[position-1] = text
	d.Saved = false
	return nil
}

func (d *Draft) MarkCorrect(position int) error {
	q := &d.Questions[d.Current]
	if position < 0 || position > len(q.Answers) {
		return fmt.Errorf("%w: answer %d of %d", apperrors.ErrInvalidInput, position, len(q.Answers))
	}
	if q.Correct != position {
		q.Correct = position
		d.Saved = false
	}
	return nil
}

func (d *Draft) MarkSaved() { d.Saved = true }
