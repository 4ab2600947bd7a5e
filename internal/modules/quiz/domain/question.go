package domain

import (
	"fmt"
	"strconv"

	apperrors "quizforge/internal/platform/errors"
)

const (
	MaxAnswers   = 9
	MaxQuestions = 999
)

// Question is one multiple-choice item. Correct is the 1-based position of
// the correct answer; 0 means no answer is marked.
type Question struct {
	Prompt  string
	Answers []string
	Correct int
}

// Test is an ordered list of questions.
type Test struct {
	Questions []Question
}

func (q Question) Validate() error {
	if len(q.Answers) > MaxAnswers {
		return fmt.Errorf("%w: %d answers", apperrors.ErrTooManyAnswers, len(q.Answers))
	}
	if q.Correct < 0 || q.Correct > len(q.Answers) {
		return fmt.Errorf("%w: correct index %d out of range", apperrors.ErrInvalidInput, q.Correct)
	}
	return nil
}

// Playable reports whether the question can be presented in a session.
func (q Question) Playable() bool {
	return len(q.Answers) > 0
}

// Record encodes the question in the on-disk shape
// [prompt, answer_1, ..., answer_k, correct].
func (q Question) Record() []string {
	rec := make([]string, 0, len(q.Answers)+2)
	rec = append(rec, q.Prompt)
	rec = append(rec, q.Answers...)
	rec = append(rec, strconv.Itoa(q.Correct))
	return rec
}

func QuestionFromRecord(rec []string) (Question, error) {
	if len(rec) < 2 {
		return Question{}, fmt.Errorf("%w: record has %d fields", apperrors.ErrDamagedFile, len(rec))
	}
	last := len(rec) - 1
	correct, err := strconv.Atoi(rec[last])
	if err != nil {
		return Question{}, fmt.Errorf("%w: correct index %q", apperrors.ErrDamagedFile, rec[last])
	}
	q := Question{
		Prompt:  rec[0],
		Answers: append([]string(nil), rec[1:last]...),
		Correct: correct,
	}
	if err := q.Validate(); err != nil {
		return Question{}, fmt.Errorf("%w: %v", apperrors.ErrDamagedFile, err)
	}
	return q, nil
}

func (t Test) Records() [][]string {
	out := make([][]string, 0, len(t.Questions))
	for _, q := range t.Questions {
		out = append(out, q.Record())
	}
	return out
}

func TestFromRecords(records [][]string) (Test, error) {
	if len(records) == 0 {
		return Test{}, fmt.Errorf("%w: no questions", apperrors.ErrDamagedFile)
	}
	if len(records) > MaxQuestions {
		return Test{}, fmt.Errorf("%w: %d questions", apperrors.ErrDamagedFile, len(records))
	}
	test := Test{Questions: make([]Question, 0, len(records))}
	for i, rec := range records {
		q, err := QuestionFromRecord(rec)
		if err != nil {
			return Test{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		test.Questions = append(test.Questions, q)
	}
	return test, nil
}

// CheckShape applies the file-validity heuristic to a decoded JSON value:
// a non-empty list whose first element is a non-empty list starting with a
// string.
func CheckShape(decoded any) error {
	list, ok := decoded.([]any)
	if !ok || len(list) == 0 {
		return fmt.Errorf("%w: expected a non-empty list", apperrors.ErrDamagedFile)
	}
	first, ok := list[0].([]any)
	if !ok || len(first) == 0 {
		return fmt.Errorf("%w: first question is not a list", apperrors.ErrDamagedFile)
	}
	if _, ok := first[0].(string); !ok {
		return fmt.Errorf("%w: first question prompt is not a string", apperrors.ErrDamagedFile)
	}
	return nil
}

func (t Test) Clone() Test {
	out := Test{Questions: make([]Question, len(t.Questions))}
	for i, q := range t.Questions {
		q.Answers = append([]string(nil), q.Answers...)
		out.Questions[i] = q
	}
	return out
}
