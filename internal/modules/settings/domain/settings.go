package domain

import (
	"fmt"
	"strings"

	apperrors "quizforge/internal/platform/errors"
)

const DefaultTimePerQuestion = 50

type Settings struct {
	TimePerQuestion int
	ResultsDir      string
}

// Defaults are used whenever the settings file is missing or unusable.
func Defaults(home string) Settings {
	return Settings{TimePerQuestion: DefaultTimePerQuestion, ResultsDir: home}
}

func (s Settings) Validate() error {
	if s.TimePerQuestion <= 0 {
		return fmt.Errorf("%w: time per question must be a positive number of seconds", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(s.ResultsDir) == "" {
		return fmt.Errorf("%w: results directory is required", apperrors.ErrInvalidInput)
	}
	return nil
}
