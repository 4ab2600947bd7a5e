package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDamagedFile      = errors.New("file is damaged")
	ErrTooManyQuestions = errors.New("question limit reached")
	ErrTooManyAnswers   = errors.New("answer limit reached")
	ErrLastQuestion     = errors.New("cannot delete the only question")
	ErrNoAnswers        = errors.New("question has no answers")
	ErrNoSession        = errors.New("no session loaded")
	ErrSessionState     = errors.New("operation not allowed in current session state")
)
