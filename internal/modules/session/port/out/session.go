package out

import (
	"context"

	"quizforge/internal/modules/session/domain"
)

// ResultLog appends a completed session to the human-readable daily log and
// returns the file written.
type ResultLog interface {
	Append(ctx context.Context, dir string, result domain.Result) (string, error)
}

type ResultIndex interface {
	Record(ctx context.Context, result domain.Result) error
	List(ctx context.Context, limit int) ([]domain.Result, error)
}
