package out

import (
	"context"

	"quizforge/internal/modules/quiz/domain"
)

type TestStore interface {
	Load(ctx context.Context, path string) (domain.Test, error)
	Save(ctx context.Context, path string, test domain.Test) error
}
