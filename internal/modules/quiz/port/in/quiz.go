package in

import (
	"context"

	"quizforge/internal/modules/quiz/dto"
)

type Usecase interface {
	OpenTest(ctx context.Context, path string) (dto.TestOutput, error)
	NewDraft(ctx context.Context) (dto.DraftOutput, error)
	OpenDraft(ctx context.Context, path string) (dto.DraftOutput, error)
	SaveDraft(ctx context.Context, path string) (dto.DraftOutput, error)
	Draft(ctx context.Context) (dto.DraftOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.DraftOutput, error)
	Convert(ctx context.Context, input dto.ConvertInput) (dto.ConvertOutput, error)
}
