package in

import (
	"context"

	"quizforge/internal/modules/session/dto"
)

type Usecase interface {
	Load(ctx context.Context, testPath string) (dto.SnapshotOutput, error)
	Begin(ctx context.Context, name string) (dto.SnapshotOutput, error)
	Tick(ctx context.Context) (dto.TickOutput, error)
	Answer(ctx context.Context, choice int) (dto.AnswerOutput, error)
	Move(ctx context.Context, delta int) (dto.SnapshotOutput, error)
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	Abandon(ctx context.Context) error
	ListResults(ctx context.Context, limit int) ([]dto.ResultOutput, error)
}
