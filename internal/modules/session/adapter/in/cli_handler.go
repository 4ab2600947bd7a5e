package in

import (
	"context"

	sessiondto "quizforge/internal/modules/session/dto"
	sessionin "quizforge/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context, testPath string) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Load(ctx, testPath)
}

func (h CLIHandler) Begin(ctx context.Context, name string) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Begin(ctx, name)
}

func (h CLIHandler) Tick(ctx context.Context) (sessiondto.TickOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) Answer(ctx context.Context, choice int) (sessiondto.AnswerOutput, error) {
	return h.usecase.Answer(ctx, choice)
}

func (h CLIHandler) Move(ctx context.Context, delta int) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Move(ctx, delta)
}

func (h CLIHandler) Snapshot(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Abandon(ctx context.Context) error {
	return h.usecase.Abandon(ctx)
}

func (h CLIHandler) Results(ctx context.Context, limit int) ([]sessiondto.ResultOutput, error) {
	return h.usecase.ListResults(ctx, limit)
}
