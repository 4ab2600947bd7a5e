package in

import (
	"context"

	"quizforge/internal/modules/settings/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.SettingsOutput, error)
	Save(ctx context.Context, input dto.SaveInput) (dto.SettingsOutput, error)
}
