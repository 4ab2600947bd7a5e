package usecase

import (
	"context"

	"quizforge/internal/modules/settings/domain"
	"quizforge/internal/modules/settings/dto"
	settingsin "quizforge/internal/modules/settings/port/in"
	"quizforge/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) (dto.SettingsOutput, error) {
	return i.output(i.svc.Current(ctx)), nil
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) (dto.SettingsOutput, error) {
	settings := domain.Settings{TimePerQuestion: input.TimePerQuestion, ResultsDir: input.ResultsDir}
	if err := i.svc.Update(ctx, settings); err != nil {
		return dto.SettingsOutput{}, err
	}
	return i.output(settings), nil
}

func (i *Interactor) output(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{TimePerQuestion: s.TimePerQuestion, ResultsDir: s.ResultsDir, File: i.svc.Path()}
}
