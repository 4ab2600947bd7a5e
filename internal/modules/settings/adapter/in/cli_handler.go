package in

import (
	"context"

	settingsdto "quizforge/internal/modules/settings/dto"
	settingsin "quizforge/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (settingsdto.SettingsOutput, error) {
	return h.usecase.Load(ctx)
}

// Set overwrites the fields present in input and keeps the others.
func (h CLIHandler) Set(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error) {
	current, err := h.usecase.Load(ctx)
	if err != nil {
		return settingsdto.SettingsOutput{}, err
	}
	save := settingsdto.SaveInput{TimePerQuestion: current.TimePerQuestion, ResultsDir: current.ResultsDir}
	if input.TimePerQuestion != nil {
		save.TimePerQuestion = *input.TimePerQuestion
	}
	if input.ResultsDir != nil {
		save.ResultsDir = *input.ResultsDir
	}
	return h.usecase.Save(ctx, save)
}

func (h CLIHandler) Save(ctx context.Context, seconds int, dir string) (settingsdto.SettingsOutput, error) {
	return h.usecase.Save(ctx, settingsdto.SaveInput{TimePerQuestion: seconds, ResultsDir: dir})
}
