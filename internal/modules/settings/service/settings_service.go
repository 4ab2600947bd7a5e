package service

import (
	"context"

	"go.uber.org/zap"

	"quizforge/internal/modules/settings/domain"
	settingsout "quizforge/internal/modules/settings/port/out"
)

type SettingsService struct {
	store  settingsout.SettingsStore
	logger *zap.Logger
}

func NewSettingsService(store settingsout.SettingsStore, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, logger: logger}
}

func (s *SettingsService) Current(ctx context.Context) domain.Settings {
	return s.store.Load(ctx)
}

func (s *SettingsService) Update(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.store.Save(ctx, settings); err != nil {
		s.logger.Error("save settings", zap.String("path", s.store.Path()), zap.Error(err))
		return err
	}
	s.logger.Debug("settings saved", zap.Int("time", settings.TimePerQuestion), zap.String("results_dir", settings.ResultsDir))
	return nil
}

func (s *SettingsService) Path() string {
	return s.store.Path()
}
