package out

import (
	"context"

	"quizforge/internal/modules/settings/domain"
)

// SettingsStore reads and writes the per-user settings file. Load always
// yields usable settings, falling back to defaults.
type SettingsStore interface {
	Load(ctx context.Context) domain.Settings
	Save(ctx context.Context, settings domain.Settings) error
	Path() string
}
