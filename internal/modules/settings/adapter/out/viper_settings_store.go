package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"quizforge/internal/modules/settings/domain"
	settingsout "quizforge/internal/modules/settings/port/out"
)

const (
	keyTime = "time"
	keyPath = "path"

	EnvPrefix = "QUIZFORGE"
)

type ViperSettingsStore struct {
	path   string
	home   string
	logger *zap.Logger
}

func NewViperSettingsStore(path, home string, logger *zap.Logger) settingsout.SettingsStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViperSettingsStore{path: path, home: home, logger: logger}
}

func (s *ViperSettingsStore) Path() string { return s.path }

// Load reads the settings file and QUIZFORGE_* environment overrides. Any
// key that is missing or unusable falls back to its default.
func (s *ViperSettingsStore) Load(_ context.Context) domain.Settings {
	defaults := domain.Defaults(s.home)

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(s.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("stat settings", zap.String("path", s.path), zap.Error(err))
		}
	} else if err := v.ReadInConfig(); err != nil {
		s.logger.Warn("settings file is damaged, using defaults", zap.String("path", s.path), zap.Error(err))
	}

	out := defaults
	if raw := strings.TrimSpace(v.GetString(keyTime)); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			s.logger.Warn("invalid time per question, using default", zap.String("value", raw), zap.Int("default", defaults.TimePerQuestion))
		} else {
			out.TimePerQuestion = seconds
		}
	}
	if dir := strings.TrimSpace(v.GetString(keyPath)); dir != "" {
		out.ResultsDir = dir
	}
	return out
}

// Save writes {"path": ..., "time": "<seconds>"}. The time is stored as a
// string so files stay readable by earlier releases.
func (s *ViperSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyPath, settings.ResultsDir)
	v.Set(keyTime, strconv.Itoa(settings.TimePerQuestion))
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
