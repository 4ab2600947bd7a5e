package config

import (
	"fmt"
	"path/filepath"
)

// SettingsFileName is the hidden per-user settings file kept for
// compatibility with tests authored by earlier releases.
const SettingsFileName = ".testing-settings.json"

type Config struct {
	HomeDir      string
	SettingsPath string
	DataDir      string
	DBPath       string
	LogPath      string
	LogLevel     string
}

func New(homeDir, logLevel string) (Config, error) {
	if homeDir == "" {
		return Config{}, fmt.Errorf("home directory is required")
	}
	if logLevel == "" {
		logLevel = "info"
	}
	dataDir := filepath.Join(homeDir, ".quizforge")
	return Config{
		HomeDir:      homeDir,
		SettingsPath: filepath.Join(homeDir, SettingsFileName),
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "quizforge.db"),
		LogPath:      filepath.Join(dataDir, "quizforge.log"),
		LogLevel:     logLevel,
	}, nil
}
