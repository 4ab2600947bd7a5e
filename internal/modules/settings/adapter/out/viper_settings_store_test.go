package out_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"quizforge/internal/modules/settings/adapter/out"
	"quizforge/internal/modules/settings/domain"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	store := out.NewViperSettingsStore(filepath.Join(home, ".testing-settings.json"), home, nil)

	got := store.Load(context.Background())
	if got.TimePerQuestion != 50 || got.ResultsDir != home {
		t.Fatalf("expected defaults {50 %s}, got %+v", home, got)
	}
}

func TestSaveWritesStringTimeAndReloads(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	path := filepath.Join(home, ".testing-settings.json")
	store := out.NewViperSettingsStore(path, home, nil)
	results := filepath.Join(home, "results")

	if err := store.Save(context.Background(), domain.Settings{TimePerQuestion: 30, ResultsDir: results}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("settings file is not a json object: %v", err)
	}
	if payload["time"] != "30" || payload["path"] != results {
		t.Fatalf("unexpected settings payload %v", payload)
	}

	got := store.Load(context.Background())
	if got.TimePerQuestion != 30 || got.ResultsDir != results {
		t.Fatalf("unexpected reloaded settings %+v", got)
	}
}

func TestLoadDamagedValuesFallBackPerKey(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	path := filepath.Join(home, ".testing-settings.json")
	if err := os.WriteFile(path, []byte(`{"time": "soon", "path": "/srv/results"}`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)
	store := out.NewViperSettingsStore(path, home, zap.New(core))

	got := store.Load(context.Background())
	if got.TimePerQuestion != 50 {
		t.Fatalf("expected default time, got %d", got.TimePerQuestion)
	}
	if got.ResultsDir != "/srv/results" {
		t.Fatalf("expected path from file, got %q", got.ResultsDir)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestLoadNonObjectFileGivesDefaults(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	path := filepath.Join(home, ".testing-settings.json")
	if err := os.WriteFile(path, []byte(`[1, 2, 3]`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)
	store := out.NewViperSettingsStore(path, home, zap.New(core))

	got := store.Load(context.Background())
	if got != domain.Defaults(home) {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if logs.FilterMessage("settings file is damaged, using defaults").Len() != 1 {
		t.Fatalf("expected damaged settings warning")
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, ".testing-settings.json")
	if err := os.WriteFile(path, []byte(`{"time": "20", "path": "/from/file"}`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("QUIZFORGE_TIME", "15")

	got := out.NewViperSettingsStore(path, home, nil).Load(context.Background())
	if got.TimePerQuestion != 15 {
		t.Fatalf("expected env time 15, got %d", got.TimePerQuestion)
	}
	if got.ResultsDir != "/from/file" {
		t.Fatalf("expected path from file, got %q", got.ResultsDir)
	}
}
