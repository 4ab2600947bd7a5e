package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quizforge/internal/bootstrap"
	"quizforge/internal/platform/config"
)

func TestNewRunsWithoutResultsIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	home := t.TempDir()
	// A plain file where the data directory should be makes the index
	// impossible to open.
	if err := os.WriteFile(filepath.Join(home, ".quizforge"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed data path: %v", err)
	}
	cfg, err := config.New(home, "info")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	core, logs := observer.New(zapcore.WarnLevel)

	app, err := bootstrap.New(cfg, zap.New(core))
	if err != nil {
		t.Fatalf("bootstrap must survive a broken results index: %v", err)
	}
	if logs.FilterMessage("results index unavailable").Len() != 1 {
		t.Fatalf("expected the index failure to be logged, got %v", logs.All())
	}

	testPath := filepath.Join(home, "quiz.json")
	if _, err := app.QuizCLI.Create(ctx, testPath); err != nil {
		t.Fatalf("create test: %v", err)
	}
	if shown, err := app.QuizCLI.Show(ctx, testPath); err != nil || len(shown.Questions) != 1 {
		t.Fatalf("show test: %+v, %v", shown, err)
	}

	resultsDir := filepath.Join(home, "results")
	if _, err := app.SettingsCLI.Save(ctx, 5, resultsDir); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if _, err := app.SessionCLI.Load(ctx, testPath); err != nil {
		t.Fatalf("load session: %v", err)
	}
	if _, err := app.SessionCLI.Begin(ctx, "Ada"); err != nil {
		t.Fatalf("begin session: %v", err)
	}
	out, err := app.SessionCLI.Answer(ctx, 0)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.Snapshot.Result == nil || !strings.HasPrefix(filepath.Base(out.Snapshot.Result.LogPath), "20") {
		t.Fatalf("completed session must still write the dated log, got %+v", out.Snapshot.Result)
	}

	listed, err := app.SessionCLI.Results(ctx, 10)
	if err != nil || len(listed) != 0 {
		t.Fatalf("results without an index must be empty, got %+v, %v", listed, err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
