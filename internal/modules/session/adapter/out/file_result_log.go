package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"quizforge/internal/modules/session/domain"
	sessionout "quizforge/internal/modules/session/port/out"
)

type FileResultLog struct{}

func NewFileResultLog() sessionout.ResultLog {
	return FileResultLog{}
}

// Append adds one block to <dir>/<YYYY-MM-DD>.txt and syncs it to disk.
func (FileResultLog) Append(_ context.Context, dir string, result domain.Result) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("results directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(dir, domain.LogFileName(result.FinishedAt))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open result log: %w", err)
	}
	if _, err := f.WriteString(domain.FormatResult(result)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write result log: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("sync result log: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close result log: %w", err)
	}
	return path, nil
}
