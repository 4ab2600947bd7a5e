package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"quizforge/internal/modules/quiz/domain"
	quizout "quizforge/internal/modules/quiz/port/out"
	apperrors "quizforge/internal/platform/errors"
)

// JSONTestStore reads and writes tests as a JSON array of string records.
type JSONTestStore struct{}

func NewJSONTestStore() quizout.TestStore {
	return &JSONTestStore{}
}

func (s *JSONTestStore) Load(_ context.Context, path string) (domain.Test, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.Test{}, fmt.Errorf("%w: read %s: %v", apperrors.ErrDamagedFile, path, err)
	}
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return domain.Test{}, fmt.Errorf("%w: decode %s: %v", apperrors.ErrDamagedFile, path, err)
	}
	if err := domain.CheckShape(decoded); err != nil {
		return domain.Test{}, err
	}
	var records [][]string
	if err := json.Unmarshal(payload, &records); err != nil {
		return domain.Test{}, fmt.Errorf("%w: decode records: %v", apperrors.ErrDamagedFile, err)
	}
	return domain.TestFromRecords(records)
}

func (s *JSONTestStore) Save(_ context.Context, path string, test domain.Test) error {
	buf := bytes.Buffer{}
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", " ")
	if err := encoder.Encode(test.Records()); err != nil {
		return fmt.Errorf("encode test: %w", err)
	}
	return writeFileSync(path, buf.Bytes())
}

// writeFileSync writes payload and flushes it to disk before returning.
func writeFileSync(path string, payload []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create test dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create test file: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("write test file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync test file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close test file: %w", err)
	}
	return nil
}
