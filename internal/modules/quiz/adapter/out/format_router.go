package out

import (
	"context"
	"path/filepath"
	"strings"

	"quizforge/internal/modules/quiz/domain"
	quizout "quizforge/internal/modules/quiz/port/out"
)

// FormatRouter dispatches to the YAML store for .yaml/.yml paths and to the
// JSON store for everything else.
type FormatRouter struct {
	json quizout.TestStore
	yaml quizout.TestStore
}

func NewTestStore() quizout.TestStore {
	return &FormatRouter{json: NewJSONTestStore(), yaml: NewYAMLTestStore()}
}

func (r *FormatRouter) Load(ctx context.Context, path string) (domain.Test, error) {
	return r.pick(path).Load(ctx, path)
}

func (r *FormatRouter) Save(ctx context.Context, path string, test domain.Test) error {
	return r.pick(path).Save(ctx, path, test)
}

func (r *FormatRouter) pick(path string) quizout.TestStore {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return r.yaml
	default:
		return r.json
	}
}
