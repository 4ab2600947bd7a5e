package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"quizforge/internal/modules/quiz/domain"
	quizout "quizforge/internal/modules/quiz/port/out"
	apperrors "quizforge/internal/platform/errors"
)

type QuizService struct {
	store  quizout.TestStore
	logger *zap.Logger
}

func NewQuizService(store quizout.TestStore, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{store: store, logger: logger}
}

// Open loads a test. Every failure is reported as ErrDamagedFile; the cause
// goes to the diagnostic log only.
func (s *QuizService) Open(ctx context.Context, path string) (domain.Test, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Test{}, fmt.Errorf("%w: test path is required", apperrors.ErrInvalidInput)
	}
	test, err := s.store.Load(ctx, path)
	if err != nil {
		s.logger.Warn("open test", zap.String("path", path), zap.Error(err))
		if errors.Is(err, apperrors.ErrDamagedFile) {
			return domain.Test{}, err
		}
		return domain.Test{}, fmt.Errorf("%w: %v", apperrors.ErrDamagedFile, err)
	}
	s.logger.Debug("test opened", zap.String("path", path), zap.Int("questions", len(test.Questions)))
	return test, nil
}

func (s *QuizService) Save(ctx context.Context, path string, test domain.Test) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: test path is required", apperrors.ErrInvalidInput)
	}
	if len(test.Questions) == 0 {
		return fmt.Errorf("%w: test has no questions", apperrors.ErrInvalidInput)
	}
	for i, q := range test.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	if err := s.store.Save(ctx, path, test); err != nil {
		s.logger.Error("save test", zap.String("path", path), zap.Error(err))
		return err
	}
	s.logger.Debug("test saved", zap.String("path", path), zap.Int("questions", len(test.Questions)))
	return nil
}
