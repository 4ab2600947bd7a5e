package service

import (
	"context"

	"go.uber.org/zap"

	"quizforge/internal/modules/session/domain"
	sessionout "quizforge/internal/modules/session/port/out"
	"quizforge/internal/platform/clock"
	"quizforge/internal/platform/id"
)

type SessionService struct {
	clock  clock.Clock
	idGen  id.Generator
	log    sessionout.ResultLog
	index  sessionout.ResultIndex
	logger *zap.Logger
}

// NewSessionService wires the result sinks. index may be nil when no
// results database is configured.
func NewSessionService(clock clock.Clock, idGen id.Generator, log sessionout.ResultLog, index sessionout.ResultIndex, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{clock: clock, idGen: idGen, log: log, index: index, logger: logger}
}

func (s *SessionService) Create(testPath string, items []domain.Item) (*domain.Session, error) {
	return domain.New(s.idGen.New(), testPath, items)
}

func (s *SessionService) Start(session *domain.Session, name string, perQuestion int) error {
	if err := session.Start(name, perQuestion, s.clock.Now()); err != nil {
		return err
	}
	s.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("test", session.TestPath),
		zap.Int("questions", session.Total),
		zap.Int("budget", session.Budget),
	)
	return nil
}

func (s *SessionService) Tick(session *domain.Session) bool {
	return session.Tick(s.clock.Now())
}

func (s *SessionService) Answer(session *domain.Session, choice int) (bool, error) {
	return session.Answer(choice, s.clock.Now())
}

// Finish persists a completed session. Sink failures are logged and the
// result is still returned; the player never sees them.
func (s *SessionService) Finish(ctx context.Context, session *domain.Session, dir string) domain.Result {
	result := session.Result()
	if s.log != nil {
		path, err := s.log.Append(ctx, dir, result)
		if err != nil {
			s.logger.Error("append result log", zap.String("dir", dir), zap.String("session_id", result.SessionID), zap.Error(err))
		} else {
			result.LogPath = path
		}
	}
	if s.index != nil {
		if err := s.index.Record(ctx, result); err != nil {
			s.logger.Error("record result", zap.String("session_id", result.SessionID), zap.Error(err))
		}
	}
	s.logger.Info("session completed",
		zap.String("session_id", result.SessionID),
		zap.Int("correct", result.Correct),
		zap.Int("answered", result.Answered),
		zap.Int("total", result.Total),
		zap.Bool("expired", result.Expired),
	)
	return result
}

func (s *SessionService) List(ctx context.Context, limit int) ([]domain.Result, error) {
	if s.index == nil {
		return nil, nil
	}
	return s.index.List(ctx, limit)
}
