package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	quizinadapter "quizforge/internal/modules/quiz/adapter/in"
	quizoutadapter "quizforge/internal/modules/quiz/adapter/out"
	quizservice "quizforge/internal/modules/quiz/service"
	quizusecase "quizforge/internal/modules/quiz/usecase"
	sessioninadapter "quizforge/internal/modules/session/adapter/in"
	sessionoutadapter "quizforge/internal/modules/session/adapter/out"
	sessionoutport "quizforge/internal/modules/session/port/out"
	sessionservice "quizforge/internal/modules/session/service"
	sessionusecase "quizforge/internal/modules/session/usecase"
	settingsinadapter "quizforge/internal/modules/settings/adapter/in"
	settingsoutadapter "quizforge/internal/modules/settings/adapter/out"
	settingsservice "quizforge/internal/modules/settings/service"
	settingsusecase "quizforge/internal/modules/settings/usecase"
	"quizforge/internal/platform/clock"
	"quizforge/internal/platform/config"
	"quizforge/internal/platform/id"
	uiapp "quizforge/internal/ui/app"
)

type App struct {
	QuizCLI     quizinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler

	logger *zap.Logger
	index  *sessionoutadapter.SQLiteResultIndex
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	quizUC := quizusecase.NewInteractor(quizservice.NewQuizService(
		quizoutadapter.NewTestStore(),
		logger.Named("quiz"),
	))

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewViperSettingsStore(cfg.SettingsPath, cfg.HomeDir, logger.Named("settings")),
		logger.Named("settings"),
	))

	// The results index is optional; without it sessions still write the
	// dated log and `results` lists nothing.
	var resultIndex sessionoutport.ResultIndex
	index, err := sessionoutadapter.NewSQLiteResultIndex(cfg.DBPath)
	if err != nil {
		logger.Warn("results index unavailable", zap.String("path", cfg.DBPath), zap.Error(err))
	} else {
		resultIndex = index
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionoutadapter.NewFileResultLog(), resultIndex, logger.Named("session")),
		quizUC,
		settingsUC,
	)

	return &App{
		QuizCLI:     quizinadapter.NewCLIHandler(quizUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		logger:      logger,
		index:       index,
	}, nil
}

// Close releases the results database and flushes the logger.
func (a *App) Close() error {
	_ = a.logger.Sync()
	if a.index == nil {
		return nil
	}
	return a.index.Close()
}

// RunEditor opens the editor on path, or on a blank test when path is empty.
func RunEditor(app *App, path string) error {
	if path != "" {
		if _, err := app.QuizCLI.OpenDraft(context.Background(), path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	} else if _, err := app.QuizCLI.NewDraft(context.Background()); err != nil {
		return err
	}
	model := uiapp.NewModel(app.QuizCLI, app.SessionCLI, app.SettingsCLI, uiapp.ScreenEditor)
	return run(model)
}

// RunPlayer loads the test at path into the player screen.
func RunPlayer(app *App, path string) error {
	if _, err := app.QuizCLI.OpenTest(context.Background(), path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	model := uiapp.NewModel(app.QuizCLI, app.SessionCLI, app.SettingsCLI, uiapp.ScreenPlayer)
	model.Preload(path)
	return run(model)
}

func run(model uiapp.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
