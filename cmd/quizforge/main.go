package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizforge/internal/bootstrap"
	quizdto "quizforge/internal/modules/quiz/dto"
	sessiondto "quizforge/internal/modules/session/dto"
	settingsdto "quizforge/internal/modules/settings/dto"
	"quizforge/internal/platform/config"
	"quizforge/internal/platform/logging"
)

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	home     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	home, _ := os.UserHomeDir()

	root := &cobra.Command{
		Use:           "quizforge",
		Short:         "Write multiple-choice tests and take them against the clock",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.home, "home", home, "home directory holding settings and data")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "diagnostic log level: debug|info|warn|error")

	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newTakeCmd(opts))
	root.AddCommand(newNewCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newQuestionCmd(opts))
	root.AddCommand(newAnswerCmd(opts))
	root.AddCommand(newConvertCmd(opts))
	root.AddCommand(newSettingsCmd(opts))
	root.AddCommand(newResultsCmd(opts))
	return root
}

// loadApp wires the application. TUI commands log to a file so the
// terminal stays clean; the rest log to stderr.
func loadApp(opts *rootOptions, tui bool) (*bootstrap.App, error) {
	cfg, err := config.New(opts.home, opts.logLevel)
	if err != nil {
		return nil, err
	}
	var logger *zap.Logger
	if tui {
		logger, err = logging.NewFile(cfg.LogLevel, cfg.LogPath)
		if err != nil && !errors.Is(err, logging.ErrUnknownLevel) {
			// The TUI owns stderr; run without diagnostics rather than not at all.
			_, _ = fmt.Fprintf(os.Stderr, "diagnostic log disabled: %v\n", err)
			logger, err = zap.NewNop(), nil
		}
	} else {
		logger, err = logging.New(cfg.LogLevel)
	}
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger)
}

func withApp(opts *rootOptions, tui bool, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(opts, tui)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the test editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return withApp(opts, true, func(app *bootstrap.App) error {
				return bootstrap.RunEditor(app, path)
			})
		},
	}
}

func newTakeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "take <file>",
		Short: "Take a timed test",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withApp(opts, true, func(app *bootstrap.App) error {
				return bootstrap.RunPlayer(app, args[0])
			})
		},
	}
}

func newNewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new <file>",
		Short: "Create a test holding one blank question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, false, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Create(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", out.Path)
				return nil
			})
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print a test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, false, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Show(context.Background(), args[0])
				if err != nil {
					return err
				}
				printTest(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newQuestionCmd(opts *rootOptions) *cobra.Command {
	question := &cobra.Command{Use: "question", Short: "Edit the questions of a test file"}

	var after int
	addCmd := &cobra.Command{
		Use:   "add <file> [prompt]",
		Short: "Insert a question",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := ""
			if len(args) == 2 {
				prompt = args[1]
			}
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.AddQuestion(ctx, args[0], after, prompt)
			})
		},
	}
	addCmd.Flags().IntVar(&after, "after", 0, "insert after this question (default: at the end)")

	var number int
	deleteCmd := &cobra.Command{
		Use:   "delete <file>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.DeleteQuestion(ctx, args[0], number)
			})
		},
	}
	promptCmd := &cobra.Command{
		Use:   "prompt <file> <text>",
		Short: "Set the text of a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.SetPrompt(ctx, args[0], number, args[1])
			})
		},
	}
	for _, c := range []*cobra.Command{deleteCmd, promptCmd} {
		c.Flags().IntVarP(&number, "question", "q", 1, "question number")
	}

	question.AddCommand(addCmd, deleteCmd, promptCmd)
	return question
}

func newAnswerCmd(opts *rootOptions) *cobra.Command {
	answer := &cobra.Command{Use: "answer", Short: "Edit the answers of a question"}
	var number int

	addCmd := &cobra.Command{
		Use:   "add <file> [text]",
		Short: "Append an answer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 2 {
				text = args[1]
			}
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.AddAnswer(ctx, args[0], number, text)
			})
		},
	}
	deleteCmd := &cobra.Command{
		Use:   "delete <file>",
		Short: "Delete the last answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.DeleteAnswer(ctx, args[0], number)
			})
		},
	}
	setCmd := &cobra.Command{
		Use:   "set <file> <position> <text>",
		Short: "Replace the text of an answer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid answer position %q", args[1])
			}
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.SetAnswer(ctx, args[0], number, position, args[2])
			})
		},
	}
	markCmd := &cobra.Command{
		Use:   "mark <file> <position>",
		Short: "Mark the correct answer (0 clears the mark)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid answer position %q", args[1])
			}
			return editTest(cmd, opts, func(ctx context.Context, app *bootstrap.App) (quizdto.DraftOutput, error) {
				return app.QuizCLI.MarkCorrect(ctx, args[0], number, position)
			})
		},
	}
	for _, c := range []*cobra.Command{addCmd, deleteCmd, setCmd, markCmd} {
		c.Flags().IntVarP(&number, "question", "q", 1, "question number")
	}

	answer.AddCommand(addCmd, deleteCmd, setCmd, markCmd)
	return answer
}

func newConvertCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Convert a test between JSON and YAML (chosen by extension)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, false, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Convert(context.Background(), args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d questions)\n", out.Target, out.Questions)
				return nil
			})
		},
	}
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change player settings"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, false, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Show(context.Background())
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	var seconds int
	var dir string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change time per question and/or results directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("time") && !cmd.Flags().Changed("path") {
				return fmt.Errorf("nothing to set: pass --time and/or --path")
			}
			return withApp(opts, false, func(app *bootstrap.App) error {
				var input settingsdto.UpdateInput
				if cmd.Flags().Changed("time") {
					input.TimePerQuestion = &seconds
				}
				if cmd.Flags().Changed("path") {
					input.ResultsDir = &dir
				}
				out, err := app.SettingsCLI.Set(context.Background(), input)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	setCmd.Flags().IntVar(&seconds, "time", 0, "seconds per question")
	setCmd.Flags().StringVar(&dir, "path", "", "directory for result logs")

	settings.AddCommand(showCmd, setCmd)
	return settings
}

func newResultsCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recorded test results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, false, func(app *bootstrap.App) error {
				results, err := app.SessionCLI.Results(context.Background(), limit)
				if err != nil {
					return err
				}
				printResults(cmd.OutOrStdout(), results)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows (0 for all)")
	return cmd
}

func editTest(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *bootstrap.App) (quizdto.DraftOutput, error)) error {
	return withApp(opts, false, func(app *bootstrap.App) error {
		out, err := fn(context.Background(), app)
		if err != nil {
			return err
		}
		q := out.Questions[out.Current]
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s: question %d of %d, %d answers\n",
			out.Path, out.Current+1, len(out.Questions), len(q.Answers))
		return nil
	})
}

func printTest(w io.Writer, test quizdto.TestOutput) {
	_, _ = fmt.Fprintf(w, "%s: %d questions\n", test.Path, len(test.Questions))
	for i, q := range test.Questions {
		_, _ = fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Prompt)
		for j, a := range q.Answers {
			mark := " "
			if q.Correct == j+1 {
				mark = "*"
			}
			_, _ = fmt.Fprintf(w, "   %s %d) %s\n", mark, j+1, a)
		}
		if q.Correct == 0 {
			_, _ = fmt.Fprintln(w, "   (no correct answer marked)")
		}
	}
}

func printSettings(w io.Writer, s settingsdto.SettingsOutput) {
	_, _ = fmt.Fprintf(w, "time per question: %d seconds\nresults directory: %s\nsettings file: %s\n",
		s.TimePerQuestion, s.ResultsDir, s.File)
}

func printResults(w io.Writer, results []sessiondto.ResultOutput) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "no results recorded")
		return
	}
	for _, r := range results {
		flags := []string{}
		if r.Expired {
			flags = append(flags, "time ran out")
		}
		line := fmt.Sprintf("%s  %-20s %d/%d correct  %d/%d answered  %ds/%ds  %s",
			r.FinishedAt.Format("2006-01-02 15:04:05"), r.Name, r.Correct, r.Answered, r.Answered, r.Total,
			r.SecondsUsed, r.Budget, r.TestPath)
		if len(flags) > 0 {
			line += "  (" + strings.Join(flags, ", ") + ")"
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
