package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	quizout "quizforge/internal/modules/quiz/adapter/out"
	"quizforge/internal/modules/quiz/dto"
	"quizforge/internal/modules/quiz/service"
	"quizforge/internal/modules/quiz/usecase"
	apperrors "quizforge/internal/platform/errors"
)

func TestDraftEditSaveAndReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quiz.json")
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), zap.NewNop()))

	if _, err := uc.NewDraft(ctx); err != nil {
		t.Fatalf("new draft: %v", err)
	}
	edits := []dto.EditInput{
		{Op: dto.EditSetPrompt, Text: "Largest planet?"},
		{Op: dto.EditAddAnswer},
		{Op: dto.EditAddAnswer},
		{Op: dto.EditSetAnswer, Index: 1, Text: "Mars"},
		{Op: dto.EditSetAnswer, Index: 2, Text: "Jupiter"},
		{Op: dto.EditMarkCorrect, Index: 2},
		{Op: dto.EditAddQuestion},
		{Op: dto.EditSetPrompt, Text: "Closest star?"},
		{Op: dto.EditAddAnswer},
		{Op: dto.EditSetAnswer, Index: 1, Text: "Sun"},
		{Op: dto.EditMarkCorrect, Index: 1},
	}
	for _, edit := range edits {
		if _, err := uc.Edit(ctx, edit); err != nil {
			t.Fatalf("edit %s: %v", edit.Op, err)
		}
	}
	draft, err := uc.Draft(ctx)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if draft.Saved {
		t.Fatalf("edited draft must not be saved")
	}
	saved, err := uc.SaveDraft(ctx, path)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if !saved.Saved || saved.Path != path {
		t.Fatalf("unexpected save output %+v", saved)
	}

	reopened, err := uc.OpenTest(ctx, path)
	if err != nil {
		t.Fatalf("open test: %v", err)
	}
	if len(reopened.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(reopened.Questions))
	}
	first := reopened.Questions[0]
	if first.Prompt != "Largest planet?" || first.Correct != 2 || first.Answers[1] != "Jupiter" {
		t.Fatalf("unexpected first question %+v", first)
	}
}

func TestOpenDraftDamagedFileKeepsFormAndLogs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	damaged := filepath.Join(dir, "damaged.json")
	if err := os.WriteFile(damaged, []byte(`{"not": "a test"}`), 0o644); err != nil {
		t.Fatalf("write damaged file: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), zap.New(core)))

	if _, err := uc.Edit(ctx, dto.EditInput{Op: dto.EditSetPrompt, Text: "keep me"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := uc.OpenDraft(ctx, damaged); !errors.Is(err, apperrors.ErrDamagedFile) {
		t.Fatalf("expected damaged file, got %v", err)
	}
	draft, err := uc.Draft(ctx)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if draft.Questions[0].Prompt != "keep me" {
		t.Fatalf("damaged open must not replace the form, got %+v", draft.Questions[0])
	}
	if logs.FilterMessage("open test").Len() != 1 {
		t.Fatalf("expected damaged file to be logged, got %d entries", logs.Len())
	}
}

func TestSaveDraftReportsIOFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	core, logs := observer.New(zap.ErrorLevel)
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), zap.New(core)))
	if _, err := uc.NewDraft(ctx); err != nil {
		t.Fatalf("new draft: %v", err)
	}
	if _, err := uc.SaveDraft(ctx, filepath.Join(blocker, "quiz.json")); err == nil {
		t.Fatalf("expected save under a regular file to fail")
	}
	draft, _ := uc.Draft(ctx)
	if draft.Saved {
		t.Fatalf("failed save must leave draft unsaved")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error entry, got %d", logs.Len())
	}
	if _, err := uc.SaveDraft(ctx, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("empty path must be rejected, got %v", err)
	}
}

func TestEditRejectsUnknownOp(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	out, err := uc.Edit(context.Background(), dto.EditInput{Op: "shuffle"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(out.Questions) != 1 {
		t.Fatalf("draft state must still be returned, got %+v", out)
	}
}

func TestConvertJSONToYAML(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "quiz.json")
	dst := filepath.Join(dir, "quiz.yaml")
	if err := os.WriteFile(src, []byte(`[["q1","a","b","2"],["q2","c","1"]]`), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	uc := usecase.NewInteractor(service.NewQuizService(quizout.NewTestStore(), nil))
	out, err := uc.Convert(ctx, dto.ConvertInput{Source: src, Target: dst})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out.Questions != 2 {
		t.Fatalf("expected 2 questions converted, got %d", out.Questions)
	}
	back, err := uc.OpenTest(ctx, dst)
	if err != nil {
		t.Fatalf("open converted: %v", err)
	}
	if back.Questions[0].Correct != 2 || back.Questions[1].Answers[0] != "c" {
		t.Fatalf("unexpected converted test %+v", back)
	}
	if _, err := uc.Convert(ctx, dto.ConvertInput{Source: src, Target: src}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("same source and target must fail, got %v", err)
	}
}
