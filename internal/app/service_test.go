package app_test

import (
	"context"
	"testing"
	"time"

	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
	"trivia-engine/internal/infra/memory"
)

func newTestService() *app.GameService {
	packs := memory.NewQuestionRepository(memory.NewStaticPackLoader(map[string]domain.QuestionPack{
		"pack-1": {ID: "pack-1", Questions: testQuestions()},
	}), 5*time.Minute)
	boards := memory.NewLeaderboardStore()
	return app.NewGameService(packs, boards).WithPlayerNames(boards)
}

func TestServiceSessionFromPack(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	session, err := service.NewSession(ctx, "pack-1", "alice")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := session.Start(domain.ModeSolo, domain.CategoryAll, 3); err != nil {
		t.Fatalf("start: %v", err)
	}

	categories, err := service.Categories(ctx, "pack-1")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if categories[0] != domain.CategoryAll {
		t.Fatalf("expected All first, got %v", categories)
	}
}

func TestServiceUnknownPack(t *testing.T) {
	service := newTestService()
	if _, err := service.NewSession(context.Background(), "missing", "alice"); err != domain.ErrPackNotFound {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

func TestRecordResultPersistsAndRemembersName(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	summary := app.Evaluate("alice", app.FinalStats{
		Completed:      true,
		Score:          25,
		CorrectAnswers: 5,
		TotalQuestions: 5,
	}, time.Now())

	board, err := service.RecordResult(ctx, summary)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(board) != 1 || board[0].PlayerName != "alice" {
		t.Fatalf("unexpected board: %+v", board)
	}

	reloaded, err := service.Leaderboard(ctx, summary.Entry.Bucket)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].Score != 25 {
		t.Fatalf("persisted board mismatch: %+v", reloaded)
	}

	name, err := service.LastPlayerName(ctx)
	if err != nil {
		t.Fatalf("last name: %v", err)
	}
	if name != "alice" {
		t.Fatalf("expected remembered name alice, got %q", name)
	}
}
