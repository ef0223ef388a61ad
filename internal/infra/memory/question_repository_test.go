package memory

import (
	"context"
	"testing"
	"time"

	"trivia-engine/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		PackLoader: NewStaticPackLoader(map[string]domain.QuestionPack{
			"pack-1": samplePack(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.GetPack(context.Background(), "pack-1"); err != nil {
		t.Fatalf("get pack: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetPack(context.Background(), "pack-1"); err != nil {
		t.Fatalf("get pack 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderUnknownPack(t *testing.T) {
	loader := NewStaticPackLoader(nil)
	if _, err := loader.LoadPack(context.Background(), "nope"); err != domain.ErrPackNotFound {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

type countingLoader struct {
	PackLoader
	calls int
}

func (l *countingLoader) LoadPack(ctx context.Context, packID string) (domain.QuestionPack, error) {
	l.calls++
	return l.PackLoader.LoadPack(ctx, packID)
}

func samplePack() domain.QuestionPack {
	return domain.QuestionPack{
		ID: "pack-1",
		Questions: []domain.Question{
			{
				ID:       "q1",
				Category: "Science",
				Prompt:   "What is 2 + 2?",
				Options:  []string{"3", "4", "5"},
				Answer:   "4",
			},
		},
	}
}
