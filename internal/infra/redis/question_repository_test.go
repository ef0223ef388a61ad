package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"trivia-engine/internal/domain"
	"trivia-engine/internal/infra/memory"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		PackLoader: memory.NewStaticPackLoader(map[string]domain.QuestionPack{
			"pack-1": samplePack(),
		}),
	}
	repo := NewQuestionRepository(client, loader, time.Minute)

	pack, err := repo.GetPack(context.Background(), "pack-1")
	if err != nil {
		t.Fatalf("get pack: %v", err)
	}
	if len(pack.Questions) != 1 || pack.Questions[0].Answer != "4" {
		t.Fatalf("unexpected pack: %+v", pack)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("pack:pack-1:data") {
		t.Fatalf("expected cached pack key in redis")
	}

	// Second call should hit cache, loader not incremented.
	if _, err := repo.GetPack(context.Background(), "pack-1"); err != nil {
		t.Fatalf("get pack 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestQuestionRepositoryUnknownPack(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuestionRepository(newClient(mr), memory.NewStaticPackLoader(nil), time.Minute)
	if _, err := repo.GetPack(context.Background(), "nope"); err != domain.ErrPackNotFound {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

type countingLoader struct {
	memory.PackLoader
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

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
