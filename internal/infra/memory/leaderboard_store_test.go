package memory

import (
	"context"
	"testing"

	"trivia-engine/internal/domain"
)

func TestLeaderboardStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	entries, err := store.Load(ctx, "q5")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty bucket, got %d entries", len(entries))
	}

	saved := []domain.LeaderboardEntry{
		{PlayerName: "alice", Score: 25, Bucket: "q5"},
		{PlayerName: "bob", Score: 10, Bucket: "q5"},
	}
	if err := store.Save(ctx, "q5", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "q5")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].PlayerName != "alice" {
		t.Fatalf("unexpected entries: %+v", loaded)
	}

	// Buckets are isolated.
	other, _ := store.Load(ctx, "q10")
	if len(other) != 0 {
		t.Fatalf("expected q10 bucket empty, got %d", len(other))
	}
}

func TestPlayerNameRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	if err := store.SavePlayerName(ctx, "carol"); err != nil {
		t.Fatalf("save name: %v", err)
	}
	name, err := store.LoadPlayerName(ctx)
	if err != nil {
		t.Fatalf("load name: %v", err)
	}
	if name != "carol" {
		t.Fatalf("expected carol, got %q", name)
	}
}
