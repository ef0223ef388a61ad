package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"trivia-engine/internal/domain"
)

func TestLeaderboardStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewLeaderboardStore(newClient(mr))

	entries, err := store.Load(ctx, "q5")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil for missing bucket, got %+v", entries)
	}

	saved := []domain.LeaderboardEntry{
		{PlayerName: "alice", Score: 25, Bucket: "q5", Timestamp: time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)},
	}
	if err := store.Save(ctx, "q5", saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("leaderboard:q5") {
		t.Fatalf("expected leaderboard key in redis")
	}

	loaded, err := store.Load(ctx, "q5")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].PlayerName != "alice" || loaded[0].Score != 25 {
		t.Fatalf("unexpected entries: %+v", loaded)
	}
}

func TestPlayerNamePersists(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewLeaderboardStore(newClient(mr))

	name, err := store.LoadPlayerName(ctx)
	if err != nil {
		t.Fatalf("load missing name: %v", err)
	}
	if name != "" {
		t.Fatalf("expected empty name, got %q", name)
	}

	if err := store.SavePlayerName(ctx, "carol"); err != nil {
		t.Fatalf("save name: %v", err)
	}
	name, err = store.LoadPlayerName(ctx)
	if err != nil {
		t.Fatalf("load name: %v", err)
	}
	if name != "carol" {
		t.Fatalf("expected carol, got %q", name)
	}
}
