package memory

import (
	"context"
	"sync"

	"trivia-engine/internal/domain"
)

// LeaderboardStore is an in-memory implementation of app.LeaderboardStore
// plus the player-name keepsake. Fine for single-process deployments and
// tests; swap in the Redis store to survive restarts.
type LeaderboardStore struct {
	mu         sync.RWMutex
	buckets    map[string][]domain.LeaderboardEntry
	playerName string
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{
		buckets: make(map[string][]domain.LeaderboardEntry),
	}
}

func (s *LeaderboardStore) Load(_ context.Context, bucket string) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.buckets[bucket]
	out := make([]domain.LeaderboardEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *LeaderboardStore) Save(_ context.Context, bucket string, entries []domain.LeaderboardEntry) error {
	stored := make([]domain.LeaderboardEntry, len(entries))
	copy(stored, entries)
	s.mu.Lock()
	s.buckets[bucket] = stored
	s.mu.Unlock()
	return nil
}

func (s *LeaderboardStore) LoadPlayerName(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerName, nil
}

func (s *LeaderboardStore) SavePlayerName(_ context.Context, name string) error {
	s.mu.Lock()
	s.playerName = name
	s.mu.Unlock()
	return nil
}
