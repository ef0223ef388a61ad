package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"trivia-engine/internal/domain"
)

// LeaderboardStore persists per-bucket top lists as JSON values:
// SET leaderboard:{bucket} {json array}. The merge/top-10 policy lives in
// the core; this store only round-trips whatever list it is handed.
type LeaderboardStore struct {
	client *redis.Client
}

func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{client: client}
}

func (s *LeaderboardStore) Load(ctx context.Context, bucket string) ([]domain.LeaderboardEntry, error) {
	raw, err := s.client.Get(ctx, s.bucketKey(bucket)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *LeaderboardStore) Save(ctx context.Context, bucket string, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.bucketKey(bucket), data, 0).Err()
}

func (s *LeaderboardStore) LoadPlayerName(ctx context.Context) (string, error) {
	name, err := s.client.Get(ctx, playerNameKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return name, err
}

func (s *LeaderboardStore) SavePlayerName(ctx context.Context, name string) error {
	return s.client.Set(ctx, playerNameKey, name, 0).Err()
}

const playerNameKey = "player:name"

func (s *LeaderboardStore) bucketKey(bucket string) string {
	return "leaderboard:" + bucket
}
