package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"trivia-engine/internal/domain"
)

// LeaderboardStore persists per-bucket top lists as JSONB rows.
type LeaderboardStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool}
}

func (s *LeaderboardStore) Load(ctx context.Context, bucket string) ([]domain.LeaderboardEntry, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT entries FROM leaderboards WHERE bucket=$1`, bucket).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal leaderboard: %w", err)
	}
	return entries, nil
}

func (s *LeaderboardStore) Save(ctx context.Context, bucket string, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO leaderboards (bucket, entries) VALUES ($1, $2::jsonb)
		ON CONFLICT (bucket) DO UPDATE SET entries=EXCLUDED.entries`,
		bucket, string(data))
	if err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}
