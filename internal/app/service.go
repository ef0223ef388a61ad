package app

import (
	"context"

	"trivia-engine/internal/domain"
)

// QuestionRepository loads question packs (from cache/backing store).
type QuestionRepository interface {
	GetPack(ctx context.Context, packID string) (domain.QuestionPack, error)
}

// LeaderboardStore persists the per-bucket top lists. The core never reads
// or writes storage directly; everything goes through this contract.
type LeaderboardStore interface {
	Load(ctx context.Context, bucket string) ([]domain.LeaderboardEntry, error)
	Save(ctx context.Context, bucket string, entries []domain.LeaderboardEntry) error
}

// PlayerNameStore remembers the last-used player name.
type PlayerNameStore interface {
	LoadPlayerName(ctx context.Context) (string, error)
	SavePlayerName(ctx context.Context, name string) error
}

// GameService wires question content and leaderboard persistence around
// the session state machine.
type GameService struct {
	packs  QuestionRepository
	boards LeaderboardStore
	names  PlayerNameStore
}

func NewGameService(packs QuestionRepository, boards LeaderboardStore) *GameService {
	return &GameService{packs: packs, boards: boards}
}

// WithPlayerNames enables remembering the last-used player name.
func (s *GameService) WithPlayerNames(names PlayerNameStore) *GameService {
	s.names = names
	return s
}

// LastPlayerName returns the remembered player name, if any.
func (s *GameService) LastPlayerName(ctx context.Context) (string, error) {
	if s.names == nil {
		return "", nil
	}
	return s.names.LoadPlayerName(ctx)
}

// NewSession builds a session over the given pack's question bank.
func (s *GameService) NewSession(ctx context.Context, packID, playerName string) (*GameSession, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	return NewGameSession(NewQuestionBank(pack.Questions), playerName), nil
}

// Categories lists the selectable category labels for a pack.
func (s *GameService) Categories(ctx context.Context, packID string) ([]string, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	return NewQuestionBank(pack.Questions).Categories(), nil
}

// Leaderboard returns the persisted top list for a bucket.
func (s *GameService) Leaderboard(ctx context.Context, bucket string) ([]domain.LeaderboardEntry, error) {
	return s.boards.Load(ctx, bucket)
}

// RecordResult merges a finished game's entry into its bucket, keeping the
// top entries by score, and returns the updated list.
func (s *GameService) RecordResult(ctx context.Context, summary domain.ResultSummary) ([]domain.LeaderboardEntry, error) {
	bucket := summary.Entry.Bucket
	existing, err := s.boards.Load(ctx, bucket)
	if err != nil {
		return nil, err
	}
	merged := MergeLeaderboard(existing, summary.Entry)
	if err := s.boards.Save(ctx, bucket, merged); err != nil {
		return nil, err
	}
	if s.names != nil {
		// Best effort; losing the keepsake never fails the result.
		_ = s.names.SavePlayerName(ctx, summary.Entry.PlayerName)
	}
	return merged, nil
}
