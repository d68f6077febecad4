package stats

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/gravitas-games/lightsout/pkg/models"
)

// Store persists player results in Redis. Wins are plain counters,
// best solves live in a sorted set keyed by move count so the
// leaderboard comes out of a single range query.
type Store struct {
	redis  *redis.Client
	prefix string
}

// Entry is one leaderboard row.
type Entry struct {
	PlayerID string `json:"player_id"`
	Moves    int64  `json:"moves"`
}

// NewStore creates a stats store using the given key prefix.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{redis: client, prefix: prefix}
}

// RecordWin increments the player's win counter and updates their best
// solve if this one took fewer moves.
func (s *Store) RecordWin(ctx context.Context, playerID string, moves int) error {
	if err := s.redis.Incr(ctx, s.prefix+"wins:"+playerID).Err(); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}

	// LT keeps the existing score when it is already lower.
	err := s.redis.ZAddArgs(ctx, s.prefix+"best", redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: float64(moves), Member: playerID}},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to record best solve: %w", err)
	}
	return nil
}

// PlayerStats returns the accumulated results for a player. Missing
// keys read as zero values.
func (s *Store) PlayerStats(ctx context.Context, playerID string) (models.Stats, error) {
	var st models.Stats

	wins, err := s.redis.Get(ctx, s.prefix+"wins:"+playerID).Int64()
	if err != nil && err != redis.Nil {
		return st, fmt.Errorf("failed to read wins: %w", err)
	}
	st.Wins = wins

	best, err := s.redis.ZScore(ctx, s.prefix+"best", playerID).Result()
	if err != nil && err != redis.Nil {
		return st, fmt.Errorf("failed to read best solve: %w", err)
	}
	st.BestMoves = int64(best)

	return st, nil
}

// Leaderboard returns up to n players ordered by fewest moves.
func (s *Store) Leaderboard(ctx context.Context, n int64) ([]Entry, error) {
	rows, err := s.redis.ZRangeWithScores(ctx, s.prefix+"best", 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		id, _ := row.Member.(string)
		entries = append(entries, Entry{PlayerID: id, Moves: int64(row.Score)})
	}
	return entries, nil
}
