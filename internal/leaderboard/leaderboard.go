// Package leaderboard keeps a rating-ordered view of players in a redis
// sorted set. It is an optional collaborator: the server runs without it
// and settlement never depends on it.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ratingsKey = "typeclash:leaderboard:rating"
	namesKey   = "typeclash:leaderboard:names"
)

type Entry struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
}

type Board struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(rdb *redis.Client, log *zap.Logger) *Board {
	return &Board{rdb: rdb, log: log}
}

// Update records a player's current rating and display name.
func (b *Board) Update(ctx context.Context, playerID, name string, rating int) error {
	pipe := b.rdb.Pipeline()
	pipe.ZAdd(ctx, ratingsKey, redis.Z{Score: float64(rating), Member: playerID})
	pipe.HSet(ctx, namesKey, playerID, name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard update: %w", err)
	}
	return nil
}

// Top returns the highest-rated players, best first.
func (b *Board) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	members, err := b.rdb.ZRevRangeWithScores(ctx, ratingsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard range: %w", err)
	}
	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		name, err := b.rdb.HGet(ctx, namesKey, id).Result()
		if err != nil && err != redis.Nil {
			b.log.Warn("leaderboard name lookup failed", zap.String("player", id), zap.Error(err))
		}
		entries = append(entries, Entry{PlayerID: id, Name: name, Rating: int(m.Score)})
	}
	return entries, nil
}
