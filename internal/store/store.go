// Package store persists users, cumulative stats and bounded match history
// in PostgreSQL. It implements the identity-directory and persistence
// collaborator interfaces the arena depends on.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/puravnayak/TypeClash/internal/arena"
	"github.com/puravnayak/TypeClash/internal/leaderboard"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

const (
	defaultRating  = 1200
	historyMaxSize = 10
)

// User is one registered player. PlayerID is the external auth subject.
type User struct {
	ID              uint   `gorm:"primaryKey"`
	PlayerID        string `gorm:"uniqueIndex;size:128"`
	Name            string
	Email           string
	Avatar          string
	Rating          int `gorm:"default:1200"`
	GamesPlayed     int
	Wins            int
	Losses          int
	Draws           int
	AverageWPM      int
	AverageAccuracy int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Match is one history record. Only the most recent historyMaxSize rows per
// user are kept; older ones are trimmed on insert.
type Match struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	Opponent     string
	UserWPM      float64
	OpponentWPM  float64
	RatingChange int
	Result       string `gorm:"size:8"`
	CreatedAt    time.Time
}

type Store struct {
	db    *gorm.DB
	board *leaderboard.Board // optional, best-effort
	log   *zap.Logger
}

// Open connects, migrates and returns the store.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&User{}, &Match{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// AttachLeaderboard wires the optional redis leaderboard. Updates to it are
// best-effort and never fail a settlement write.
func (s *Store) AttachLeaderboard(b *leaderboard.Board) {
	s.board = b
}

// SyncUser upserts a user on auth exchange and returns the stored record.
func (s *Store) SyncUser(ctx context.Context, playerID, name, email, avatar string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = User{PlayerID: playerID, Name: name, Email: email, Avatar: avatar, Rating: defaultRating}
		if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.log.Info("user created", zap.String("player", playerID))
		return &u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// Profile returns the user record for a player id.
func (s *Store) Profile(ctx context.Context, playerID string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// Resolve maps a player id to a connection-scoped identity for the arena.
func (s *Store) Resolve(ctx context.Context, playerID string) (arena.Player, error) {
	u, err := s.Profile(ctx, playerID)
	if err != nil {
		return arena.Player{}, err
	}
	return arena.Player{ID: u.PlayerID, Name: u.Name, Rating: u.Rating}, nil
}

// History returns the bounded match history, most recent first.
func (s *Store) History(ctx context.Context, playerID string) ([]Match, error) {
	u, err := s.Profile(ctx, playerID)
	if err != nil {
		return nil, err
	}
	var matches []Match
	err = s.db.WithContext(ctx).
		Where("user_id = ?", u.ID).
		Order("created_at DESC").
		Limit(historyMaxSize).
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return matches, nil
}

// LoadRating implements arena.Store.
func (s *Store) LoadRating(ctx context.Context, playerID string) (int, error) {
	u, err := s.Profile(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return u.Rating, nil
}

// SaveMatchOutcome implements arena.Store. The rating, stats and history
// updates for one player commit atomically; the leaderboard update rides
// outside the transaction.
func (s *Store) SaveMatchOutcome(ctx context.Context, playerID string, ratingBefore, ratingAfter int, delta arena.StatsDelta, entry arena.HistoryEntry) error {
	var u User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", playerID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		u.Rating = ratingAfter
		u.GamesPlayed++
		switch delta.Result {
		case "win":
			u.Wins++
		case "loss":
			u.Losses++
		default:
			u.Draws++
		}
		n := u.GamesPlayed
		u.AverageWPM = incrementalMean(u.AverageWPM, n, delta.WPM)
		u.AverageAccuracy = incrementalMean(u.AverageAccuracy, n, delta.Accuracy)
		if err := tx.Save(&u).Error; err != nil {
			return err
		}

		rec := Match{
			UserID:       u.ID,
			Opponent:     entry.Opponent,
			UserWPM:      entry.UserWPM,
			OpponentWPM:  entry.OpponentWPM,
			RatingChange: entry.RatingChange,
			Result:       entry.Result,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		// trim anything beyond the newest historyMaxSize rows
		return tx.Exec(
			`DELETE FROM matches WHERE user_id = ? AND id NOT IN
			 (SELECT id FROM matches WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?)`,
			u.ID, u.ID, historyMaxSize,
		).Error
	})
	if err != nil {
		return fmt.Errorf("save outcome for %s: %w", playerID, err)
	}

	if s.board != nil {
		if err := s.board.Update(ctx, u.PlayerID, u.Name, u.Rating); err != nil {
			s.log.Warn("leaderboard update failed", zap.String("player", playerID), zap.Error(err))
		}
	}
	return nil
}

// incrementalMean folds one value into a rounded running average, where n
// is the post-increment sample count.
func incrementalMean(oldAvg, n int, value float64) int {
	if n <= 0 {
		return oldAvg
	}
	return int(math.Round((float64(oldAvg)*float64(n-1) + value) / float64(n)))
}
