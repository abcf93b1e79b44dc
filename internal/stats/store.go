// Package stats keeps per-player totals across finished rounds.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Stats summarizes a player's finished rounds.
type Stats struct {
	PlayerID     string      `json:"playerId"`
	GamesPlayed  int         `json:"gamesPlayed"`
	Wins         int         `json:"wins"`
	Streak       int         `json:"streak"`
	BestStreak   int         `json:"bestStreak"`
	Distribution map[int]int `json:"distribution"` // guesses (1..6, 6 means 6+) → wins
}

// maxBucket is the last distribution bucket; longer wins count as "6+".
const maxBucket = 6

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record adds one finished round. A win extends the streak, a loss resets it.
func (s *Store) Record(ctx context.Context, playerID string, won bool, guesses int) error {
	if playerID == "" {
		return errors.New("stats: empty player id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var gp, wins, streak, best int
	err = tx.QueryRowContext(ctx,
		`SELECT games_played, wins, streak, best_streak FROM player_stats WHERE player_id=?`, playerID,
	).Scan(&gp, &wins, &streak, &best)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("load stats: %w", err)
	}

	gp++
	if won {
		wins++
		streak++
		if streak > best {
			best = streak
		}
	} else {
		streak = 0
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO player_stats (player_id, games_played, wins, streak, best_streak, updated_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(player_id) DO UPDATE SET
			games_played=excluded.games_played,
			wins=excluded.wins,
			streak=excluded.streak,
			best_streak=excluded.best_streak,
			updated_at=excluded.updated_at`,
		playerID, gp, wins, streak, best, now,
	); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}

	if won {
		bucket := min(max(guesses, 1), maxBucket)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO win_distribution (player_id, guesses, count) VALUES (?,?,1)
			ON CONFLICT(player_id, guesses) DO UPDATE SET count = count + 1`,
			playerID, bucket,
		); err != nil {
			return fmt.Errorf("save distribution: %w", err)
		}
	}
	return tx.Commit()
}

// Get returns the player's totals; unknown players get zero values.
func (s *Store) Get(ctx context.Context, playerID string) (Stats, error) {
	st := Stats{PlayerID: playerID, Distribution: map[int]int{}}
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, wins, streak, best_streak FROM player_stats WHERE player_id=?`, playerID,
	).Scan(&st.GamesPlayed, &st.Wins, &st.Streak, &st.BestStreak)
	if errors.Is(err, sql.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT guesses, count FROM win_distribution WHERE player_id=?`, playerID)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var g, n int
		if err := rows.Scan(&g, &n); err != nil {
			return st, err
		}
		st.Distribution[g] = n
	}
	return st, rows.Err()
}
