package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS player_stats (
    run_id                   TEXT NOT NULL REFERENCES runs(id),
    player                   TEXT NOT NULL,
    type                     TEXT NOT NULL,
    wins                     INTEGER NOT NULL,
    draws                    INTEGER NOT NULL,
    losses                   INTEGER NOT NULL,
    games                    INTEGER NOT NULL,
    total_points             INTEGER NOT NULL,
    average_points_per_game  REAL NOT NULL,
    highest_game_turnover    INTEGER NOT NULL,
    tricks_won               INTEGER NOT NULL,
    average_points_per_trick REAL NOT NULL,
    highest_trick_turnover   INTEGER NOT NULL,
    PRIMARY KEY (run_id, player)
)`,
	`
CREATE TABLE IF NOT EXISTS games (
    id              TEXT PRIMARY KEY,
    run_id          TEXT NOT NULL REFERENCES runs(id),
    iteration       INTEGER NOT NULL,
    seating         TEXT NOT NULL,
    trump           TEXT NOT NULL,
    rectified       INTEGER NOT NULL,
    starting_player TEXT NOT NULL,
    winners         TEXT NOT NULL,
    draw            INTEGER NOT NULL,
    tricks          INTEGER NOT NULL,
    start_time      TEXT NOT NULL,
    end_time        TEXT NOT NULL,
    duration_ns     INTEGER NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS tricks (
    game_id TEXT NOT NULL REFERENCES games(id),
    step    INTEGER NOT NULL,
    leader  TEXT NOT NULL,
    winner  TEXT NOT NULL,
    card    TEXT NOT NULL,
    points  INTEGER NOT NULL,
    PRIMARY KEY (game_id, step)
)`,
	`CREATE INDEX IF NOT EXISTS idx_games_run ON games(run_id)`,
}

// SQLiteWriter stores the results of one simulation run in a SQLite database. Several runs
// can share a database file; every row is tagged with the run id.
type SQLiteWriter struct {
	db    *sql.DB
	runID uuid.UUID
}

func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	w := &SQLiteWriter{db: db, runID: uuid.New()}
	_, err = db.ExecContext(ctx, `INSERT INTO runs (id, created_at) VALUES (?, ?)`,
		w.runID.String(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to register run: %w", err)
	}
	return w, nil
}

// RunID identifies the rows written by this writer.
func (w *SQLiteWriter) RunID() uuid.UUID { return w.runID }

// DB exposes the underlying handle for queries over stored runs.
func (w *SQLiteWriter) DB() *sql.DB { return w.db }

func (w *SQLiteWriter) Close() error {
	if w == nil || w.db == nil {
		return nil
	}
	return w.db.Close()
}

// inTx runs fn inside a single transaction, rolling back on error.
func (w *SQLiteWriter) inTx(fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (w *SQLiteWriter) WritePlayerStats(stats []PlayerStats) error {
	return w.inTx(func(ctx context.Context, tx *sql.Tx) error {
		for _, s := range stats {
			_, err := tx.ExecContext(ctx, `
INSERT INTO player_stats (
    run_id, player, type, wins, draws, losses, games, total_points, average_points_per_game,
    highest_game_turnover, tricks_won, average_points_per_trick, highest_trick_turnover
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
				w.runID.String(), s.Name, s.Kind, s.Wins, s.Draws, s.Losses, s.Games, s.TotalPoints,
				s.AveragePointsPerGame, s.HighestGameTurnover, s.TricksWon, s.AveragePointsPerTrick,
				s.HighestTrickTurnover,
			)
			if err != nil {
				return fmt.Errorf("failed to insert stats of %s: %w", s.Name, err)
			}
		}
		return nil
	})
}

func (w *SQLiteWriter) WriteGameRecords(records []GameRecord) error {
	return w.inTx(func(ctx context.Context, tx *sql.Tx) error {
		for _, r := range records {
			_, err := tx.ExecContext(ctx, `
INSERT INTO games (
    id, run_id, iteration, seating, trump, rectified, starting_player, winners, draw, tricks,
    start_time, end_time, duration_ns
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
				r.ID.String(), w.runID.String(), r.Iteration, strings.Join(r.Seating, "|"),
				r.Trump.String(), r.Rectified, r.StartingPlayer, strings.Join(r.Winners, "|"), r.Draw,
				r.Tricks, r.StartTime.Format(time.RFC3339Nano), r.EndTime.Format(time.RFC3339Nano),
				r.Duration.Nanoseconds(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert game %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (w *SQLiteWriter) WriteTrickRecords(records []TrickRecord) error {
	return w.inTx(func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO tricks (game_id, step, leader, winner, card, points)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range records {
			_, err := stmt.ExecContext(ctx, r.Game.String(), r.Step, r.Leader, r.Winner, r.Card.Short(), r.Points)
			if err != nil {
				return fmt.Errorf("failed to insert trick %d of game %s: %w", r.Step, r.Game, err)
			}
		}
		return nil
	})
}
