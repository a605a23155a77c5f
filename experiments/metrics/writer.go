package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	Iteration int
	Seating   []string // player names in seat order
	GameMetric
}

type TrickRecord struct {
	Game uuid.UUID // GameMetric.ID
	TrickMetric
}

// Writer persists the results of a simulation run.
type Writer interface {
	WritePlayerStats(stats []PlayerStats) error
	WriteGameRecords(records []GameRecord) error
	WriteTrickRecords(records []TrickRecord) error
	Close() error
}

// CSVWriter writes one CSV file per record kind into a timestamped directory.
type CSVWriter struct {
	baseDir string
}

func NewCSVWriter(root string) (*CSVWriter, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &CSVWriter{
		baseDir: baseDir,
	}, nil
}

// Dir returns the directory the files are written to.
func (w *CSVWriter) Dir() string { return w.baseDir }

func (w *CSVWriter) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func (w *CSVWriter) WritePlayerStats(stats []PlayerStats) error {
	header := []string{"player", "type", "wins", "draws", "losses", "games", "total_points",
		"average_points_per_game", "highest_game_turnover", "tricks_won",
		"average_points_per_trick", "highest_trick_turnover"}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			s.Kind,
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.TotalPoints),
			strconv.FormatFloat(s.AveragePointsPerGame, 'f', 2, 64),
			strconv.Itoa(s.HighestGameTurnover),
			strconv.Itoa(s.TricksWon),
			strconv.FormatFloat(s.AveragePointsPerTrick, 'f', 2, 64),
			strconv.Itoa(s.HighestTrickTurnover),
		})
	}
	return w.write("player_stats.csv", header, rows)
}

func (w *CSVWriter) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "iteration", "seating", "trump", "rectified", "starting_player",
		"winners", "draw", "tricks", "start_time", "end_time", "duration"}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID.String(),
			strconv.Itoa(r.Iteration),
			strings.Join(r.Seating, "|"),
			r.Trump.String(),
			strconv.FormatBool(r.Rectified),
			r.StartingPlayer,
			strings.Join(r.Winners, "|"),
			strconv.FormatBool(r.Draw),
			strconv.Itoa(r.Tricks),
			r.StartTime.Format(time.RFC3339Nano),
			r.EndTime.Format(time.RFC3339Nano),
			r.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *CSVWriter) WriteTrickRecords(records []TrickRecord) error {
	header := []string{"game", "step", "leader", "winner", "card", "points"}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Game.String(),
			strconv.Itoa(r.Step),
			r.Leader,
			r.Winner,
			r.Card.Short(),
			strconv.Itoa(r.Points),
		})
	}
	return w.write("trick_records.csv", header, rows)
}

func (w *CSVWriter) Close() error { return nil }
