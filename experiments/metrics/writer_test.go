package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bisca/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func sampleRecords() ([]PlayerStats, []GameRecord, []TrickRecord) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()
	stats := []PlayerStats{
		{Name: "Player 1", Kind: "RandomAgent", Wins: 1, Games: 1, TotalPoints: 70, AveragePointsPerGame: 70},
		{Name: "Player 2", Kind: "SimpleGreedyAgent", Losses: 1, Games: 1, TotalPoints: 50, AveragePointsPerGame: 50},
	}
	games := []GameRecord{{
		Iteration: 1,
		Seating:   []string{"Player 2", "Player 1"},
		GameMetric: GameMetric{
			ID:             id,
			Players:        2,
			Trump:          game.Hearts,
			StartingPlayer: "Player 2",
			Winners:        []string{"Player 1"},
			Tricks:         20,
			StartTime:      start,
			EndTime:        start.Add(time.Millisecond),
			Duration:       time.Millisecond,
		},
	}}
	tricks := []TrickRecord{
		{Game: id, TrickMetric: TrickMetric{Step: 1, Leader: "Player 2", Winner: "Player 1", Card: game.NewCard(game.Ace, game.Hearts), Points: 21}},
		{Game: id, TrickMetric: TrickMetric{Step: 2, Leader: "Player 1", Winner: "Player 1", Card: game.NewCard(game.Two, game.Clubs), Points: 0}},
	}
	return stats, games, tricks
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter(t *testing.T) {
	w, err := NewCSVWriter(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	stats, games, tricks := sampleRecords()
	require.NoError(t, w.WritePlayerStats(stats))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteTrickRecords(tricks))

	rows := readCSV(t, filepath.Join(w.Dir(), "player_stats.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, "player", rows[0][0])
	require.Equal(t, []string{"Player 1", "RandomAgent", "1", "0", "0"}, rows[1][:5])
	require.Equal(t, "70.00", rows[1][7])

	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, games[0].ID.String(), rows[1][0])
	require.Equal(t, "Player 2|Player 1", rows[1][2])
	require.Equal(t, "Hearts", rows[1][3])
	require.Equal(t, "Player 1", rows[1][6])

	rows = readCSV(t, filepath.Join(w.Dir(), "trick_records.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, []string{"1", "Player 2", "Player 1", "A♥", "21"}, rows[1][1:])
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "bisca.db")
	w, err := NewSQLiteWriter(path)
	require.NoError(t, err)
	defer w.Close()

	stats, games, tricks := sampleRecords()
	require.NoError(t, w.WritePlayerStats(stats))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteTrickRecords(tricks))

	var count int
	require.NoError(t, w.DB().QueryRow(`SELECT COUNT(*) FROM player_stats WHERE run_id = ?`, w.RunID().String()).Scan(&count))
	require.Equal(t, 2, count)

	var winners string
	var tricksPlayed int
	err = w.DB().QueryRow(`SELECT winners, tricks FROM games WHERE id = ?`, games[0].ID.String()).Scan(&winners, &tricksPlayed)
	require.NoError(t, err)
	require.Equal(t, "Player 1", winners)
	require.Equal(t, 20, tricksPlayed)

	var points int
	require.NoError(t, w.DB().QueryRow(`SELECT SUM(points) FROM tricks WHERE game_id = ?`, games[0].ID.String()).Scan(&points))
	require.Equal(t, 21, points)

	t.Run("a trick of an unknown game is rejected", func(t *testing.T) {
		err := w.WriteTrickRecords([]TrickRecord{{Game: uuid.New(), TrickMetric: TrickMetric{Step: 1}}})
		require.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewSQLiteWriter("  ")
		require.Error(t, err)
	})
}
