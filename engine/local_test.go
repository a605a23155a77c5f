package engine

import (
	"testing"

	"bisca/agent"
	"bisca/experiments/metrics"
	"bisca/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func players(n int) []*game.Player {
	out := make([]*game.Player, n)
	for i := range out {
		rng := rand.New(rand.NewSource(uint64(i + 1)))
		out[i] = game.NewPlayer(string(rune('A'+i)), agent.NewSimpleGreedy(agent.WithRand(rng)))
	}
	return out
}

func TestLocalEngineRun(t *testing.T) {
	for n := game.MinPlayers; n <= game.MaxPlayers; n++ {
		collector := metrics.NewCollector()
		e, err := LocalEngine(players(n), WithGameOptions(game.WithSeed(uint64(n)), game.WithRecorder(collector)))
		require.NoError(t, err)

		winners, gm, tricks, err := e.Run()
		require.NoError(t, err)
		require.NotEmpty(t, winners)
		require.True(t, e.Game.IsOver())

		deck := 40
		if n == 3 || n == 6 {
			deck = 36
			require.True(t, gm.Rectified)
		}
		require.Equal(t, deck/n, gm.Tricks)
		require.Len(t, tricks, gm.Tricks)
		require.Equal(t, n, gm.Players)
		require.Equal(t, len(winners) > 1, gm.Draw)
		require.Len(t, gm.Winners, len(winners))
		require.False(t, gm.EndTime.Before(gm.StartTime))

		total := 0
		for i, trick := range tricks {
			require.Equal(t, i+1, trick.Step)
			total += trick.Points
		}
		require.Equal(t, 120, total)

		for i := 1; i < len(tricks); i++ {
			require.Equal(t, tricks[i-1].Winner, tricks[i].Leader, "the trick winner leads the next trick")
		}
		require.Len(t, collector.Players(), n)
	}
}

func TestLocalEngineSeating(t *testing.T) {
	t.Run("too few players", func(t *testing.T) {
		_, err := LocalEngine(players(1))
		require.ErrorIs(t, err, game.ErrNotEnoughPlayers)
	})

	t.Run("too many players", func(t *testing.T) {
		_, err := LocalEngine(players(7))
		require.ErrorIs(t, err, game.ErrTooManyPlayers)
	})

	t.Run("starting seat", func(t *testing.T) {
		ps := players(4)
		e, err := LocalEngine(ps, WithGameOptions(game.WithSeed(3), game.WithStartingSeat(2)))
		require.NoError(t, err)
		_, gm, tricks, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, ps[2].Name(), gm.StartingPlayer)
		require.Equal(t, ps[2].Name(), tricks[0].Leader)
	})
}

func TestLocalEngineRoundLimit(t *testing.T) {
	e, err := LocalEngine(players(2), WithMaxRounds(3), WithGameOptions(game.WithSeed(1)))
	require.NoError(t, err)

	winners, gm, tricks, err := e.Run()
	require.ErrorIs(t, err, ErrRoundLimit)
	require.Nil(t, winners)
	require.Len(t, tricks, 3)
	require.Equal(t, 3, gm.Tricks)
	require.False(t, e.Game.IsOver())
}

func TestLocalEngineStrategyError(t *testing.T) {
	ps := []*game.Player{
		game.NewPlayer("human", agent.NewHuman(func() int { return 5 })),
		game.NewPlayer("bot", agent.NewRandom()),
	}
	e, err := LocalEngine(ps, WithGameOptions(game.WithSeed(1)))
	require.NoError(t, err)

	_, _, _, err = e.Run()
	require.ErrorIs(t, err, agent.ErrInvalidSelection)
}
