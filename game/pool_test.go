package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPool(names ...string) (*Pool, []*Player) {
	pool := NewPool()
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(name, nil)
		pool.Add(players[i])
	}
	return pool, players
}

func TestPoolAdvance(t *testing.T) {
	pool, players := newTestPool("a", "b", "c")
	require.Equal(t, players[0], pool.Current())

	pool.Advance()
	pool.Advance()
	require.Equal(t, players[2], pool.Current())

	pool.Advance()
	require.Equal(t, players[0], pool.Current(), "cursor should wrap around")
}

func TestPoolEmpty(t *testing.T) {
	pool := NewPool()
	require.Nil(t, pool.Current())
	pool.Advance()
	require.Equal(t, 0, pool.CurrentIndex())
}

func TestPoolSetCurrent(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		pool, players := newTestPool("a", "b", "c")
		require.NoError(t, pool.SetCurrent(players[1]))
		require.Equal(t, 1, pool.CurrentIndex())
	})

	t.Run("non-member", func(t *testing.T) {
		pool, _ := newTestPool("a", "b")
		err := pool.SetCurrent(NewPlayer("stranger", nil))
		require.ErrorIs(t, err, ErrNotMember)
		require.Equal(t, 0, pool.CurrentIndex())
	})
}

func TestPoolCallbacks(t *testing.T) {
	pool, players := newTestPool("a", "b", "c")

	var calls []string
	pool.RegisterCallback(func(p *Player) { calls = append(calls, "first:"+p.Name()) })
	pool.RegisterCallback(func(p *Player) { calls = append(calls, "second:"+p.Name()) })

	require.NoError(t, pool.SetCurrent(players[2]))
	pool.Advance()

	require.Equal(t, []string{"first:c", "second:c", "first:a", "second:a"}, calls,
		"callbacks run synchronously in registration order on every cursor change")
}

func TestPoolInSeatOrder(t *testing.T) {
	pool, players := newTestPool("a", "b", "c")
	require.NoError(t, pool.SetCurrent(players[1]))
	require.Equal(t, []*Player{players[1], players[2], players[0]}, pool.InSeatOrder())
	require.Equal(t, "a, b, c", pool.String())
}

func TestPlayerHand(t *testing.T) {
	p := NewPlayer("p", nil)
	p.AddToHand(NewCard(Ace, Spades))
	p.AddToHand(NewCard(Two, Clubs))

	require.ErrorIs(t, p.Play(NewCard(King, Hearts)), ErrCardNotInHand)
	require.NoError(t, p.Play(NewCard(Ace, Spades)))
	require.Equal(t, []Card{NewCard(Two, Clubs)}, p.Hand())

	p.AddToPile([]Card{NewCard(Seven, Hearts), NewCard(King, Hearts)})
	require.Equal(t, 14, p.Points())

	_, err := p.Action(nil)
	require.Error(t, err, "a player without strategy cannot act")
}
