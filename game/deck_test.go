package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestDeckReset(t *testing.T) {
	deck := NewDeck(seeded(1))
	require.Equal(t, 40, deck.Len())

	unique := map[Card]bool{}
	for _, c := range deck.Cards() {
		unique[c] = true
	}
	require.Len(t, unique, 40, "every (rank, suit) pair appears exactly once")

	deck.Draw()
	deck.Draw()
	deck.Reset()
	require.Equal(t, 40, deck.Len())
}

func TestDeckShuffleIsSeeded(t *testing.T) {
	a := NewDeck(seeded(42))
	b := NewDeck(seeded(42))
	require.Equal(t, a.Cards(), b.Cards(), "same seed should produce the same order")
	require.ElementsMatch(t, FullDeck(), a.Cards())
}

func TestDeckRectify(t *testing.T) {
	t.Run("removes the four Twos", func(t *testing.T) {
		deck := NewDeck(seeded(3))
		deck.Rectify()
		require.Equal(t, 36, deck.Len())

		perSuit := map[Suit]int{}
		for _, c := range deck.Cards() {
			require.NotEqual(t, Two, c.Rank)
			perSuit[c.Suit]++
		}
		for _, suit := range Suits {
			require.Equal(t, 9, perSuit[suit])
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := NewDeck(seeded(5))
		once.Rectify()
		twice := NewDeck(seeded(5))
		twice.Rectify()
		twice.Rectify()
		require.Equal(t, once.Cards(), twice.Cards())
	})
}

func TestDeckDraw(t *testing.T) {
	deck := NewDeck(seeded(7))
	top := deck.Cards()[deck.Len()-1]

	card, ok := deck.Draw()
	require.True(t, ok)
	require.Equal(t, top, card)
	require.False(t, deck.Contains(card))

	for deck.Len() > 0 {
		deck.Draw()
	}
	card, ok = deck.Draw()
	require.False(t, ok, "drawing from an empty deck is not an error")
	require.True(t, card.IsZero())
}

func TestDeckRemoveCard(t *testing.T) {
	deck := NewDeck(seeded(9))
	target := NewCard(King, Hearts)
	require.True(t, deck.RemoveCard(target))
	require.False(t, deck.RemoveCard(target))
	require.Equal(t, 39, deck.Len())
}
