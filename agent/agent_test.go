package agent

import (
	"testing"

	"bisca/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type world struct {
	trick     *game.Trick
	trump     game.Suit
	pool      *game.Pool
	rule      game.FollowRule
	rectified bool
}

func (w *world) CurrentTrick() *game.Trick { return w.trick }
func (w *world) TrumpSuit() game.Suit { return w.trump }
func (w *world) Pool() *game.Pool { return w.pool }
func (w *world) FollowRule() game.FollowRule { return w.rule }
func (w *world) Rectified() bool { return w.rectified }

// setup seats self after one opponent per table card plus one more, deals hand to self
// and plays table in order.
func setup(trump game.Suit, hand []game.Card, onTable ...game.Card) (*world, *game.Player) {
	pool := game.NewPool()
	self := game.NewPlayer("self", nil)
	opponents := make([]*game.Player, len(onTable)+1)
	for i := range opponents {
		opponents[i] = game.NewPlayer("opponent", nil)
	}
	for _, o := range opponents[:len(onTable)] {
		pool.Add(o)
	}
	pool.Add(self)
	pool.Add(opponents[len(onTable)])

	for _, c := range hand {
		self.AddToHand(c)
	}
	trick := game.NewTrick(pool.Len())
	for i, c := range onTable {
		trick.AddPlay(opponents[i], c)
	}
	return &world{trick: trick, trump: trump, pool: pool}, self
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func card(rank game.Rank, suit game.Suit) game.Card {
	return game.NewCard(rank, suit)
}

func TestRandom(t *testing.T) {
	hand := []game.Card{card(game.Two, game.Spades), card(game.Ace, game.Clubs), card(game.Five, game.Spades)}
	w, self := setup(game.Hearts, hand, card(game.King, game.Spades))
	a := NewRandom(seeded(1))
	require.Equal(t, "RandomAgent", a.Kind())

	seen := map[game.Card]bool{}
	for i := 0; i < 100; i++ {
		c, err := a.Action(w, self)
		require.NoError(t, err)
		require.Equal(t, game.Spades, c.Suit, "must follow suit")
		seen[c] = true
	}
	require.Len(t, seen, 2, "both spades should eventually be picked")
}

func TestRandomEmptyHand(t *testing.T) {
	w, self := setup(game.Hearts, nil)
	_, err := NewRandom().Action(w, self)
	require.ErrorIs(t, err, game.ErrEmptyHand)
}

func TestSimpleGreedy(t *testing.T) {
	t.Run("highest legal card", func(t *testing.T) {
		hand := []game.Card{card(game.Ace, game.Clubs), card(game.Four, game.Spades), card(game.Seven, game.Spades)}
		w, self := setup(game.Hearts, hand, card(game.King, game.Spades))
		c, err := NewSimpleGreedy(seeded(2)).Action(w, self)
		require.NoError(t, err)
		require.Equal(t, card(game.Seven, game.Spades), c)
	})

	t.Run("ties broken at random", func(t *testing.T) {
		hand := []game.Card{card(game.King, game.Clubs), card(game.Four, game.Spades), card(game.King, game.Hearts)}
		w, self := setup(game.Diamonds, hand)
		a := NewSimpleGreedy(seeded(3))
		seen := map[game.Card]bool{}
		for i := 0; i < 100; i++ {
			c, err := a.Action(w, self)
			require.NoError(t, err)
			require.Equal(t, game.King, c.Rank)
			seen[c] = true
		}
		require.Len(t, seen, 2)
	})
}

func TestHuman(t *testing.T) {
	hand := []game.Card{card(game.Ace, game.Clubs), card(game.Four, game.Spades)}
	w, self := setup(game.Hearts, hand)

	t.Run("returns the selected hand card", func(t *testing.T) {
		h := NewHuman(func() int { return 1 })
		c, err := h.Action(w, self)
		require.NoError(t, err)
		require.Equal(t, hand[1], c)
		require.Equal(t, "Human", h.Kind())
	})

	t.Run("out of range selection", func(t *testing.T) {
		h := NewHuman(func() int { return 2 })
		_, err := h.Action(w, self)
		require.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("requires an input handler", func(t *testing.T) {
		h := NewHuman(nil)
		_, err := h.Action(w, self)
		require.ErrorIs(t, err, ErrNoInputHandler)

		h.RegisterInputHandler(func() int { return 0 })
		c, err := h.Action(w, self)
		require.NoError(t, err)
		require.Equal(t, hand[0], c)
	})
}

func TestPointLossLeading(t *testing.T) {
	hand := []game.Card{card(game.King, game.Clubs), card(game.Three, game.Diamonds), card(game.Ace, game.Hearts)}

	t.Run("balanced leads its highest card", func(t *testing.T) {
		w, self := setup(game.Diamonds, hand)
		c, err := NewMinimizePointLoss(seeded(1)).Action(w, self)
		require.NoError(t, err)
		require.Equal(t, card(game.Ace, game.Hearts), c)
	})

	t.Run("trump based leads its highest trump", func(t *testing.T) {
		w, self := setup(game.Diamonds, hand)
		c, err := NewTrumpBased(seeded(1)).Action(w, self)
		require.NoError(t, err)
		require.Equal(t, card(game.Three, game.Diamonds), c)
	})

	t.Run("trump based without trumps leads its highest card", func(t *testing.T) {
		w, self := setup(game.Spades, hand)
		c, err := NewTrumpBased(seeded(1)).Action(w, self)
		require.NoError(t, err)
		require.Equal(t, card(game.Ace, game.Hearts), c)
	})
}

func TestPointLossFollowing(t *testing.T) {
	t.Run("overtakes with the most valuable card of the suit", func(t *testing.T) {
		hand := []game.Card{card(game.Two, game.Spades), card(game.Ace, game.Spades), card(game.Ace, game.Clubs)}
		w, self := setup(game.Diamonds, hand, card(game.King, game.Spades))
		for _, a := range []*PointLoss{NewMinimizePointLoss(), NewTrumpSave(), NewTrumpBased()} {
			c, err := a.Action(w, self)
			require.NoError(t, err)
			require.Equal(t, card(game.Ace, game.Spades), c, a.Kind())
		}
	})

	t.Run("trumps when it cannot follow", func(t *testing.T) {
		hand := []game.Card{card(game.Ace, game.Clubs), card(game.Two, game.Diamonds), card(game.Four, game.Hearts)}
		w, self := setup(game.Diamonds, hand, card(game.King, game.Spades))
		c, err := NewMinimizePointLoss().Action(w, self)
		require.NoError(t, err)
		require.Equal(t, card(game.Two, game.Diamonds), c)
	})

	t.Run("dumps its cheapest non-trump when it cannot win", func(t *testing.T) {
		hand := []game.Card{card(game.Ace, game.Clubs), card(game.Four, game.Hearts), card(game.King, game.Hearts)}
		w, self := setup(game.Diamonds, hand, card(game.King, game.Spades), card(game.Two, game.Diamonds))
		c, err := NewMinimizePointLoss().Action(w, self)
		require.NoError(t, err)
		require.Equal(t, card(game.Four, game.Hearts), c)
	})
}

func TestPointLossScores(t *testing.T) {
	seven := card(game.Seven, game.Diamonds)

	balanced := NewMinimizePointLoss()
	require.Equal(t, 10+20+5.0, balanced.score(seven, true, 1))
	require.Equal(t, -10-(20+5.0), balanced.score(seven, false, 1))

	save := NewTrumpSave()
	require.Equal(t, 15+10-15.0, save.score(seven, true, 1), "trumps are penalized even when winning")
	require.Equal(t, 15+10.0, save.score(seven, true, 0))

	based := NewTrumpBased()
	require.Equal(t, 15+10+100.0, based.score(seven, true, 1))
	require.Equal(t, -10-(20+100.0), based.score(seven, false, 1))
}
