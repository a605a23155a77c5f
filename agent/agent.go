package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bisca/game"
	"bisca/utils"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

var (
	ErrNoInputHandler   = errors.New("no input handler registered")
	ErrInvalidSelection = errors.New("selected card index out of range")
)

type Option func(b *base)

// WithRand sets the random source used for tie-breaks.
func WithRand(rng *rand.Rand) Option {
	return func(b *base) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithLogger sets the logger receiving per-decision hand evaluations.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *base) {
		b.log = logger
	}
}

// base carries what every strategy needs: a random source and a logger.
type base struct {
	rng *rand.Rand
	log zerolog.Logger
}

func newBase(options []Option) base {
	b := base{log: zerolog.Nop()}
	for _, option := range options {
		option(&b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return b
}

// choice returns a uniformly random element of cards.
func (b *base) choice(cards []game.Card) game.Card {
	return cards[b.rng.Intn(len(cards))]
}

// evaluation is the score an agent assigned to a card, kept for debug logging.
type evaluation struct {
	card  game.Card
	value float64
}

type evaluations []evaluation

func (e evaluations) String() string {
	parts := make([]string, len(e))
	for i, ev := range e {
		parts[i] = fmt.Sprintf("%s=%.2f", ev.card.Short(), ev.value)
	}
	return strings.Join(parts, " ")
}

// best returns the first card holding the strictly highest value.
func (e evaluations) best() game.Card {
	high, _ := utils.ArgMax(e, func(ev evaluation) float64 { return ev.value })
	return high.card
}

// table returns the cards on the table and the starting suit, or nil when leading.
func table(w game.World) ([]game.Card, game.Suit) {
	trick := w.CurrentTrick()
	if trick == nil || trick.Len() == 0 {
		return nil, game.NoSuit
	}
	return trick.Cards(), trick.StartingSuit()
}

func playable(w game.World, self *game.Player) ([]game.Card, error) {
	cards := game.Playable(w, self)
	if len(cards) == 0 {
		return nil, game.ErrEmptyHand
	}
	return cards, nil
}

func isTrump(card game.Card, trump game.Suit) float64 {
	if card.Suit == trump {
		return 1
	}
	return 0
}
