package game

import (
	"time"

	"bisca/utils"

	"golang.org/x/exp/rand"
)

// Deck is the shuffled stock of undealt cards. It holds at most one card per (rank, suit).
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck returns a freshly reset and shuffled 40-card deck. A nil rng falls back to a
// time-seeded source.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// FullDeck returns one card per (rank, suit) in a fixed order.
func FullDeck() []Card {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Reset repopulates the deck with all 40 cards and shuffles it.
func (d *Deck) Reset() {
	d.cards = FullDeck()
	d.Shuffle()
}

// Shuffle applies a uniform random permutation to the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Rectify removes every card of rank Two. Used for 3 and 6 player matches so that the deck
// divides evenly. Calling it again has no effect.
func (d *Deck) Rectify() {
	kept := d.cards[:0]
	for _, c := range d.cards {
		if c.Rank != Two {
			kept = append(kept, c)
		}
	}
	d.cards = kept
}

// RemoveCard removes card from the deck, reporting whether it was present.
func (d *Deck) RemoveCard(card Card) bool {
	var ok bool
	d.cards, ok = utils.Remove(d.cards, card)
	return ok
}

// Draw pops the top card. The second result is false once the deck is exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, true
}

// Contains reports whether card is still in the deck.
func (d *Deck) Contains(card Card) bool {
	return utils.FindIndex(d.cards, card) >= 0
}

// Cards returns a copy of the remaining cards, top of the deck last.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) Len() int {
	return len(d.cards)
}
