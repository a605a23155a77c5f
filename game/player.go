package game

import (
	"fmt"

	"bisca/utils"
)

// Strategy is the decision-making half of a player. Action must return a card currently in
// the player's hand; returning anything else is a contract violation reported by the Game.
type Strategy interface {
	// Kind is the strategy tag used for reporting, e.g. "RandomAgent".
	Kind() string
	// Action picks the card to play given the observable world.
	Action(w World, self *Player) (Card, error)
}

// Resetter is implemented by strategies that keep per-match memory.
type Resetter interface {
	Reset()
}

// World is the state a strategy may observe when choosing a card.
type World interface {
	CurrentTrick() *Trick
	TrumpSuit() Suit
	Pool() *Pool
	FollowRule() FollowRule
	Rectified() bool
}

// Player holds a hand and a pile and delegates its choices to a Strategy.
type Player struct {
	name     string
	hand     []Card
	pile     []Card
	strategy Strategy
}

// NewPlayer returns a player named name driven by strategy.
func NewPlayer(name string, strategy Strategy) *Player {
	return &Player{name: name, strategy: strategy}
}

func (p *Player) Name() string { return p.name }

// Kind returns the strategy tag.
func (p *Player) Kind() string {
	if p.strategy == nil {
		return ""
	}
	return p.strategy.Kind()
}

func (p *Player) Strategy() Strategy { return p.strategy }

// Hand returns a copy of the cards held, in deal order.
func (p *Player) Hand() []Card {
	out := make([]Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// HandSize returns the number of cards held.
func (p *Player) HandSize() int { return len(p.hand) }

// Pile returns a copy of the cards won so far.
func (p *Player) Pile() []Card {
	out := make([]Card, len(p.pile))
	copy(out, p.pile)
	return out
}

// Points returns the total point value of the pile.
func (p *Player) Points() int {
	return SumPoints(p.pile)
}

// Holds reports whether card is in the hand.
func (p *Player) Holds(card Card) bool {
	for _, c := range p.hand {
		if c == card {
			return true
		}
	}
	return false
}

// Action asks the strategy for the next card.
func (p *Player) Action(w World) (Card, error) {
	if p.strategy == nil {
		return Card{}, fmt.Errorf("player %s has no strategy", p.name)
	}
	return p.strategy.Action(w, p)
}

// AddToHand appends a dealt card to the hand.
func (p *Player) AddToHand(card Card) {
	p.hand = append(p.hand, card)
}

// AddToPile adds the cards of a won trick to the pile.
func (p *Player) AddToPile(cards []Card) {
	p.pile = append(p.pile, cards...)
}

// Play removes card from the hand, matching by rank and suit.
func (p *Player) Play(card Card) error {
	var ok bool
	if p.hand, ok = utils.Remove(p.hand, card); ok {
		return nil
	}
	return fmt.Errorf("%s played %s: %w", p.name, card, ErrCardNotInHand)
}

// reset empties hand and pile and clears any strategy memory.
func (p *Player) reset() {
	p.hand = nil
	p.pile = nil
	if r, ok := p.strategy.(Resetter); ok {
		r.Reset()
	}
}

func (p *Player) String() string {
	return p.name
}
