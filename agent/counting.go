package agent

import "bisca/game"

// Counting tracks every card it has not yet seen and estimates, for each legal card, the
// probability that no opponent holds a card able to beat it.
type Counting struct {
	base
	unseen map[game.Card]struct{}
}

func NewCounting(options ...Option) *Counting {
	return &Counting{base: newBase(options)}
}

func (a *Counting) Kind() string { return "GreedyCountingAgent" }

// Reset forgets the cards seen in a previous match.
func (a *Counting) Reset() {
	a.unseen = nil
}

// Unseen returns the number of cards the agent has not seen yet.
func (a *Counting) Unseen() int {
	return len(a.unseen)
}

// refresh removes every visible card from the unseen set: the own hand, the table and all
// piles.
func (a *Counting) refresh(w game.World, self *game.Player) {
	if a.unseen == nil {
		a.unseen = make(map[game.Card]struct{}, 40)
		for _, c := range game.FullDeck() {
			if w.Rectified() && c.Rank == game.Two {
				continue
			}
			a.unseen[c] = struct{}{}
		}
	}
	seen := self.Hand()
	if trick := w.CurrentTrick(); trick != nil {
		seen = append(seen, trick.Cards()...)
	}
	for _, p := range w.Pool().Players() {
		seen = append(seen, p.Pile()...)
	}
	for _, c := range seen {
		delete(a.unseen, c)
	}
}

func (a *Counting) Action(w game.World, self *game.Player) (game.Card, error) {
	cards, err := playable(w, self)
	if err != nil {
		return game.Card{}, err
	}
	a.refresh(w, self)
	return a.evaluate(w, self, cards).best(), nil
}

// hiddenCards returns how many unseen cards the players still to act may hold. Nobody can
// respond to the last card of a trick.
func hiddenCards(w game.World, self *game.Player) int {
	if trick := w.CurrentTrick(); trick != nil && trick.Len() == trick.Size()-1 {
		return 0
	}
	return (w.Pool().Len() - 1) * self.HandSize()
}

func (a *Counting) evaluate(w game.World, self *game.Player, cards []game.Card) evaluations {
	trump := w.TrumpSuit()
	onTable, starting := table(w)
	hidden := hiddenCards(w, self)

	var leading game.Card
	if len(onTable) > 0 {
		leading = game.LeadingCard(onTable, starting, trump)
	}

	scored := make(evaluations, len(cards))
	for i, card := range cards {
		suit := starting
		if len(onTable) == 0 {
			suit = card.Suit
		}
		p := NotBeatenProbability(hidden, len(a.unseen), a.countBeating(card, suit, trump))
		points := float64(card.Points())

		var value float64
		switch {
		case len(onTable) == 0:
			value = p * points
		case game.Beats(card, leading, starting, trump):
			value = p * points
		default:
			value = -10 - (points*2 + isTrump(card, trump)*5)
		}
		scored[i] = evaluation{card: card, value: value}
	}

	event := a.log.Debug().Str("player", self.Name()).Int("unseen", len(a.unseen)).Int("hidden", hidden).Stringer("evaluation", scored)
	if len(onTable) > 0 {
		event = event.Stringer("lead", leading)
	}
	event.Msg("hand evaluation")

	return scored
}

// countBeating returns how many unseen cards would beat card on a trick started with suit.
func (a *Counting) countBeating(card game.Card, suit, trump game.Suit) int {
	count := 0
	for c := range a.unseen {
		if game.Beats(c, card, suit, trump) {
			count++
		}
	}
	return count
}

// NotBeatenProbability returns the probability that none of the beats winning cards among
// unseen cards ends up in the hidden cards held by opponents, drawing without replacement.
func NotBeatenProbability(hidden, unseen, beats int) float64 {
	p := 1.0
	for i := 0; i < beats; i++ {
		num, den := unseen-hidden-i, unseen-i
		if num <= 0 || den <= 0 {
			return 0
		}
		p *= float64(num) / float64(den)
	}
	return p
}
