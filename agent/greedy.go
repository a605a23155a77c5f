package agent

import "bisca/game"

// SimpleGreedy plays its highest ranked legal card, breaking ties at random.
type SimpleGreedy struct {
	base
}

func NewSimpleGreedy(options ...Option) *SimpleGreedy {
	return &SimpleGreedy{base: newBase(options)}
}

func (a *SimpleGreedy) Kind() string { return "SimpleGreedyAgent" }

func (a *SimpleGreedy) Action(w game.World, self *game.Player) (game.Card, error) {
	cards, err := playable(w, self)
	if err != nil {
		return game.Card{}, err
	}
	return a.choice(game.HighestRankCards(cards)), nil
}
