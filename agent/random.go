package agent

import "bisca/game"

// Random plays a uniformly random legal card.
type Random struct {
	base
}

func NewRandom(options ...Option) *Random {
	return &Random{base: newBase(options)}
}

func (a *Random) Kind() string { return "RandomAgent" }

func (a *Random) Action(w game.World, self *game.Player) (game.Card, error) {
	cards, err := playable(w, self)
	if err != nil {
		return game.Card{}, err
	}
	return a.choice(cards), nil
}
