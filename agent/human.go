package agent

import (
	"fmt"

	"bisca/game"
)

// SelectFunc returns the index of the card to play from the player's hand. It may block
// for as long as the user takes to answer.
type SelectFunc func() int

// Human relays the decision to an external input source such as a terminal or UI.
type Human struct {
	selector SelectFunc
}

func NewHuman(selector SelectFunc) *Human {
	return &Human{selector: selector}
}

func (h *Human) Kind() string { return "Human" }

// RegisterInputHandler replaces the selection callback.
func (h *Human) RegisterInputHandler(selector SelectFunc) {
	h.selector = selector
}

// Action blocks on the selection callback and returns the chosen hand card.
func (h *Human) Action(_ game.World, self *game.Player) (game.Card, error) {
	if h.selector == nil {
		return game.Card{}, ErrNoInputHandler
	}
	hand := self.Hand()
	choice := h.selector()
	if choice < 0 || choice >= len(hand) {
		return game.Card{}, fmt.Errorf("index %d of %d cards: %w", choice, len(hand), ErrInvalidSelection)
	}
	return hand[choice], nil
}
