package game

import "errors"

var (
	ErrNotEnoughPlayers = errors.New("not enough players to start a match")
	ErrTooManyPlayers   = errors.New("too many players to start a match")
	ErrMatchStarted     = errors.New("match already started")
	ErrNotMember        = errors.New("player is not in the pool")
	ErrCardNotInHand    = errors.New("card not in hand")
	ErrTrickIncomplete  = errors.New("trick is not complete")
	ErrEmptyHand        = errors.New("hand is empty")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }
