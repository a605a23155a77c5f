package game

import (
	"strings"

	"bisca/utils"
)

// PlayerChanged is invoked synchronously whenever the current player changes.
type PlayerChanged func(current *Player)

// Pool is the ordered set of seated players plus a cursor on the player whose turn it is.
type Pool struct {
	players   []*Player
	current   int
	callbacks []PlayerChanged
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Add(player *Player) {
	p.players = append(p.players, player)
}

// Players returns the seated players in seat order. The slice must not be modified.
func (p *Pool) Players() []*Player {
	return p.players
}

// Current returns the player under the cursor, or nil for an empty pool.
func (p *Pool) Current() *Player {
	if len(p.players) == 0 {
		return nil
	}
	return p.players[p.current]
}

// CurrentIndex returns the seat index under the cursor.
func (p *Pool) CurrentIndex() int {
	return p.current
}

// SetCurrent moves the cursor to player and notifies every registered callback.
func (p *Pool) SetCurrent(player *Player) error {
	i := utils.FindIndex(p.players, player)
	if i < 0 {
		return ErrNotMember
	}
	p.current = i
	p.notify()
	return nil
}

// Advance moves the cursor to the next seat, wrapping around, and notifies callbacks.
func (p *Pool) Advance() {
	if len(p.players) == 0 {
		return
	}
	p.current = (p.current + 1) % len(p.players)
	p.notify()
}

// RegisterCallback adds fn to the change notification list.
func (p *Pool) RegisterCallback(fn PlayerChanged) {
	p.callbacks = append(p.callbacks, fn)
}

func (p *Pool) notify() {
	current := p.Current()
	for _, fn := range p.callbacks {
		fn(current)
	}
}

// InSeatOrder returns the players starting at the cursor and wrapping around.
func (p *Pool) InSeatOrder() []*Player {
	out := make([]*Player, 0, len(p.players))
	for i := range p.players {
		out = append(out, p.players[(p.current+i)%len(p.players)])
	}
	return out
}

func (p *Pool) Len() int {
	return len(p.players)
}

func (p *Pool) String() string {
	names := make([]string, len(p.players))
	for i, player := range p.players {
		names[i] = player.Name()
	}
	return strings.Join(names, ", ")
}
