package game

// Play is a single card played by a player during a trick.
type Play struct {
	Player *Player
	Card   Card
}

// Trick is one round in which every seated player plays exactly one card.
type Trick struct {
	size         int
	plays        []Play
	startingSuit Suit
	winningPlay  *Play
}

// NewTrick returns an empty trick expecting one play per seat.
func NewTrick(size int) *Trick {
	return &Trick{size: size, plays: make([]Play, 0, size)}
}

// AddPlay records a play. The first play fixes the starting suit.
func (t *Trick) AddPlay(player *Player, card Card) {
	if len(t.plays) == 0 {
		t.startingSuit = card.Suit
	}
	t.plays = append(t.plays, Play{Player: player, Card: card})
}

// Plays returns the plays in table order. The slice must not be modified.
func (t *Trick) Plays() []Play {
	return t.plays
}

// Cards returns the cards on the table in play order.
func (t *Trick) Cards() []Card {
	cards := make([]Card, len(t.plays))
	for i, p := range t.plays {
		cards[i] = p.Card
	}
	return cards
}

// StartingSuit returns the suit of the first card played, or NoSuit before any play.
func (t *Trick) StartingSuit() Suit {
	return t.startingSuit
}

func (t *Trick) Size() int { return t.size }

func (t *Trick) Len() int { return len(t.plays) }

// IsFull reports whether every seat has played.
func (t *Trick) IsFull() bool {
	return len(t.plays) == t.size
}

// Points returns the total point value on the table.
func (t *Trick) Points() int {
	return SumPoints(t.Cards())
}

// WinningPlay returns the resolved winner, or nil before CalcWinner succeeds.
func (t *Trick) WinningPlay() *Play {
	return t.winningPlay
}

// CalcWinner resolves the trick. A later play replaces the running winner when it is a
// higher card of the starting suit, or a trump played over a non-trump or a lower trump.
// Off-suit non-trump cards never win.
func (t *Trick) CalcWinner(trump Suit) (Play, error) {
	if len(t.plays) == 0 || !t.IsFull() {
		return Play{}, ErrTrickIncomplete
	}
	winner := t.plays[0]
	for _, p := range t.plays[1:] {
		card, best := p.Card, winner.Card
		switch {
		case card.Suit == t.startingSuit && card.Suit == best.Suit && card.Rank > best.Rank:
			winner = p
		case card.Suit == trump && (best.Suit != trump || card.Rank > best.Rank):
			winner = p
		}
	}
	t.winningPlay = &winner
	return winner, nil
}
