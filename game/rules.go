package game

// FollowRule selects which cards are legal when following a trick.
type FollowRule int

const (
	// FollowSuit: a player holding the starting suit must play it; otherwise any card.
	FollowSuit FollowRule = iota
	// FollowSuitOrTrump additionally accepts trump in place of the starting suit. This is
	// the looser rule of an earlier engine revision and must be opted into.
	FollowSuitOrTrump
)

func (r FollowRule) String() string {
	if r == FollowSuitOrTrump {
		return "follow-suit-or-trump"
	}
	return "follow-suit"
}

// Beats reports whether card a wins against card b given the starting suit and trump.
// Same-suit cards compare by rank, a trump beats any non-trump, a starting-suit card beats
// any other non-trump, and two unrelated off-suit cards compare by rank.
func Beats(a, b Card, starting, trump Suit) bool {
	if a.Suit == b.Suit {
		return a.Rank > b.Rank
	}
	if a.Suit == trump || b.Suit == trump {
		return a.Suit == trump
	}
	if a.Suit == starting || b.Suit == starting {
		return a.Suit == starting
	}
	return a.Rank > b.Rank
}

// LeadingCard returns the card currently winning among cards. It panics on an empty slice.
func LeadingCard(cards []Card, starting, trump Suit) Card {
	high := cards[0]
	for _, c := range cards[1:] {
		if Beats(c, high, starting, trump) {
			high = c
		}
	}
	return high
}

// HighestRankCards returns every card sharing the highest rank in cards.
func HighestRankCards(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	top := cards[0].Rank
	for _, c := range cards {
		if c.Rank > top {
			top = c.Rank
		}
	}
	var out []Card
	for _, c := range cards {
		if c.Rank == top {
			out = append(out, c)
		}
	}
	return out
}

// PlayableCards returns the subset of hand that may legally be played on a trick started
// with the given suit. NoSuit means the player leads and may play anything. The result is
// never empty for a non-empty hand.
func PlayableCards(hand []Card, starting, trump Suit, rule FollowRule) []Card {
	if starting == NoSuit {
		return append([]Card(nil), hand...)
	}
	var following []Card
	for _, c := range hand {
		if c.Suit == starting {
			following = append(following, c)
		}
	}
	if len(following) == 0 {
		return append([]Card(nil), hand...)
	}
	if rule == FollowSuitOrTrump && trump != starting {
		for _, c := range hand {
			if c.Suit == trump {
				following = append(following, c)
			}
		}
	}
	return following
}

// Playable returns the cards self may play in the world's current trick.
func Playable(w World, self *Player) []Card {
	starting := NoSuit
	if trick := w.CurrentTrick(); trick != nil {
		starting = trick.StartingSuit()
	}
	return PlayableCards(self.hand, starting, w.TrumpSuit(), w.FollowRule())
}
