package agent

import "bisca/game"

// scoreFunc values a candidate card against the card currently leading the trick.
type scoreFunc func(card game.Card, overtakes bool, trump float64) float64

// PointLoss is the family of greedy agents minimizing the points they give away. When
// leading they open with their highest card; when following they score every legal card
// against the leading card and play the best one.
type PointLoss struct {
	base
	kind  string
	lead  func(a *PointLoss, cards []game.Card, trump game.Suit) game.Card
	score scoreFunc
}

// NewMinimizePointLoss returns the balanced variant: it overtakes with valuable cards and
// trumps, and dumps cheap non-trumps when it cannot win.
func NewMinimizePointLoss(options ...Option) *PointLoss {
	return &PointLoss{
		base: newBase(options),
		kind: "MinimizePointLossGreedyAgent",
		lead: leadHighest,
		score: func(card game.Card, overtakes bool, trump float64) float64 {
			points := float64(card.Points())
			if overtakes {
				return 10 + points*2 + trump*5
			}
			return -10 - (points*2 + trump*5)
		},
	}
}

// NewTrumpSave returns the variant that avoids spending trumps unless it must.
func NewTrumpSave(options ...Option) *PointLoss {
	return &PointLoss{
		base: newBase(options),
		kind: "MPLGreedyTrumpSaveAgent",
		lead: leadHighest,
		score: func(card game.Card, overtakes bool, trump float64) float64 {
			points := float64(card.Points())
			if overtakes {
				return 15 + points - trump*15
			}
			return -10 - (points*2 + trump*5)
		},
	}
}

// NewTrumpBased returns the variant that forces trump battles: it leads its highest trump
// and heavily rewards overtaking with trumps.
func NewTrumpBased(options ...Option) *PointLoss {
	return &PointLoss{
		base: newBase(options),
		kind: "MPLGreedyTrumpBasedAgent",
		lead: leadHighestTrump,
		score: func(card game.Card, overtakes bool, trump float64) float64 {
			points := float64(card.Points())
			if overtakes {
				return 15 + points + trump*100
			}
			return -10 - (points*2 + trump*100)
		},
	}
}

func (a *PointLoss) Kind() string { return a.kind }

func (a *PointLoss) Action(w game.World, self *game.Player) (game.Card, error) {
	cards, err := playable(w, self)
	if err != nil {
		return game.Card{}, err
	}
	onTable, starting := table(w)
	if len(onTable) == 0 {
		return a.lead(a, cards, w.TrumpSuit()), nil
	}

	trump := w.TrumpSuit()
	leading := game.LeadingCard(onTable, starting, trump)

	scored := make(evaluations, len(cards))
	for i, card := range cards {
		overtakes := game.Beats(card, leading, starting, trump)
		scored[i] = evaluation{card: card, value: a.score(card, overtakes, isTrump(card, trump))}
	}
	a.log.Debug().
		Str("player", self.Name()).
		Stringer("evaluation", scored).
		Stringer("lead", leading).
		Msg("hand evaluation")

	return scored.best(), nil
}

func leadHighest(a *PointLoss, cards []game.Card, _ game.Suit) game.Card {
	return a.choice(game.HighestRankCards(cards))
}

func leadHighestTrump(a *PointLoss, cards []game.Card, trump game.Suit) game.Card {
	var trumps []game.Card
	for _, c := range cards {
		if c.Suit == trump {
			trumps = append(trumps, c)
		}
	}
	if len(trumps) > 0 {
		return a.choice(game.HighestRankCards(trumps))
	}
	return a.choice(game.HighestRankCards(cards))
}
