package game

import "fmt"

// Suit represents a card suit. Suits carry no ordering among themselves.
type Suit int

const (
	NoSuit Suit = iota
	Spades
	Hearts
	Diamonds
	Clubs
)

// Suits lists every playable suit in deck-building order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	}
	return "None"
}

// Symbol returns the unicode glyph of the suit.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "?"
}

// Rank represents a card rank. The numeric value is the trick-taking order (Two lowest,
// Ace highest); scoring uses Points, which follows a different order.
type Rank int

const (
	Two Rank = iota + 1
	Three
	Four
	Five
	Six
	Queen
	Jack
	King
	Seven
	Ace
)

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{Two, Three, Four, Five, Six, Queen, Jack, King, Seven, Ace}

// Points returns the scoring value of the rank.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Seven:
		return 10
	case King:
		return 4
	case Jack:
		return 3
	case Queen:
		return 2
	default:
		return 0
	}
}

func (r Rank) String() string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Queen:
		return "Queen"
	case Jack:
		return "Jack"
	case King:
		return "King"
	case Seven:
		return "Seven"
	case Ace:
		return "Ace"
	}
	return "Unknown"
}

// Symbol returns the short face symbol used for asset names and compact display.
func (r Rank) Symbol() string {
	switch r {
	case Queen:
		return "Q"
	case Jack:
		return "J"
	case King:
		return "K"
	case Ace:
		return "A"
	case Two, Three, Four, Five, Six:
		return fmt.Sprintf("%d", int(r)+1)
	case Seven:
		return "7"
	}
	return "?"
}

// Card is an immutable playing card. Cards are comparable values: two cards with the same
// rank and suit are equal and may be used interchangeably as map keys.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard returns the card of the given rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Points returns the scoring value of the card.
func (c Card) Points() int {
	return c.Rank.Points()
}

// IsZero reports whether c is the zero Card, which never appears in a deck.
func (c Card) IsZero() bool {
	return c == Card{}
}

func (c Card) String() string {
	return fmt.Sprintf("(%s) %s", c.Suit, c.Rank)
}

// Short returns a compact representation such as "A♠".
func (c Card) Short() string {
	return c.Rank.Symbol() + c.Suit.Symbol()
}

// Filename returns the deterministic asset key of the card, e.g. "spades-A.png".
func (c Card) Filename() string {
	suit := ""
	switch c.Suit {
	case Clubs:
		suit = "clubs"
	case Diamonds:
		suit = "diamonds"
	case Hearts:
		suit = "hearts"
	case Spades:
		suit = "spades"
	}
	return suit + "-" + c.Rank.Symbol() + ".png"
}

// SumPoints returns the total point value of cards.
func SumPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
