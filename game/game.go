package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

const (
	MinPlayers     = 2
	MaxPlayers     = 6
	CardsPerPlayer = 3
)

// State is the match lifecycle: Init -> Running -> Over | Draw.
type State int

const (
	Init State = iota
	Running
	Over
	Draw
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Running:
		return "running"
	case Over:
		return "over"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Recorder receives statistics at the end of every trick and match. Implementations shared
// between concurrently running games must serialize access themselves.
type Recorder interface {
	IncrementWins(p *Player)
	IncrementLosses(p *Player)
	IncrementDraws(p *Player)
	// AddGamePoints records the points a player captured over a whole match.
	AddGamePoints(p *Player, points int)
	// AddTrickPoints records the points a player captured by winning a single trick.
	AddTrickPoints(p *Player, points int)
}

type Option func(g *Game)

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.log = logger
	}
}

// WithRand sets the random source used to shuffle the deck.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithSeed seeds a dedicated random source for reproducible matches.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(g *Game) {
		g.recorder = recorder
	}
}

// WithStartingSeat sets the seat that is dealt to first and leads the first trick.
func WithStartingSeat(seat int) Option {
	return func(g *Game) {
		if seat >= 0 {
			g.startingSeat = seat
		}
	}
}

func WithFollowRule(rule FollowRule) Option {
	return func(g *Game) {
		g.followRule = rule
	}
}

// Game runs a single match: dealing, trick sequencing, scoring and end detection.
type Game struct {
	state        State
	deck         *Deck
	pool         *Pool
	tricks       []*Trick
	currentTrick *Trick
	trumpSuit    Suit
	trumpCard    *Card
	leader       *Player
	winners      []*Player
	rectified    bool

	startingSeat int
	followRule   FollowRule
	recorder     Recorder
	rng          *rand.Rand
	log          zerolog.Logger
}

// NewGame returns a game in the Init state with a shuffled deck.
func NewGame(options ...Option) *Game {
	g := &Game{
		state: Init,
		pool:  NewPool(),
		log:   zerolog.Nop(),
	}
	for _, option := range options {
		option(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	g.deck = NewDeck(g.rng)
	g.log.Debug().Msg("new game instantiated")
	return g
}

// AddPlayer seats player, emptying its hand and pile. Only allowed before StartMatch.
func (g *Game) AddPlayer(player *Player) error {
	if g.state != Init {
		return ErrMatchStarted
	}
	player.reset()
	g.pool.Add(player)
	return nil
}

// StartMatch draws the trump card, deals the opening hands and moves to Running.
func (g *Game) StartMatch() error {
	if g.state != Init {
		return ErrMatchStarted
	}
	n := g.pool.Len()
	if n < MinPlayers {
		g.log.Error().Int("players", n).Msg("not enough players to start a match")
		return fmt.Errorf("%d seated: %w", n, ErrNotEnoughPlayers)
	}
	if n > MaxPlayers {
		g.log.Error().Int("players", n).Msg("too many players to start a match")
		return fmt.Errorf("%d seated: %w", n, ErrTooManyPlayers)
	}

	g.log.Info().Str("players", g.pool.String()).Msg("starting match")

	if n == 3 || n == 6 {
		g.deck.Rectify()
		g.rectified = true
		g.log.Debug().Int("deck", g.deck.Len()).Msg("deck rectified")
	}

	trump, _ := g.deck.Draw()
	g.trumpCard = &trump
	g.trumpSuit = trump.Suit
	g.log.Info().Stringer("trump", trump).Msg("trump card drawn")

	seat := g.startingSeat % n
	g.leader = g.pool.Players()[seat]
	if err := g.pool.SetCurrent(g.leader); err != nil {
		return err
	}
	g.DealCards(CardsPerPlayer)

	g.state = Running
	return nil
}

// DealCards deals n cards to every player in seat order starting at the pool cursor. Once
// the deck is empty the held-back trump card is dealt once, then nothing.
func (g *Game) DealCards(n int) {
	for i := 0; i < n; i++ {
		for _, player := range g.pool.InSeatOrder() {
			if card, ok := g.deck.Draw(); ok {
				player.AddToHand(card)
				g.log.Debug().Str("player", player.Name()).Stringer("card", card).Msg("dealt card")
			} else if g.trumpCard != nil {
				player.AddToHand(*g.trumpCard)
				g.log.Debug().Str("player", player.Name()).Stringer("card", *g.trumpCard).Msg("dealt trump card")
				g.trumpCard = nil
			}
		}
	}
}

// Turn asks the current player for a card and removes it from the hand.
func (g *Game) Turn() (*Player, Card, error) {
	if g.state != Running {
		return nil, Card{}, InvalidStateError("turn requested in state " + g.state.String())
	}
	player := g.pool.Current()
	if player == nil {
		return nil, Card{}, ErrNotEnoughPlayers
	}
	if player.HandSize() == 0 {
		return player, Card{}, fmt.Errorf("%s: %w", player.Name(), ErrEmptyHand)
	}
	card, err := player.Action(g)
	if err != nil {
		return player, Card{}, fmt.Errorf("%s action: %w", player.Name(), err)
	}
	if err := player.Play(card); err != nil {
		return player, Card{}, err
	}
	return player, card, nil
}

// NextRound plays one full trick. It has no effect unless the match is Running. An error
// leaves the match unusable: cards already played in the failed trick are not returned.
func (g *Game) NextRound() error {
	if g.state != Running {
		return nil
	}

	g.log.Info().Int("trick", len(g.tricks)+1).Msg("starting trick")
	for _, player := range g.pool.Players() {
		g.log.Debug().Str("player", player.Name()).Interface("hand", player.hand).Msg("hand")
	}

	g.currentTrick = NewTrick(g.pool.Len())
	if err := g.pool.SetCurrent(g.leader); err != nil {
		return err
	}

	for i := 0; i < g.pool.Len(); i++ {
		player, card, err := g.Turn()
		if err != nil {
			return err
		}
		g.currentTrick.AddPlay(player, card)
		g.log.Info().Str("player", player.Name()).Stringer("card", card).Msg("played")
		g.pool.Advance()
	}

	g.tricks = append(g.tricks, g.currentTrick)

	win, err := g.currentTrick.CalcWinner(g.trumpSuit)
	if err != nil {
		return err
	}
	points := g.currentTrick.Points()
	g.log.Info().Str("winner", win.Player.Name()).Stringer("card", win.Card).Int("points", points).Msg("trick won")

	win.Player.AddToPile(g.currentTrick.Cards())
	g.log.Debug().Str("player", win.Player.Name()).Interface("pile", win.Player.pile).Msg("pile")
	if g.recorder != nil {
		g.recorder.AddTrickPoints(win.Player, points)
	}

	g.leader = win.Player
	if err := g.pool.SetCurrent(g.leader); err != nil {
		return err
	}
	g.DealCards(1)

	g.CheckGameEnd()
	return nil
}

// CheckGameEnd ends the match once the deck and every hand are empty. A unique top score
// moves the game to Over, a shared top score to Draw.
func (g *Game) CheckGameEnd() {
	if g.state != Running || g.deck.Len() > 0 {
		return
	}
	for _, player := range g.pool.Players() {
		if player.HandSize() > 0 {
			return
		}
	}

	best := -1
	for _, player := range g.pool.Players() {
		if points := player.Points(); points > best {
			best = points
		}
	}
	g.winners = nil
	for _, player := range g.pool.Players() {
		if player.Points() == best {
			g.winners = append(g.winners, player)
		}
	}

	if len(g.winners) == 1 {
		g.state = Over
		g.log.Info().Str("winner", g.winners[0].Name()).Int("points", best).Msg("game ended")
	} else {
		g.state = Draw
		g.log.Info().Stringer("winners", playerList(g.winners)).Int("points", best).Msg("game ended in a draw")
	}

	for _, player := range g.pool.Players() {
		g.log.Debug().Str("player", player.Name()).Int("points", player.Points()).Msg("final points")
	}
	g.report()
}

func (g *Game) report() {
	if g.recorder == nil {
		return
	}
	for _, player := range g.pool.Players() {
		g.recorder.AddGamePoints(player, player.Points())
		switch {
		case !g.isWinner(player):
			g.recorder.IncrementLosses(player)
		case g.state == Draw:
			g.recorder.IncrementDraws(player)
		default:
			g.recorder.IncrementWins(player)
		}
	}
}

func (g *Game) isWinner(player *Player) bool {
	for _, w := range g.winners {
		if w == player {
			return true
		}
	}
	return false
}

// IsOver reports whether the match reached a terminal state, with or without a single winner.
func (g *Game) IsOver() bool {
	return g.state == Over || g.state == Draw
}

func (g *Game) State() State { return g.state }

// Winners returns the single winner of an Over match, or the tied players of a Draw.
func (g *Game) Winners() []*Player {
	return g.winners
}

func (g *Game) CurrentTrick() *Trick { return g.currentTrick }

func (g *Game) TrumpSuit() Suit { return g.trumpSuit }

// TrumpCard returns the face-up trump card while it is still undealt.
func (g *Game) TrumpCard() (Card, bool) {
	if g.trumpCard == nil {
		return Card{}, false
	}
	return *g.trumpCard, true
}

func (g *Game) Pool() *Pool { return g.pool }

func (g *Game) Deck() *Deck { return g.deck }

// Tricks returns the completed tricks in order.
func (g *Game) Tricks() []*Trick { return g.tricks }

func (g *Game) FollowRule() FollowRule { return g.followRule }

// Rectified reports whether the Twos were removed for this match.
func (g *Game) Rectified() bool { return g.rectified }

// Leader returns the player who leads the next trick.
func (g *Game) Leader() *Player { return g.leader }

type playerList []*Player

func (l playerList) String() string {
	pool := Pool{players: l}
	return pool.String()
}
