package metrics

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"bisca/game"
)

var ErrUnknownPlayer = errors.New("unknown player")

// ErrUnknownCriterion is returned by RankPlayers for an unsupported ranking criterion.
var ErrUnknownCriterion = errors.New("invalid criterion, available options are 'wins', 'points' and 'average_points_per_game'")

const (
	CriterionWins                 = "wins"
	CriterionPoints               = "points"
	CriterionAveragePointsPerGame = "average_points_per_game"
)

// PlayerStats is a snapshot of everything recorded for one player.
type PlayerStats struct {
	Name                  string
	Kind                  string
	Wins                  int
	Losses                int
	Draws                 int
	Games                 int
	TotalPoints           int
	AveragePointsPerGame  float64
	HighestGameTurnover   int
	TricksWon             int
	AveragePointsPerTrick float64
	HighestTrickTurnover  int
}

// WinLossRatio returns wins over losses, or the plain win count when there are no losses.
func (s PlayerStats) WinLossRatio() float64 {
	if s.Losses == 0 {
		return float64(s.Wins)
	}
	return float64(s.Wins) / float64(s.Losses)
}

type record struct {
	kind        string
	wins        int
	losses      int
	draws       int
	gamePoints  []int
	trickPoints []int
}

// Collector implements game.Recorder. Players are keyed by name, so one collector can be
// shared by every game of a simulation, including games running concurrently.
type Collector struct {
	mu      sync.Mutex
	records map[string]*record
	order   []string
}

func NewCollector() *Collector {
	return &Collector{records: make(map[string]*record)}
}

// register must be called with mu held.
func (c *Collector) register(p *game.Player) *record {
	r, ok := c.records[p.Name()]
	if !ok {
		r = &record{kind: p.Kind()}
		c.records[p.Name()] = r
		c.order = append(c.order, p.Name())
	}
	return r
}

func (c *Collector) IncrementWins(p *game.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(p).wins++
}

func (c *Collector) IncrementLosses(p *game.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(p).losses++
}

func (c *Collector) IncrementDraws(p *game.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(p).draws++
}

func (c *Collector) AddGamePoints(p *game.Player, points int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.register(p)
	r.gamePoints = append(r.gamePoints, points)
}

func (c *Collector) AddTrickPoints(p *game.Player, points int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.register(p)
	r.trickPoints = append(r.trickPoints, points)
}

// GameTurnovers returns the points the player scored in each recorded match, in order.
func (c *Collector) GameTurnovers(name string) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[name]
	if !ok {
		return nil
	}
	return slices.Clone(r.gamePoints)
}

func (c *Collector) PlayerStats(name string) (PlayerStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[name]
	if !ok {
		return PlayerStats{}, fmt.Errorf("%q: %w", name, ErrUnknownPlayer)
	}
	return r.stats(name), nil
}

// Players returns the stats of every recorded player in first-seen order.
func (c *Collector) Players() []PlayerStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PlayerStats, len(c.order))
	for i, name := range c.order {
		out[i] = c.records[name].stats(name)
	}
	return out
}

func criterionKey(criterion string) (func(PlayerStats) float64, error) {
	switch criterion {
	case CriterionWins:
		return func(s PlayerStats) float64 { return float64(s.Wins) }, nil
	case CriterionPoints:
		return func(s PlayerStats) float64 { return float64(s.TotalPoints) }, nil
	case CriterionAveragePointsPerGame:
		return func(s PlayerStats) float64 { return s.AveragePointsPerGame }, nil
	}
	return nil, fmt.Errorf("%q: %w", criterion, ErrUnknownCriterion)
}

// ValidateCriterion reports whether RankPlayers accepts criterion.
func ValidateCriterion(criterion string) error {
	_, err := criterionKey(criterion)
	return err
}

// RankPlayers orders players by criterion, best first. Ties keep first-seen order.
func (c *Collector) RankPlayers(criterion string) ([]PlayerStats, error) {
	key, err := criterionKey(criterion)
	if err != nil {
		return nil, err
	}

	ranked := c.Players()
	slices.SortStableFunc(ranked, func(a, b PlayerStats) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		}
		return 0
	})
	return ranked, nil
}

// ComparePlayers returns the stats of two players side by side.
func (c *Collector) ComparePlayers(a, b string) (PlayerStats, PlayerStats, error) {
	sa, err := c.PlayerStats(a)
	if err != nil {
		return PlayerStats{}, PlayerStats{}, err
	}
	sb, err := c.PlayerStats(b)
	if err != nil {
		return PlayerStats{}, PlayerStats{}, err
	}
	return sa, sb, nil
}

func (r *record) stats(name string) PlayerStats {
	s := PlayerStats{
		Name:      name,
		Kind:      r.kind,
		Wins:      r.wins,
		Losses:    r.losses,
		Draws:     r.draws,
		Games:     len(r.gamePoints),
		TricksWon: len(r.trickPoints),
	}
	for _, p := range r.gamePoints {
		s.TotalPoints += p
		s.HighestGameTurnover = max(s.HighestGameTurnover, p)
	}
	if s.Games > 0 {
		s.AveragePointsPerGame = float64(s.TotalPoints) / float64(s.Games)
	}
	trickTotal := 0
	for _, p := range r.trickPoints {
		trickTotal += p
		s.HighestTrickTurnover = max(s.HighestTrickTurnover, p)
	}
	if s.TricksWon > 0 {
		s.AveragePointsPerTrick = float64(trickTotal) / float64(s.TricksWon)
	}
	return s
}
