package engine

import (
	"fmt"
	"time"

	"bisca/experiments/metrics"
	"bisca/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Option func(e *Local)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Local) {
		e.log = logger
	}
}

// WithGameOptions configures the game the engine drives.
func WithGameOptions(options ...game.Option) Option {
	return func(e *Local) {
		e.gameOptions = append(e.gameOptions, options...)
	}
}

func WithMaxRounds(rounds int) Option {
	return func(e *Local) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

// Local runs a match in-process, with every strategy called synchronously.
type Local struct {
	Game    *game.Game
	Players []*game.Player

	gameOptions []game.Option
	maxRounds   int
	log         zerolog.Logger
}

// LocalEngine seats players, in order, at a new game.
func LocalEngine(players []*game.Player, options ...Option) (*Local, error) {
	if len(players) < game.MinPlayers {
		return nil, fmt.Errorf("%d players: %w", len(players), game.ErrNotEnoughPlayers)
	}
	if len(players) > game.MaxPlayers {
		return nil, fmt.Errorf("%d players: %w", len(players), game.ErrTooManyPlayers)
	}

	e := &Local{
		Players:   players,
		maxRounds: MaxRounds,
		log:       zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}

	e.Game = game.NewGame(e.gameOptions...)
	for _, p := range players {
		if err := e.Game.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Run executes the entire game loop until the match is over.
func (e *Local) Run() ([]*game.Player, metrics.GameMetric, []metrics.TrickMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:        uuid.New(),
		Players:   len(e.Players),
		StartTime: time.Now(),
	}
	logger := e.log.With().Str("game", gameMetric.ID.String()).Logger()

	if err := e.Game.StartMatch(); err != nil {
		return nil, gameMetric, nil, err
	}
	gameMetric.Trump = e.Game.TrumpSuit()
	gameMetric.Rectified = e.Game.Rectified()
	gameMetric.StartingPlayer = e.Game.Leader().Name()
	logger.Info().Msgf("%s is starting, trump is %s", gameMetric.StartingPlayer, gameMetric.Trump)

	var trickMetrics []metrics.TrickMetric
	round := 1
	for !e.Game.IsOver() && round <= e.maxRounds {
		leader := e.Game.Leader()
		if err := e.Game.NextRound(); err != nil {
			return nil, gameMetric, trickMetrics, fmt.Errorf("round %d: %w", round, err)
		}

		tricks := e.Game.Tricks()
		win := tricks[len(tricks)-1].WinningPlay()
		trickMetrics = append(trickMetrics, metrics.TrickMetric{
			Step:   round,
			Leader: leader.Name(),
			Winner: win.Player.Name(),
			Card:   win.Card,
			Points: tricks[len(tricks)-1].Points(),
		})
		logger.Debug().Msgf("round %d won by %s with %s", round, win.Player.Name(), win.Card)
		round++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Tricks = len(e.Game.Tricks())

	if !e.Game.IsOver() {
		logger.Warn().Msgf("stopped after %d rounds (no winner yet)", e.maxRounds)
		return nil, gameMetric, trickMetrics, ErrRoundLimit
	}

	winners := e.Game.Winners()
	for _, w := range winners {
		gameMetric.Winners = append(gameMetric.Winners, w.Name())
	}
	gameMetric.Draw = e.Game.State() == game.Draw
	logger.Info().Strs("winners", gameMetric.Winners).Bool("draw", gameMetric.Draw).Msg("game ended")

	return winners, gameMetric, trickMetrics, nil
}
