package engine

import (
	"errors"

	"bisca/experiments/metrics"
	"bisca/game"
)

// MaxRounds bounds a match. Two players play the longest match, twenty tricks.
const MaxRounds = 40

var ErrRoundLimit = errors.New("round limit reached before the match ended")

type Engine interface {
	// Run plays a match until it is over or the round limit is reached
	Run() (winners []*game.Player, gameMetric metrics.GameMetric, trickMetrics []metrics.TrickMetric, err error)
}
