package metrics

import (
	"time"

	"bisca/game"

	"github.com/google/uuid"
)

// GameMetric summarizes one finished match.
type GameMetric struct {
	ID             uuid.UUID
	Players        int
	Trump          game.Suit
	Rectified      bool
	StartingPlayer string
	Winners        []string
	Draw           bool
	Tricks         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// TrickMetric describes one completed trick of a match.
type TrickMetric struct {
	Step   int
	Leader string
	Winner string
	Card   game.Card
	Points int
}
