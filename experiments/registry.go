package experiments

import (
	"fmt"
	"slices"

	"bisca/agent"
	"bisca/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Constructor builds a fresh strategy instance.
type Constructor func(rng *rand.Rand, logger zerolog.Logger) game.Strategy

// registry lists every automated strategy by the name it reports from Kind. The human relay
// needs an input source and is not simulated.
var registry = map[string]Constructor{
	"RandomAgent": func(rng *rand.Rand, logger zerolog.Logger) game.Strategy {
		return agent.NewRandom(agent.WithRand(rng), agent.WithLogger(logger))
	},
	"SimpleGreedyAgent": func(rng *rand.Rand, logger zerolog.Logger) game.Strategy {
		return agent.NewSimpleGreedy(agent.WithRand(rng), agent.WithLogger(logger))
	},
	"MinimizePointLossGreedyAgent": func(rng *rand.Rand, logger zerolog.Logger) game.Strategy {
		return agent.NewMinimizePointLoss(agent.WithRand(rng), agent.WithLogger(logger))
	},
	"MPLGreedyTrumpSaveAgent": func(rng *rand.Rand, logger zerolog.Logger) game.Strategy {
		return agent.NewTrumpSave(agent.WithRand(rng), agent.WithLogger(logger))
	},
	"MPLGreedyTrumpBasedAgent": func(rng *rand.Rand, logger zerolog.Logger) game.Strategy {
		return agent.NewTrumpBased(agent.WithRand(rng), agent.WithLogger(logger))
	},
	"GreedyCountingAgent": func(rng *rand.Rand, logger zerolog.Logger) game.Strategy {
		return agent.NewCounting(agent.WithRand(rng), agent.WithLogger(logger))
	},
}

// DefaultAgents is the line-up simulated when none is given.
var DefaultAgents = []string{
	"SimpleGreedyAgent",
	"MinimizePointLossGreedyAgent",
	"MPLGreedyTrumpSaveAgent",
	"GreedyCountingAgent",
}

// AgentNames returns the registered strategy names in sorted order.
func AgentNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func NewStrategy(name string, rng *rand.Rand, logger zerolog.Logger) (game.Strategy, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown agent %q", ErrInvalidConfig, name)
	}
	return constructor(rng, logger), nil
}
