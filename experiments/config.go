package experiments

import (
	"errors"
	"fmt"

	"bisca/game"
	"bisca/meta"

	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

type Config struct {
	Iterations int
	Agents     []string // one seat per entry, by registry name
	Seed       uint64   // zero seeds from the clock
	Workers    int
	FollowRule game.FollowRule
	Logger     zerolog.Logger

	// Progress, when set, is called after every finished game. Calls are serialized.
	Progress func(done, total int)
}

func DefaultConfig() Config {
	return Config{
		Iterations: meta.ITERATIONS,
		Agents:     append([]string(nil), DefaultAgents...),
		Seed:       meta.SEED,
		Workers:    meta.WORKERS,
		Logger:     zerolog.Nop(),
	}
}

func (c Config) validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if n := len(c.Agents); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("%w: specify between %d and %d players, got %d",
			ErrInvalidConfig, game.MinPlayers, game.MaxPlayers, n)
	}
	for _, name := range c.Agents {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("%w: unknown agent %q", ErrInvalidConfig, name)
		}
	}
	return nil
}
