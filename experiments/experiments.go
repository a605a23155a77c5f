package experiments

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bisca/engine"
	"bisca/experiments/metrics"
	"bisca/game"

	"golang.org/x/exp/rand"
)

// Result holds everything recorded over a simulation run.
type Result struct {
	Seed      uint64
	Ranking   []metrics.PlayerStats // by wins
	Games     []metrics.GameRecord  // in iteration order
	Tricks    []metrics.TrickRecord
	Collector *metrics.Collector
}

type gameResult struct {
	record metrics.GameRecord
	tricks []metrics.TrickRecord
	err    error
}

// RunSimulations plays cfg.Iterations matches between the configured agents, shuffling the
// seats before every match, and returns the collected statistics. Every match draws its
// randomness from a seed derived from cfg.Seed, so a run is reproducible regardless of the
// number of workers.
func RunSimulations(cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	master := rand.New(rand.NewSource(seed))
	seeds := make([]uint64, cfg.Iterations)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	cfg.Logger.Info().Msgf("starting %d simulations of %v with seed %d on %d workers",
		cfg.Iterations, cfg.Agents, seed, cfg.Workers)

	collector := metrics.NewCollector()
	results := make([]gameResult, cfg.Iterations)
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		failed   atomic.Bool
		mu       sync.Mutex
		finished int
	)
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if failed.Load() {
					continue
				}
				results[i] = runGame(cfg, i, seeds[i], collector)
				if results[i].err != nil {
					failed.Store(true)
					continue
				}
				if cfg.Progress != nil {
					mu.Lock()
					finished++
					cfg.Progress(finished, cfg.Iterations)
					mu.Unlock()
				}
			}
		}()
	}
	for i := 0; i < cfg.Iterations; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &Result{Seed: seed, Collector: collector}
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, r.err)
		}
		result.Games = append(result.Games, r.record)
		result.Tricks = append(result.Tricks, r.tricks...)
	}

	ranking, err := collector.RankPlayers(metrics.CriterionWins)
	if err != nil {
		return nil, err
	}
	result.Ranking = ranking

	cfg.Logger.Info().Msgf("completed %d simulations", cfg.Iterations)
	return result, nil
}

// runGame builds fresh players for the configured agents, shuffles their seats and plays
// one match.
func runGame(cfg Config, iteration int, seed uint64, collector *metrics.Collector) gameResult {
	rng := rand.New(rand.NewSource(seed))

	players := make([]*game.Player, len(cfg.Agents))
	for i, name := range cfg.Agents {
		strategy, err := NewStrategy(name, rand.New(rand.NewSource(rng.Uint64())), cfg.Logger)
		if err != nil {
			return gameResult{err: err}
		}
		players[i] = game.NewPlayer(fmt.Sprintf("Player %d", i+1), strategy)
	}
	rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	seating := make([]string, len(players))
	for i, p := range players {
		seating[i] = p.Name()
	}

	e, err := engine.LocalEngine(players,
		engine.WithLogger(cfg.Logger),
		engine.WithGameOptions(
			game.WithRand(rng),
			game.WithRecorder(collector),
			game.WithFollowRule(cfg.FollowRule),
			game.WithLogger(cfg.Logger),
		),
	)
	if err != nil {
		return gameResult{err: err}
	}

	_, gameMetric, trickMetrics, err := e.Run()
	if err != nil {
		return gameResult{err: err}
	}
	cfg.Logger.Debug().Msgf("completed game %d with winners %v", iteration+1, gameMetric.Winners)

	r := gameResult{
		record: metrics.GameRecord{
			Iteration:  iteration + 1,
			Seating:    seating,
			GameMetric: gameMetric,
		},
	}
	for _, tm := range trickMetrics {
		r.tricks = append(r.tricks, metrics.TrickRecord{Game: gameMetric.ID, TrickMetric: tm})
	}
	return r
}

// Save stores the ranking and every game and trick record through w.
func (r *Result) Save(w metrics.Writer) error {
	if err := w.WritePlayerStats(r.Ranking); err != nil {
		return fmt.Errorf("failed to store player stats: %w", err)
	}
	if err := w.WriteGameRecords(r.Games); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := w.WriteTrickRecords(r.Tricks); err != nil {
		return fmt.Errorf("failed to store trick records: %w", err)
	}
	return nil
}
