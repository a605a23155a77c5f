package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bisca/agent"
	"bisca/engine"
	"bisca/experiments"
	"bisca/experiments/metrics"
	"bisca/game"
	"bisca/meta"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// agentList collects a repeatable flag.
type agentList []string

func (l *agentList) String() string { return strings.Join(*l, ",") }

func (l *agentList) Set(value string) error {
	for _, name := range strings.Fields(strings.ReplaceAll(value, ",", " ")) {
		*l = append(*l, name)
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	command, args := "simulate", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "simulate":
		err = runSimulate(args)
	case "play":
		err = runPlay(args)
	default:
		err = fmt.Errorf("unknown command %q, expected simulate or play", command)
	}
	if err != nil {
		log.Error().Err(err).Msg(command + " failed")
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	return nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	var players agentList
	iterations := fs.Int("iterations", envInt("BISCA_ITERATIONS", meta.ITERATIONS), "Number of simulations to run")
	fs.Var(&players, "player", "Player type, repeat for every seat ("+strings.Join(experiments.AgentNames(), ", ")+")")
	seed := fs.Uint64("seed", envUint64("BISCA_SEED", meta.SEED), "Simulation seed, 0 seeds from the clock")
	workers := fs.Int("workers", envInt("BISCA_WORKERS", meta.WORKERS), "Number of games simulated concurrently")
	output := fs.String("output", os.Getenv("BISCA_OUTPUT"), "Directory to save CSV results to")
	sqlitePath := fs.String("sqlite", os.Getenv("BISCA_SQLITE"), "SQLite database to save results to")
	criterion := fs.String("criterion", meta.CRITERION, "Ranking criterion: wins, points or average_points_per_game")
	followTrump := fs.Bool("follow-trump", false, "Allow trump in place of the starting suit")
	level := fs.String("log-level", envString("BISCA_LOG_LEVEL", "warn"), "Log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setupLogger(*level); err != nil {
		return err
	}
	if err := metrics.ValidateCriterion(*criterion); err != nil {
		return err
	}

	cfg := experiments.DefaultConfig()
	cfg.Iterations = *iterations
	cfg.Seed = *seed
	cfg.Workers = *workers
	cfg.Logger = log.Logger
	if len(players) > 0 {
		cfg.Agents = players
	}
	if *followTrump {
		cfg.FollowRule = game.FollowSuitOrTrump
	}

	bar, err := pterm.DefaultProgressbar.WithTotal(cfg.Iterations).WithTitle("Simulating").Start()
	if err != nil {
		return err
	}
	cfg.Progress = func(done, total int) { bar.Increment() }
	result, err := experiments.RunSimulations(cfg)
	_, _ = bar.Stop()
	if err != nil {
		return err
	}

	ranking, err := result.Collector.RankPlayers(*criterion)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Ranking based on %s (seed %d):", *criterion, result.Seed)
	if err := printStats(ranking); err != nil {
		return err
	}

	if *output != "" {
		w, err := metrics.NewCSVWriter(*output)
		if err != nil {
			return err
		}
		if err := result.Save(w); err != nil {
			return err
		}
		pterm.Success.Printfln("Saved CSV results to %s", w.Dir())
	}
	if *sqlitePath != "" {
		w, err := metrics.NewSQLiteWriter(*sqlitePath)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := result.Save(w); err != nil {
			return err
		}
		pterm.Success.Printfln("Saved run %s to %s", w.RunID(), *sqlitePath)
	}
	return nil
}

func printStats(ranking []metrics.PlayerStats) error {
	data := pterm.TableData{{"Player", "Type", "Wins", "Draws", "Losses", "W/L Ratio",
		"Average Points / Game", "Highest Point Turnover (Trick)"}}
	for _, s := range ranking {
		data = append(data, []string{
			s.Name,
			s.Kind,
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			fmt.Sprintf("%.2f", s.WinLossRatio()),
			fmt.Sprintf("%.2f", s.AveragePointsPerGame),
			strconv.Itoa(s.HighestTrickTurnover),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	var opponents agentList
	name := fs.String("name", "You", "Your player name")
	fs.Var(&opponents, "opponent", "Opponent type, repeat for every opponent ("+strings.Join(experiments.AgentNames(), ", ")+")")
	seed := fs.Uint64("seed", envUint64("BISCA_SEED", meta.SEED), "Game seed, 0 seeds from the clock")
	followTrump := fs.Bool("follow-trump", false, "Allow trump in place of the starting suit")
	level := fs.String("log-level", envString("BISCA_LOG_LEVEL", "warn"), "Log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setupLogger(*level); err != nil {
		return err
	}
	if len(opponents) == 0 {
		opponents = agentList{"SimpleGreedyAgent"}
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(*seed))

	human := agent.NewHuman(nil)
	you := game.NewPlayer(*name, human)
	players := []*game.Player{you}
	for i, kind := range opponents {
		strategy, err := experiments.NewStrategy(kind, rand.New(rand.NewSource(rng.Uint64())), log.Logger)
		if err != nil {
			return err
		}
		players = append(players, game.NewPlayer(fmt.Sprintf("%s %d", kind, i+1), strategy))
	}

	table := &tablePrinter{you: you}
	rule := game.FollowSuit
	if *followTrump {
		rule = game.FollowSuitOrTrump
	}
	e, err := engine.LocalEngine(players,
		engine.WithLogger(log.Logger),
		engine.WithGameOptions(
			game.WithRand(rng),
			game.WithStartingSeat(rng.Intn(len(players))),
			game.WithFollowRule(rule),
			game.WithRecorder(table),
			game.WithLogger(log.Logger),
		),
	)
	if err != nil {
		return err
	}
	table.game = e.Game
	human.RegisterInputHandler(promptCard(e.Game, you, bufio.NewScanner(os.Stdin)))

	_, _, _, err = e.Run()
	return err
}

// promptCard shows the table and the hand, then reads a card index from scanner until it
// names a legal card.
func promptCard(g *game.Game, you *game.Player, scanner *bufio.Scanner) agent.SelectFunc {
	return func() int {
		pterm.DefaultSection.Println("Your turn")
		trump := "dealt"
		if c, ok := g.TrumpCard(); ok {
			trump = cardString(c)
		}
		pterm.Printfln("Trump: %s (%s), cards left in deck: %d", suitString(g.TrumpSuit()), trump, g.Deck().Len())

		if trick := g.CurrentTrick(); trick != nil && trick.Len() > 0 {
			for _, play := range trick.Plays() {
				pterm.Printfln("  %s played %s", play.Player.Name(), cardString(play.Card))
			}
		} else {
			pterm.Println("  You lead this trick")
		}

		legal := map[game.Card]bool{}
		for _, c := range game.Playable(g, you) {
			legal[c] = true
		}
		hand := you.Hand()
		for i, c := range hand {
			note := ""
			if !legal[c] {
				note = pterm.Gray(" (must follow suit)")
			}
			pterm.Printfln("  [%d] %s%s", i+1, cardString(c), note)
		}

		for {
			pterm.Print("Card to play: ")
			if !scanner.Scan() {
				return -1
			}
			choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err == nil && choice >= 1 && choice <= len(hand) && legal[hand[choice-1]] {
				return choice - 1
			}
			pterm.Warning.Printfln("Enter a number between 1 and %d naming a legal card", len(hand))
		}
	}
}

// tablePrinter narrates the match to the human player as a game.Recorder.
type tablePrinter struct {
	game *game.Game
	you  *game.Player
}

func (t *tablePrinter) AddTrickPoints(p *game.Player, points int) {
	tricks := t.game.Tricks()
	trick := tricks[len(tricks)-1]
	plays := make([]string, 0, trick.Len())
	for _, play := range trick.Plays() {
		plays = append(plays, play.Player.Name()+" "+cardString(play.Card))
	}
	pterm.Info.Printfln("Trick %d: %s", len(tricks), strings.Join(plays, ", "))
	pterm.Info.Printfln("%s takes the trick for %d points", p.Name(), points)
}

func (t *tablePrinter) AddGamePoints(p *game.Player, points int) {
	pterm.Printfln("  %s: %d points", p.Name(), points)
}

func (t *tablePrinter) IncrementWins(p *game.Player) {
	if p == t.you {
		pterm.Success.Println("You win!")
	} else {
		pterm.Info.Printfln("%s wins", p.Name())
	}
}

func (t *tablePrinter) IncrementDraws(p *game.Player) {
	if p == t.you {
		pterm.Success.Println("You share the top score, the match is a draw")
	}
}

func (t *tablePrinter) IncrementLosses(p *game.Player) {
	if p == t.you {
		pterm.Error.Println("You lose")
	}
}

func suitString(s game.Suit) string {
	if s == game.Hearts || s == game.Diamonds {
		return pterm.LightRed(s.Symbol())
	}
	return s.Symbol()
}

func cardString(c game.Card) string {
	return fmt.Sprintf("%s%s", c.Rank.Symbol(), suitString(c.Suit))
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envUint64(key string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
