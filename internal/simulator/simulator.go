package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/gofish/internal/deck"
	"github.com/lox/gofish/internal/game"
	"github.com/lox/gofish/internal/randutil"
)

// DefaultMaxTurns caps a single game; games that hit it are recorded as draws
const DefaultMaxTurns = 2000

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seed     int64
	Workers  int // Defaults to GOMAXPROCS
	MaxTurns int // Defaults to DefaultMaxTurns
	Logger   *log.Logger
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed   int64
	Winner string // "human", "computer" or "" for a draw
	Turns  int
}

// Statistics summarises a simulation run
type Statistics struct {
	Games        int
	HumanWins    int
	ComputerWins int
	Draws        int
	TotalTurns   int
}

// Add records a game
func (s *Statistics) Add(r GameResult) {
	s.Games++
	s.TotalTurns += r.Turns
	switch r.Winner {
	case "human":
		s.HumanWins++
	case "computer":
		s.ComputerWins++
	default:
		s.Draws++
	}
}

// AverageTurns returns the mean number of asks per game
func (s *Statistics) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// String formats the statistics for the terminal
func (s *Statistics) String() string {
	pct := func(n int) float64 {
		if s.Games == 0 {
			return 0
		}
		return 100 * float64(n) / float64(s.Games)
	}
	return fmt.Sprintf("games=%d human=%d (%.1f%%) computer=%d (%.1f%%) draws=%d avg_turns=%.1f",
		s.Games, s.HumanWins, pct(s.HumanWins), s.ComputerWins, pct(s.ComputerWins), s.Draws, s.AverageTurns())
}

// Simulator plays Go Fish games with both seats driven by the random strategy
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays all games and returns the aggregated statistics. Each game gets
// its own engine and a seed derived from the run seed, so results do not
// depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	seeds := make([]int64, s.config.Games)
	parent := randutil.New(s.config.Seed)
	for i := range seeds {
		seeds[i] = parent.Int64()
	}

	results := make([]GameResult, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.PlayGame(seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	s.config.Logger.Info("Simulation complete", "games", stats.Games, "human", stats.HumanWins,
		"computer", stats.ComputerWins, "draws", stats.Draws)
	return stats, nil
}

// PlayGame plays one game to completion or the turn cap, checking the card
// total after every turn
func (s *Simulator) PlayGame(seed int64) (GameResult, error) {
	rng := randutil.New(seed)
	e, err := game.NewEngine(rng, "Player", game.WithLogger(s.config.Logger))
	if err != nil {
		return GameResult{}, err
	}
	human := game.NewRandomStrategy(randutil.Child(rng))

	for e.Phase() != game.PhaseGameOver && e.Turns() < s.config.MaxTurns {
		switch e.Phase() {
		case game.PhaseHumanTurn:
			if e.Human().HandSize() == 0 {
				_, err = e.SkipHumanTurn()
			} else {
				_, err = e.HumanTurn(human.ChooseAnimal(e.Human().Hand()))
			}
		case game.PhaseComputerTurn:
			_, err = e.ComputerTurn()
		}
		if err != nil {
			return GameResult{}, err
		}
		if n := e.CardsInPlay(); n != deck.Size {
			return GameResult{}, fmt.Errorf("card total is %d after turn %d, want %d", n, e.Turns(), deck.Size)
		}
	}

	result := GameResult{Seed: seed, Turns: e.Turns()}
	switch e.Winner() {
	case e.Human():
		result.Winner = "human"
	case e.Computer():
		result.Winner = "computer"
	}
	return result, nil
}
