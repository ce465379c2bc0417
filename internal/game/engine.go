package game

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/gofish/internal/deck"
	"github.com/lox/gofish/internal/randutil"
)

// InitialHandSize is the number of cards dealt to each player
const InitialHandSize = 5

// DefaultComputerName is used when no computer name is configured
const DefaultComputerName = "Computer"

var (
	// ErrEmptyName is returned when the human player's name is blank
	ErrEmptyName = errors.New("player name must not be empty")
	// ErrInvalidChoice is returned when the human asks for a kind they do not hold
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrNotYourTurn is returned when a turn is played out of order
	ErrNotYourTurn = errors.New("not your turn")
	// ErrGameOver is returned when a turn is played after a winner was declared
	ErrGameOver = errors.New("game is over")
)

// Phase is the engine's position in the turn cycle
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseHumanTurn
	PhaseComputerTurn
	PhaseGameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseHumanTurn:
		return "human_turn"
	case PhaseComputerTurn:
		return "computer_turn"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// TurnResult describes a completed (or skipped) turn
type TurnResult struct {
	Animal  deck.Animal // Kind that was asked for
	Success bool        // Target handed over a card
	Drew    bool        // Asker drew from the deck after "Go Fish"
	Skipped bool        // Seat had no cards and passed
	Winner  *Player     // Set when the turn ended the game
}

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	computerName string
	clock        quartz.Clock
	logger       *log.Logger
	strategy     Strategy
	subscribers  []EventSubscriber
}

// WithComputerName sets the opponent's display name
func WithComputerName(name string) Option {
	return func(c *engineConfig) {
		c.computerName = name
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

// WithLogger sets the engine's diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithStrategy replaces the computer's default random strategy
func WithStrategy(s Strategy) Option {
	return func(c *engineConfig) {
		c.strategy = s
	}
}

// WithSubscriber subscribes s to the engine's events before the first deal
func WithSubscriber(s EventSubscriber) Option {
	return func(c *engineConfig) {
		c.subscribers = append(c.subscribers, s)
	}
}

// Engine runs a game of Go Fish between a human and the computer
type Engine struct {
	human    *Player
	computer *Player
	deck     *deck.Deck
	phase    Phase
	winner   *Player
	round    int
	turns    int

	rng      randutil.Source
	strategy Strategy
	bus      *SimpleEventBus
	clock    quartz.Clock
	logger   *log.Logger
}

// NewEngine creates an engine and deals the first game. The RNG is required so
// that every shuffle and computer choice can be reproduced from a seed.
func NewEngine(rng randutil.Source, humanName string, opts ...Option) (*Engine, error) {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	name := strings.TrimSpace(humanName)
	if name == "" {
		return nil, ErrEmptyName
	}

	cfg := &engineConfig{
		computerName: DefaultComputerName,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if strings.TrimSpace(cfg.computerName) == "" {
		cfg.computerName = DefaultComputerName
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.strategy == nil {
		cfg.strategy = NewRandomStrategy(rng)
	}

	e := &Engine{
		human:    NewPlayer(name),
		computer: NewPlayer(cfg.computerName),
		rng:      rng,
		strategy: cfg.strategy,
		bus:      NewEventBus(),
		clock:    cfg.clock,
		logger:   cfg.logger.WithPrefix("engine"),
	}
	for _, s := range cfg.subscribers {
		e.bus.Subscribe(s)
	}

	e.reset()
	return e, nil
}

// reset builds a fresh deck, empties both hands and deals
func (e *Engine) reset() {
	e.phase = PhaseDealing
	e.winner = nil
	e.turns = 0
	e.round++
	e.deck = deck.NewDeck(e.rng)
	e.human.ClearHand()
	e.computer.ClearHand()

	for range InitialHandSize {
		e.human.Take(e.deck.Draw())
		e.computer.Take(e.deck.Draw())
	}

	e.phase = PhaseHumanTurn
	e.logger.Debug("Dealt new game", "round", e.round, "deck", e.deck.Remaining())
}

// Events returns the bus the engine publishes to
func (e *Engine) Events() EventBus {
	return e.bus
}

func (e *Engine) emit(t EventType, player *Player, animal deck.Animal, format string, args ...any) {
	ev := Event{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Animal:  animal,
		Round:   e.round,
		Time:    e.clock.Now(),
	}
	if player != nil {
		ev.Player = player.Name
	}
	e.bus.Publish(ev)
}

// Welcome publishes the opening banner and rules
func (e *Engine) Welcome() {
	e.emit(EventTypeWelcome, nil, deck.NoAnimal, "--- Let's start the Go Fish game! ---")
	e.emit(EventTypeWelcome, nil, deck.NoAnimal, "RULES: Collect 4 matching cards to win.")
}

// AnnounceHand publishes the human's current hand
func (e *Engine) AnnounceHand() {
	e.emit(EventTypeHand, e.human, deck.NoAnimal, "Your hand: %s", e.human.HandString())
}

// Ask asks target for a card of the given kind on behalf of asker. If target
// holds one it moves to asker and Ask returns true. Otherwise asker draws from
// the deck, receiving nothing if the deck is empty, and Ask returns false.
func (e *Engine) Ask(asker, target *Player, animal deck.Animal) bool {
	ok, _ := e.ask(asker, target, animal)
	return ok
}

func (e *Engine) ask(asker, target *Player, animal deck.Animal) (got, drew bool) {
	if target.RemoveCard(animal) {
		asker.AddCard(deck.NewCard(animal))
		e.emit(EventTypeGives, target, animal, "%s gives %s to %s.", target.Name, animal, asker.Name)
		return true, false
	}

	e.emit(EventTypeGoFish, target, animal, "%s says: 'Go Fish!'", target.Name)
	if asker.Take(e.deck.Draw()) {
		e.emit(EventTypeDraw, asker, deck.NoAnimal, "%s draws a card.", asker.Name)
		return false, true
	}
	e.logger.Debug("Deck empty, nothing to draw", "asker", asker.Name)
	return false, false
}

// HumanTurn plays the human's request for the given kind. Asking for a kind
// the human does not hold is rejected with ErrInvalidChoice and leaves the
// game untouched, so the human can simply try again.
func (e *Engine) HumanTurn(animal deck.Animal) (TurnResult, error) {
	if err := e.expectPhase(PhaseHumanTurn); err != nil {
		return TurnResult{}, err
	}
	if !e.human.Has(animal) {
		e.rejectChoice(animal)
		return TurnResult{}, fmt.Errorf("%w: %s not in hand", ErrInvalidChoice, animal.Name())
	}
	return e.playTurn(e.human, e.computer, animal), nil
}

// HumanTurnInput parses free text into a kind and plays it. Unknown words are
// rejected the same way as kinds the human does not hold.
func (e *Engine) HumanTurnInput(input string) (TurnResult, error) {
	if err := e.expectPhase(PhaseHumanTurn); err != nil {
		return TurnResult{}, err
	}
	animal, err := deck.ParseAnimal(input)
	if err != nil {
		e.rejectChoice(deck.NoAnimal)
		return TurnResult{}, fmt.Errorf("%w: %w", ErrInvalidChoice, err)
	}
	return e.HumanTurn(animal)
}

func (e *Engine) rejectChoice(animal deck.Animal) {
	e.emit(EventTypeInvalidChoice, e.human, animal, "Invalid choice. Please choose a card from your hand.")
}

// SkipHumanTurn passes the human's turn when they have no cards left to ask
// with. It fails with ErrInvalidChoice while the human still holds cards.
func (e *Engine) SkipHumanTurn() (TurnResult, error) {
	if err := e.expectPhase(PhaseHumanTurn); err != nil {
		return TurnResult{}, err
	}
	if e.human.HandSize() > 0 {
		return TurnResult{}, fmt.Errorf("%w: hand is not empty", ErrInvalidChoice)
	}
	e.emit(EventTypeSkip, e.human, deck.NoAnimal, "%s has no cards and passes.", e.human.Name)
	e.phase = PhaseComputerTurn
	return TurnResult{Animal: deck.NoAnimal, Skipped: true}, nil
}

// ComputerTurn lets the computer ask the human for a kind it holds. With an
// empty hand the computer does nothing and control passes straight back.
func (e *Engine) ComputerTurn() (TurnResult, error) {
	if err := e.expectPhase(PhaseComputerTurn); err != nil {
		return TurnResult{}, err
	}
	if e.computer.HandSize() == 0 {
		e.logger.Debug("Computer has no cards, skipping turn")
		e.phase = PhaseHumanTurn
		return TurnResult{Animal: deck.NoAnimal, Skipped: true}, nil
	}

	animal := e.strategy.ChooseAnimal(e.computer.Hand())
	e.emit(EventTypeAsk, e.computer, animal, "%s asks: Do you have a %s?", e.computer.Name, animal)
	return e.playTurn(e.computer, e.human, animal), nil
}

func (e *Engine) playTurn(asker, target *Player, animal deck.Animal) TurnResult {
	e.turns++
	got, drew := e.ask(asker, target, animal)
	res := TurnResult{Animal: animal, Success: got, Drew: drew}

	if winner := e.checkWinner(); winner != nil {
		res.Winner = winner
		return res
	}
	e.switchTurn()
	return res
}

// checkWinner declares the first player holding a set the winner. The human
// is checked first, so if both complete a set at once the human wins.
func (e *Engine) checkWinner() *Player {
	switch {
	case e.human.HasSet():
		e.winner = e.human
		e.emit(EventTypeWinner, e.human, deck.NoAnimal, "Congratulations, %s! You win!", e.human.Name)
	case e.computer.HasSet():
		e.winner = e.computer
		e.emit(EventTypeWinner, e.computer, deck.NoAnimal, "%s wins! Better luck next time.", e.computer.Name)
	default:
		return nil
	}
	e.phase = PhaseGameOver
	e.logger.Info("Game over", "round", e.round, "winner", e.winner.Name, "turns", e.turns)
	return e.winner
}

func (e *Engine) switchTurn() {
	if e.phase == PhaseHumanTurn {
		e.phase = PhaseComputerTurn
	} else {
		e.phase = PhaseHumanTurn
	}
}

func (e *Engine) expectPhase(want Phase) error {
	switch {
	case e.phase == want:
		return nil
	case e.phase == PhaseGameOver:
		return ErrGameOver
	default:
		return fmt.Errorf("%w: phase is %s", ErrNotYourTurn, e.phase)
	}
}

// StartNewGame discards the current game and deals a fresh one on the same
// engine and players
func (e *Engine) StartNewGame() {
	e.reset()
	e.emit(EventTypeNewGame, nil, deck.NoAnimal, "--- A new game begins! ---")
}

// Human returns the human player
func (e *Engine) Human() *Player { return e.human }

// Computer returns the computer player
func (e *Engine) Computer() *Player { return e.computer }

// Phase returns the current phase
func (e *Engine) Phase() Phase { return e.phase }

// Winner returns the winner of the current game, or nil while it is running
func (e *Engine) Winner() *Player { return e.winner }

// Round returns how many games have been dealt on this engine
func (e *Engine) Round() int { return e.round }

// Turns returns the number of completed asks in the current game
func (e *Engine) Turns() int { return e.turns }

// DeckRemaining returns the number of cards left to draw
func (e *Engine) DeckRemaining() int { return e.deck.Remaining() }

// CardsInPlay returns the total of deck and both hands, which is always deck.Size
func (e *Engine) CardsInPlay() int {
	return e.deck.Remaining() + e.human.HandSize() + e.computer.HandSize()
}
