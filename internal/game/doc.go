// Package game implements the rules of two-player Go Fish.
//
// The main type is Engine, which owns the deck, both players and the turn
// marker, and advances the game one request at a time.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e, err := game.NewEngine(rng, "Alice")
//	if err != nil {
//	    return err
//	}
//	e.Events().Subscribe(game.EventSubscriberFunc(func(ev game.Event) {
//	    fmt.Println(ev.Message)
//	}))
//	res, err := e.HumanTurnInput("lion")
//	if errors.Is(err, game.ErrInvalidChoice) {
//	    // prompt again, nothing changed
//	}
//	if res.Winner == nil {
//	    e.ComputerTurn()
//	}
//
// # Deterministic Testing
//
// All randomness (the shuffle and the computer's choice of kind) is drawn from
// the randutil.Source passed to NewEngine. Event timestamps come from a
// quartz.Clock supplied with WithClock. With a fixed seed and a mock clock a
// whole game replays identically.
//
// # Architecture
//
//   - deck.Deck: the shuffled draw pile
//   - Player: a name and a hand of cards
//   - Strategy: picks the kind a computer-controlled seat asks for
//   - EventBus: carries every message the engine produces to subscribers
//
// The engine is not safe for concurrent use. The interactive shell only
// touches it from its update loop; the simulator gives each goroutine its own
// engine.
package game
