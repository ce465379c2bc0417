package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/gofish/internal/deck"
	"github.com/lox/gofish/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestEngine creates a seeded engine with a mock clock and an attached
// event log
func newTestEngine(t *testing.T, seed int64, opts ...Option) (*Engine, *EventLog) {
	t.Helper()
	events := &EventLog{}
	base := []Option{
		WithClock(quartz.NewMock(t)),
		WithLogger(quietLogger()),
		WithSubscriber(events),
	}
	e, err := NewEngine(randutil.New(seed), "Alice", append(base, opts...)...)
	require.NoError(t, err)
	return e, events
}

func cards(animals ...deck.Animal) []deck.Card {
	out := make([]deck.Card, len(animals))
	for i, a := range animals {
		out[i] = deck.NewCard(a)
	}
	return out
}

// stack replaces both hands and rebuilds the deck from the cards left over,
// keeping the 32-card total. top lists the next cards to be drawn, first
// drawn first; they must be available after the hands are taken out.
func stack(t *testing.T, e *Engine, human, computer []deck.Animal, top ...deck.Animal) {
	t.Helper()
	var pool [deck.NumAnimals]int
	for _, a := range deck.Animals() {
		pool[a] = deck.CopiesPerAnimal
	}
	take := func(a deck.Animal) {
		pool[a]--
		require.GreaterOrEqual(t, pool[a], 0, "more than four %s stacked", a)
	}

	e.human.hand = cards(human...)
	e.computer.hand = cards(computer...)
	for _, a := range human {
		take(a)
	}
	for _, a := range computer {
		take(a)
	}
	for _, a := range top {
		take(a)
	}

	var rest []deck.Card
	for _, a := range deck.Animals() {
		for range pool[a] {
			rest = append(rest, deck.NewCard(a))
		}
	}
	for i := len(top) - 1; i >= 0; i-- {
		rest = append(rest, deck.NewCard(top[i]))
	}
	e.deck = deck.FromCards(e.rng, rest)
	require.Equal(t, deck.Size, e.CardsInPlay())
}

// emptyDeck drains the deck into nowhere; only for tests that do not check
// the card total
func emptyDeck(e *Engine) {
	e.deck = deck.FromCards(e.rng, nil)
}
