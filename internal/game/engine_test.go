package game

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gofish/internal/deck"
	"github.com/lox/gofish/internal/randutil"
)

func TestNewEngineDeals(t *testing.T) {
	e, events := newTestEngine(t, 42)

	assert.Equal(t, 5, e.Human().HandSize())
	assert.Equal(t, 5, e.Computer().HandSize())
	assert.Equal(t, 22, e.DeckRemaining())
	assert.Equal(t, deck.Size, e.CardsInPlay())
	assert.Equal(t, PhaseHumanTurn, e.Phase())
	assert.Equal(t, "Alice", e.Human().Name)
	assert.Equal(t, DefaultComputerName, e.Computer().Name)
	assert.Equal(t, 1, e.Round())
	assert.Nil(t, e.Winner())
	assert.Empty(t, events.Events(), "dealing publishes nothing")
}

func TestNewEngineRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := NewEngine(randutil.New(1), name)
		assert.ErrorIs(t, err, ErrEmptyName, "name %q", name)
	}
}

func TestNewEngineTrimsNameAndDefaultsComputer(t *testing.T) {
	e, err := NewEngine(randutil.New(1), "  Bob ", WithComputerName("  "))
	require.NoError(t, err)
	assert.Equal(t, "Bob", e.Human().Name)
	assert.Equal(t, DefaultComputerName, e.Computer().Name)

	e, err = NewEngine(randutil.New(1), "Bob", WithComputerName("HAL"))
	require.NoError(t, err)
	assert.Equal(t, "HAL", e.Computer().Name)
}

func TestNewEngineIsSeeded(t *testing.T) {
	a, _ := newTestEngine(t, 7)
	b, _ := newTestEngine(t, 7)
	assert.Equal(t, a.Human().Hand(), b.Human().Hand())
	assert.Equal(t, a.Computer().Hand(), b.Computer().Hand())
}

func TestAsk(t *testing.T) {
	t.Run("target holds the kind", func(t *testing.T) {
		e, events := newTestEngine(t, 1)
		stack(t, e, []deck.Animal{deck.Dog}, []deck.Animal{deck.Dog, deck.Cat})

		ok := e.Ask(e.Human(), e.Computer(), deck.Dog)

		require.True(t, ok)
		assert.Equal(t, 2, e.Human().Count(deck.Dog))
		assert.Equal(t, 0, e.Computer().Count(deck.Dog))
		assert.Equal(t, 29, e.DeckRemaining(), "no draw on success")
		assert.Equal(t, []string{"Computer gives Dog to Alice."}, events.Messages())
		assert.Equal(t, EventTypeGives, events.Events()[0].Type)
		assert.Equal(t, deck.Size, e.CardsInPlay())
	})

	t.Run("go fish draws one card", func(t *testing.T) {
		e, events := newTestEngine(t, 1)
		stack(t, e, []deck.Animal{deck.Dog}, []deck.Animal{deck.Cat}, deck.Bee)

		ok := e.Ask(e.Human(), e.Computer(), deck.Dog)

		require.False(t, ok)
		assert.Equal(t, cards(deck.Cat), e.Computer().Hand(), "target unchanged")
		assert.Equal(t, cards(deck.Dog, deck.Bee), e.Human().Hand())
		assert.Equal(t, 29, e.DeckRemaining())
		assert.Equal(t, []string{
			"Computer says: 'Go Fish!'",
			"Alice draws a card.",
		}, events.Messages())
		assert.Equal(t, deck.Size, e.CardsInPlay())
	})

	t.Run("go fish with empty deck", func(t *testing.T) {
		e, events := newTestEngine(t, 1)
		e.human.hand = cards(deck.Dog)
		e.computer.hand = cards(deck.Cat)
		emptyDeck(e)

		ok := e.Ask(e.Human(), e.Computer(), deck.Dog)

		require.False(t, ok)
		assert.Equal(t, 1, e.Human().HandSize())
		assert.Equal(t, 1, e.Computer().HandSize())
		assert.Equal(t, 0, e.DeckRemaining())
		assert.Equal(t, []string{"Computer says: 'Go Fish!'"}, events.Messages())
	})

	t.Run("moves only one card", func(t *testing.T) {
		e, _ := newTestEngine(t, 1)
		stack(t, e, []deck.Animal{deck.Ant}, []deck.Animal{deck.Ant, deck.Ant, deck.Ant})

		e.Ask(e.Human(), e.Computer(), deck.Ant)

		assert.Equal(t, 2, e.Human().Count(deck.Ant))
		assert.Equal(t, 2, e.Computer().Count(deck.Ant))
	})
}

func TestHumanTurnInvalidChoice(t *testing.T) {
	e, events := newTestEngine(t, 3)
	stack(t, e, []deck.Animal{deck.Dog, deck.Cat}, []deck.Animal{deck.Lion})
	humanBefore := e.Human().Hand()
	computerBefore := e.Computer().Hand()
	deckBefore := e.DeckRemaining()

	res, err := e.HumanTurn(deck.Lion)

	require.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, TurnResult{}, res)
	assert.Equal(t, humanBefore, e.Human().Hand())
	assert.Equal(t, computerBefore, e.Computer().Hand())
	assert.Equal(t, deckBefore, e.DeckRemaining())
	assert.Equal(t, PhaseHumanTurn, e.Phase(), "turn not consumed")
	assert.Equal(t, 0, e.Turns())
	assert.Equal(t, []string{"Invalid choice. Please choose a card from your hand."}, events.Messages())
}

func TestHumanTurnInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		success bool
	}{
		{name: "exact", input: "dog", success: true},
		{name: "case and whitespace", input: "  DoG \n", success: true},
		{name: "held but target lacks", input: "cat"},
		{name: "not held", input: "lion", wantErr: ErrInvalidChoice},
		{name: "unknown word", input: "unicorn", wantErr: ErrInvalidChoice},
		{name: "empty", input: "", wantErr: ErrInvalidChoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, events := newTestEngine(t, 5)
			stack(t, e, []deck.Animal{deck.Dog, deck.Cat}, []deck.Animal{deck.Dog, deck.Bee})

			res, err := e.HumanTurnInput(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, PhaseHumanTurn, e.Phase())
				assert.Len(t, events.OfType(EventTypeInvalidChoice), 1)
				assert.Equal(t, 28, e.DeckRemaining())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, PhaseComputerTurn, e.Phase())
		})
	}
}

func TestHumanGoFishScenario(t *testing.T) {
	e, events := newTestEngine(t, 11)
	stack(t, e,
		[]deck.Animal{deck.Dog, deck.Cat, deck.Fish, deck.Lion, deck.Bee},
		[]deck.Animal{deck.Ant, deck.Ant, deck.Dinosaur, deck.Butterfly, deck.Cat},
	)
	require.Equal(t, 22, e.DeckRemaining())

	res, err := e.HumanTurn(deck.Dog)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.Drew)
	assert.Nil(t, res.Winner)
	assert.Equal(t, 21, e.DeckRemaining())
	assert.Equal(t, 6, e.Human().HandSize())
	assert.Equal(t, 5, e.Computer().HandSize())
	assert.Equal(t, PhaseComputerTurn, e.Phase())
	assert.Equal(t, "Computer says: 'Go Fish!'", events.Messages()[0])
	assert.Len(t, events.OfType(EventTypeGoFish), 1)
}

func TestComputerTurn(t *testing.T) {
	t.Run("asks for a kind it holds", func(t *testing.T) {
		e, events := newTestEngine(t, 8)
		stack(t, e, []deck.Animal{deck.Lion, deck.Cat}, []deck.Animal{deck.Lion, deck.Lion})
		e.phase = PhaseComputerTurn

		res, err := e.ComputerTurn()

		require.NoError(t, err)
		assert.Equal(t, deck.Lion, res.Animal)
		assert.True(t, res.Success)
		assert.Equal(t, 3, e.Computer().Count(deck.Lion))
		assert.Equal(t, PhaseHumanTurn, e.Phase())
		assert.Equal(t, []string{
			"Computer asks: Do you have a Lion?",
			"Alice gives Lion to Computer.",
		}, events.Messages())
	})

	t.Run("uses the configured strategy", func(t *testing.T) {
		var seen []deck.Card
		pick := StrategyFunc(func(hand []deck.Card) deck.Animal {
			seen = hand
			return deck.Bee
		})
		e, _ := newTestEngine(t, 8, WithStrategy(pick))
		stack(t, e, []deck.Animal{deck.Cat}, []deck.Animal{deck.Bee, deck.Ant}, deck.Fish)
		e.phase = PhaseComputerTurn

		res, err := e.ComputerTurn()

		require.NoError(t, err)
		assert.Equal(t, cards(deck.Bee, deck.Ant), seen)
		assert.Equal(t, deck.Bee, res.Animal)
		assert.False(t, res.Success)
		assert.Equal(t, cards(deck.Bee, deck.Ant, deck.Fish), e.Computer().Hand())
	})

	t.Run("empty hand skips", func(t *testing.T) {
		e, events := newTestEngine(t, 8)
		stack(t, e, []deck.Animal{deck.Cat, deck.Cat, deck.Cat}, nil)
		e.phase = PhaseComputerTurn
		deckBefore := e.DeckRemaining()

		res, err := e.ComputerTurn()

		require.NoError(t, err)
		assert.True(t, res.Skipped)
		assert.Nil(t, res.Winner)
		assert.Equal(t, PhaseHumanTurn, e.Phase(), "control returns to the human")
		assert.Equal(t, deckBefore, e.DeckRemaining())
		assert.Equal(t, 0, e.Turns())
		assert.Empty(t, events.Events())
	})
}

func TestSkipHumanTurn(t *testing.T) {
	e, events := newTestEngine(t, 9)
	stack(t, e, nil, []deck.Animal{deck.Cat})

	res, err := e.SkipHumanTurn()
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, PhaseComputerTurn, e.Phase())
	assert.Equal(t, []string{"Alice has no cards and passes."}, events.Messages())

	e.phase = PhaseHumanTurn
	e.human.hand = cards(deck.Dog)
	_, err = e.SkipHumanTurn()
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestTurnOrderEnforced(t *testing.T) {
	e, events := newTestEngine(t, 4)

	_, err := e.ComputerTurn()
	assert.ErrorIs(t, err, ErrNotYourTurn)

	e.phase = PhaseComputerTurn
	_, err = e.HumanTurnInput("dog")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	e.phase = PhaseGameOver
	_, err = e.HumanTurn(deck.Dog)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = e.ComputerTurn()
	assert.ErrorIs(t, err, ErrGameOver)

	assert.Empty(t, events.Events(), "out-of-turn calls publish nothing")
	assert.Equal(t, 22, e.DeckRemaining())
}

func TestStrictAlternation(t *testing.T) {
	e, _ := newTestEngine(t, 12)
	stack(t, e,
		[]deck.Animal{deck.Dog, deck.Cat},
		[]deck.Animal{deck.Fish, deck.Lion},
	)

	_, err := e.HumanTurn(deck.Dog)
	require.NoError(t, err)
	_, err = e.HumanTurn(deck.Cat)
	require.ErrorIs(t, err, ErrNotYourTurn)

	_, err = e.ComputerTurn()
	require.NoError(t, err)
	_, err = e.ComputerTurn()
	require.ErrorIs(t, err, ErrNotYourTurn)
	assert.Equal(t, PhaseHumanTurn, e.Phase())
}

func TestWinner(t *testing.T) {
	t.Run("human completes a set", func(t *testing.T) {
		e, events := newTestEngine(t, 2)
		stack(t, e,
			[]deck.Animal{deck.Lion, deck.Lion, deck.Lion, deck.Cat},
			[]deck.Animal{deck.Lion, deck.Dog},
		)

		res, err := e.HumanTurn(deck.Lion)

		require.NoError(t, err)
		require.NotNil(t, res.Winner)
		assert.Same(t, e.Human(), res.Winner)
		assert.Same(t, e.Human(), e.Winner())
		assert.Equal(t, PhaseGameOver, e.Phase())
		winners := events.OfType(EventTypeWinner)
		require.Len(t, winners, 1)
		assert.Equal(t, "Congratulations, Alice! You win!", winners[0].Message)
	})

	t.Run("computer completes a set", func(t *testing.T) {
		e, events := newTestEngine(t, 2)
		stack(t, e,
			[]deck.Animal{deck.Bee, deck.Cat},
			[]deck.Animal{deck.Bee, deck.Bee, deck.Bee},
		)
		e.phase = PhaseComputerTurn

		res, err := e.ComputerTurn()

		require.NoError(t, err)
		assert.Same(t, e.Computer(), res.Winner)
		assert.Equal(t, PhaseGameOver, e.Phase())
		assert.Equal(t, "Computer wins! Better luck next time.", events.OfType(EventTypeWinner)[0].Message)
	})

	t.Run("human set completed by drawing", func(t *testing.T) {
		e, _ := newTestEngine(t, 2)
		stack(t, e,
			[]deck.Animal{deck.Ant, deck.Ant, deck.Ant, deck.Dog},
			[]deck.Animal{deck.Cat},
			deck.Ant,
		)

		res, err := e.HumanTurn(deck.Dog)

		require.NoError(t, err)
		assert.True(t, res.Drew)
		assert.Same(t, e.Human(), res.Winner)
	})

	t.Run("computer checked after the human's ask", func(t *testing.T) {
		e, _ := newTestEngine(t, 2)
		stack(t, e,
			[]deck.Animal{deck.Dog},
			[]deck.Animal{deck.Ant, deck.Ant, deck.Ant, deck.Ant},
		)

		res, err := e.HumanTurn(deck.Dog)

		require.NoError(t, err)
		assert.Same(t, e.Computer(), res.Winner)
	})

	t.Run("both hold a set and the human wins", func(t *testing.T) {
		e, events := newTestEngine(t, 2)
		stack(t, e,
			[]deck.Animal{deck.Fish, deck.Fish, deck.Fish, deck.Dog},
			[]deck.Animal{deck.Cat, deck.Cat, deck.Cat, deck.Cat, deck.Fish},
		)

		res, err := e.HumanTurn(deck.Fish)

		require.NoError(t, err)
		assert.Same(t, e.Human(), res.Winner)
		assert.Len(t, events.OfType(EventTypeWinner), 1)
	})
}

func TestStartNewGame(t *testing.T) {
	e, events := newTestEngine(t, 6)
	human, computer := e.Human(), e.Computer()
	stack(t, e,
		[]deck.Animal{deck.Lion, deck.Lion, deck.Lion},
		[]deck.Animal{deck.Lion},
	)
	_, err := e.HumanTurn(deck.Lion)
	require.NoError(t, err)
	require.Equal(t, PhaseGameOver, e.Phase())

	events.Reset()
	e.StartNewGame()

	assert.Same(t, human, e.Human())
	assert.Same(t, computer, e.Computer())
	assert.Equal(t, 5, e.Human().HandSize())
	assert.Equal(t, 5, e.Computer().HandSize())
	assert.Equal(t, 22, e.DeckRemaining())
	assert.Equal(t, deck.Size, e.CardsInPlay())
	assert.Equal(t, PhaseHumanTurn, e.Phase())
	assert.Nil(t, e.Winner())
	assert.Equal(t, 2, e.Round())
	assert.Equal(t, 0, e.Turns())
	assert.Equal(t, []string{"--- A new game begins! ---"}, events.Messages())
	assert.Equal(t, 2, events.Events()[0].Round)
}

func TestWelcomeAndHand(t *testing.T) {
	e, events := newTestEngine(t, 6)
	stack(t, e, []deck.Animal{deck.Dog, deck.Butterfly, deck.Dog}, nil)

	e.Welcome()
	e.AnnounceHand()

	assert.Equal(t, []string{
		"--- Let's start the Go Fish game! ---",
		"RULES: Collect 4 matching cards to win.",
		"Your hand: dog, butterfly, dog",
	}, events.Messages())
}

func TestEventTimestampsUseClock(t *testing.T) {
	clock := quartz.NewMock(t)
	start := clock.Now()

	e, events := newTestEngine(t, 6, WithClock(clock))
	e.Welcome()
	clock.Advance(time.Second)
	e.AnnounceHand()

	evs := events.Events()
	require.Len(t, evs, 3)
	assert.Equal(t, start, evs[0].Time)
	assert.Equal(t, start.Add(time.Second), evs[2].Time)
}

// TestPlayedGamesKeepInvariants plays seeded games with both seats asking for
// random kinds and checks the card total never changes.
func TestPlayedGamesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e, events := newTestEngine(t, seed)
		human := NewRandomStrategy(randutil.New(seed + 1000))

		for step := 0; step < 2000 && e.Phase() != PhaseGameOver; step++ {
			switch e.Phase() {
			case PhaseHumanTurn:
				if e.Human().HandSize() == 0 {
					_, err := e.SkipHumanTurn()
					require.NoError(t, err)
					continue
				}
				_, err := e.HumanTurn(human.ChooseAnimal(e.Human().Hand()))
				require.NoError(t, err)
			case PhaseComputerTurn:
				_, err := e.ComputerTurn()
				require.NoError(t, err)
			}
			require.Equal(t, deck.Size, e.CardsInPlay(), "seed %d step %d", seed, step)
		}

		winners := events.OfType(EventTypeWinner)
		if e.Winner() != nil {
			assert.Len(t, winners, 1, "seed %d", seed)
			assert.True(t, e.Winner().HasSet())
		} else {
			assert.Empty(t, winners, "seed %d", seed)
		}
		assert.Empty(t, events.OfType(EventTypeInvalidChoice))
	}
}
