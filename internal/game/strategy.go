package game

import (
	"github.com/lox/gofish/internal/deck"
	"github.com/lox/gofish/internal/randutil"
)

// Strategy chooses which kind a computer-controlled seat asks for. It is only
// called with a non-empty hand.
type Strategy interface {
	ChooseAnimal(hand []deck.Card) deck.Animal
}

// RandomStrategy picks a card uniformly at random from the hand and asks for
// its kind, so kinds held more often are asked for more often.
type RandomStrategy struct {
	rng randutil.Source
}

// NewRandomStrategy creates a strategy drawing from rng
func NewRandomStrategy(rng randutil.Source) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

// ChooseAnimal implements Strategy
func (s *RandomStrategy) ChooseAnimal(hand []deck.Card) deck.Animal {
	return hand[s.rng.IntN(len(hand))].Animal
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(hand []deck.Card) deck.Animal

// ChooseAnimal calls f(hand)
func (f StrategyFunc) ChooseAnimal(hand []deck.Card) deck.Animal { return f(hand) }
