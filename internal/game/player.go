package game

import (
	"strings"

	"github.com/lox/gofish/internal/deck"
)

// Player represents a seat at the table
type Player struct {
	Name string
	hand []deck.Card
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// AddCard appends card to the hand. Cards with an invalid animal are ignored.
func (p *Player) AddCard(card deck.Card) bool {
	if !card.Animal.Valid() {
		return false
	}
	p.hand = append(p.hand, card)
	return true
}

// Take adds the result of a deck draw, doing nothing when no card was drawn.
// It accepts Deck.Draw's results directly: p.Take(d.Draw()).
func (p *Player) Take(card deck.Card, ok bool) bool {
	if !ok {
		return false
	}
	return p.AddCard(card)
}

// RemoveCard removes one card of the given kind, returning false if none is held
func (p *Player) RemoveCard(animal deck.Animal) bool {
	for i, c := range p.hand {
		if c.Animal == animal {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether the hand holds at least one card of the kind
func (p *Player) Has(animal deck.Animal) bool {
	return p.Count(animal) > 0
}

// Count returns how many cards of the kind are held
func (p *Player) Count(animal deck.Animal) int {
	n := 0
	for _, c := range p.hand {
		if c.Animal == animal {
			n++
		}
	}
	return n
}

// HandSize returns the number of cards held
func (p *Player) HandSize() int {
	return len(p.hand)
}

// Hand returns a copy of the cards held, in the order they were received
func (p *Player) Hand() []deck.Card {
	cards := make([]deck.Card, len(p.hand))
	copy(cards, p.hand)
	return cards
}

// HandKinds returns the kind of every card held, in hand order
func (p *Player) HandKinds() []deck.Animal {
	kinds := make([]deck.Animal, len(p.hand))
	for i, c := range p.hand {
		kinds[i] = c.Animal
	}
	return kinds
}

// HandString lists the hand as lower-case names (e.g., "dog, cat, dog")
func (p *Player) HandString() string {
	names := make([]string, len(p.hand))
	for i, c := range p.hand {
		names[i] = c.Animal.Name()
	}
	return strings.Join(names, ", ")
}

// HasSet reports whether some kind is held exactly four times
func (p *Player) HasSet() bool {
	var counts [deck.NumAnimals]int
	for _, c := range p.hand {
		counts[c.Animal]++
	}
	for _, n := range counts {
		if n == deck.CopiesPerAnimal {
			return true
		}
	}
	return false
}

// ClearHand empties the hand
func (p *Player) ClearHand() {
	p.hand = p.hand[:0]
}
