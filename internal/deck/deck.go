package deck

import (
	"github.com/lox/gofish/internal/randutil"
)

// Size is the number of cards in a full deck
const Size = NumAnimals * CopiesPerAnimal

// Deck represents the draw pile. The top of the pile is the end of the slice.
type Deck struct {
	cards []Card
	rng   randutil.Source
}

// NewDeck creates a full 32-card deck and shuffles it with rng
func NewDeck(rng randutil.Source) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	d.Shuffle()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, animal := range Animals() {
		for range CopiesPerAnimal {
			d.cards = append(d.cards, NewCard(animal))
		}
	}
}

// Shuffle randomizes the order of the remaining cards (Fisher-Yates)
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. ok is false once the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Count returns how many cards of the given kind are still in the deck
func (d *Deck) Count(animal Animal) int {
	n := 0
	for _, c := range d.cards {
		if c.Animal == animal {
			n++
		}
	}
	return n
}

// Reset restores the deck to all 32 cards and shuffles it
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// FromCards creates a deck holding exactly cards, unshuffled. The last card is
// the top of the pile. Later calls to Shuffle and Reset draw from rng.
func FromCards(rng randutil.Source, cards []Card) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards), max(len(cards), Size)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}
