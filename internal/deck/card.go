package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAnimal is returned when a name does not match any animal kind
var ErrUnknownAnimal = errors.New("unknown animal")

// Animal represents the kind printed on a card
type Animal int

const (
	Dog Animal = iota
	Cat
	Fish
	Lion
	Butterfly
	Bee
	Ant
	Dinosaur
)

// NoAnimal marks the absence of a kind, such as unparseable input
const NoAnimal Animal = -1

// NumAnimals is the number of distinct kinds in a deck
const NumAnimals = 8

// CopiesPerAnimal is how many cards of each kind exist
const CopiesPerAnimal = 4

// Animals returns every kind in canonical deck order
func Animals() []Animal {
	return []Animal{Dog, Cat, Fish, Lion, Butterfly, Bee, Ant, Dinosaur}
}

var animalNames = [NumAnimals]string{
	Dog:       "dog",
	Cat:       "cat",
	Fish:      "fish",
	Lion:      "lion",
	Butterfly: "butterfly",
	Bee:       "bee",
	Ant:       "ant",
	Dinosaur:  "dinosaur",
}

// Name returns the lower-case name used for input and hand listings
func (a Animal) Name() string {
	if !a.Valid() {
		return "?"
	}
	return animalNames[a]
}

// String returns the capitalised name (e.g., "Dog")
func (a Animal) String() string {
	name := a.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Valid reports whether a is one of the eight kinds
func (a Animal) Valid() bool {
	return a >= Dog && a <= Dinosaur
}

// ParseAnimal parses a kind name, ignoring case and surrounding whitespace
func ParseAnimal(s string) (Animal, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range animalNames {
		if n == name {
			return Animal(i), nil
		}
	}
	return NoAnimal, fmt.Errorf("%w: %q", ErrUnknownAnimal, s)
}

// Card is a single playing card. Cards carry no identity; two cards with the
// same animal are interchangeable.
type Card struct {
	Animal Animal
}

// NewCard creates a new card
func NewCard(animal Animal) Card {
	return Card{Animal: animal}
}

// String returns the string representation of a card (e.g., "Lion")
func (c Card) String() string {
	return c.Animal.String()
}
