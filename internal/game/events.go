package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/gofish/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for everything the engine reports
const (
	EventTypeWelcome       EventType = "welcome"
	EventTypeNewGame       EventType = "new_game"
	EventTypeHand          EventType = "hand"
	EventTypeAsk           EventType = "ask"
	EventTypeGives         EventType = "gives"
	EventTypeGoFish        EventType = "go_fish"
	EventTypeDraw          EventType = "draw"
	EventTypeInvalidChoice EventType = "invalid_choice"
	EventTypeWinner        EventType = "winner"
	EventTypeSkip          EventType = "skip"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is one line of the game log. Message is the text shown to the
// player; the remaining fields let subscribers react without parsing it.
type Event struct {
	Type    EventType
	Message string
	Player  string      // Acting player, when there is one
	Animal  deck.Animal // Kind involved, for ask/gives events
	Round   int
	Time    time.Time
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a plain function to EventSubscriber
type EventSubscriberFunc func(event Event)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers are
// called in subscription order on the publisher's goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and must be wrapped in a pointer type to be
// removable.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventLog records every event it receives. It is the append-only log the
// shell renders and what tests assert against.
type EventLog struct {
	events []Event
}

// OnEvent appends event to the log
func (l *EventLog) OnEvent(event Event) {
	l.events = append(l.events, event)
}

// Events returns a copy of the recorded events
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Messages returns the Message of every recorded event in order
func (l *EventLog) Messages() []string {
	out := make([]string, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Message
	}
	return out
}

// OfType returns the recorded events with the given type
func (l *EventLog) OfType(t EventType) []Event {
	var out []Event
	for _, ev := range l.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset drops all recorded events
func (l *EventLog) Reset() {
	l.events = l.events[:0]
}

// LoggingSubscriber writes each event to a structured logger
type LoggingSubscriber struct {
	logger *log.Logger
}

// NewLoggingSubscriber creates a subscriber that logs events at info level
func NewLoggingSubscriber(logger *log.Logger) *LoggingSubscriber {
	return &LoggingSubscriber{logger: logger.WithPrefix("events")}
}

// OnEvent logs the event
func (s *LoggingSubscriber) OnEvent(event Event) {
	kv := []any{"type", event.Type, "round", event.Round}
	if event.Player != "" {
		kv = append(kv, "player", event.Player)
	}
	switch event.Type {
	case EventTypeAsk, EventTypeGives, EventTypeInvalidChoice:
		kv = append(kv, "animal", event.Animal.Name())
	}
	s.logger.Info(event.Message, kv...)
}
