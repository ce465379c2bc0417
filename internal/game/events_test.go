package game

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gofish/internal/deck"
)

func TestEventBusDeliversInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string
	first := &EventLog{}
	bus.Subscribe(first)
	bus.Subscribe(EventSubscriberFunc(func(ev Event) {
		order = append(order, ev.Message)
	}))

	bus.Publish(Event{Type: EventTypeAsk, Message: "one"})
	bus.Publish(Event{Type: EventTypeGives, Message: "two"})

	assert.Equal(t, []string{"one", "two"}, first.Messages())
	assert.Equal(t, []string{"one", "two"}, order)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a, b := &EventLog{}, &EventLog{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Unsubscribe(a)
	bus.Publish(Event{Message: "after"})

	assert.Empty(t, a.Events())
	assert.Equal(t, []string{"after"}, b.Messages())
}

func TestEventLog(t *testing.T) {
	l := &EventLog{}
	l.OnEvent(Event{Type: EventTypeGoFish, Message: "Computer says: 'Go Fish!'"})
	l.OnEvent(Event{Type: EventTypeDraw, Message: "Alice draws a card."})
	l.OnEvent(Event{Type: EventTypeGoFish, Message: "Alice says: 'Go Fish!'"})

	assert.Len(t, l.OfType(EventTypeGoFish), 2)
	assert.Len(t, l.OfType(EventTypeWinner), 0)

	got := l.Events()
	got[0].Message = "changed"
	assert.Equal(t, "Computer says: 'Go Fish!'", l.Messages()[0])

	l.Reset()
	assert.Empty(t, l.Events())
}

func TestLoggingSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	s := NewLoggingSubscriber(logger)

	s.OnEvent(Event{
		Type:    EventTypeGives,
		Message: "Computer gives Dog to Alice.",
		Player:  "Computer",
		Animal:  deck.Dog,
		Round:   3,
	})

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Computer gives Dog to Alice.")
	assert.Contains(t, out, "type=gives")
	assert.Contains(t, out, "animal=dog")
	assert.Contains(t, out, "round=3")
	assert.Contains(t, out, "events")
}
