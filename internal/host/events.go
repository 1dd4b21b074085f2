package host

type EventType int

const (
	EventResize EventType = iota
	EventPointerMove
	EventKey
)

// Event carries client-space coordinates for pointer moves and the typed
// rune for key presses. Resize events carry no payload; listeners re-read
// the viewport.
type Event struct {
	Type EventType
	X, Y float64
	Key  rune
}

type EventHandler func(Event)

type subscription struct {
	fn EventHandler
}

type EventBus struct {
	handlers map[EventType][]*subscription
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]*subscription),
	}
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (eb *EventBus) Subscribe(t EventType, fn EventHandler) func() {
	sub := &subscription{fn: fn}
	eb.handlers[t] = append(eb.handlers[t], sub)
	return func() {
		subs := eb.handlers[t]
		for i, s := range subs {
			if s == sub {
				eb.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (eb *EventBus) Emit(e Event) {
	// Copy so handlers may unsubscribe while being dispatched.
	subs := append([]*subscription(nil), eb.handlers[e.Type]...)
	for _, s := range subs {
		s.fn(e)
	}
}

// Count reports how many handlers are registered for t.
func (eb *EventBus) Count(t EventType) int {
	return len(eb.handlers[t])
}
