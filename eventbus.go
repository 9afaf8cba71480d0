package katachi

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in the EventBus. This value is fixed at 256.
const MaxEventTypes = 256

// EventBus delivers typed events to handler chains for decoupled
// communication between systems. Handlers for an event type run in the order
// they were bound; a handler returning true marks the event handled and
// stops propagation to the rest of the chain.
//
// Publish is allocation-free, making it suitable for per-frame code paths.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]interface{}
	nextEventTypeID uint16
}

// Subscribe appends a handler to the chain for event type T, lazily creating
// the chain on first use. The handler returns true to consume the event.
func Subscribe[T any](bus *EventBus, handler func(T) bool) {
	t := reflect.TypeFor[T]()
	id := bus.getEventTypeID(t)
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]interface{}, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish delivers an event of type T to its handler chain synchronously, in
// bind order, stopping at the first handler that returns true. Publishing a
// type nothing is bound to is a silent no-op.
func Publish[T any](bus *EventBus, event T) {
	t := reflect.TypeFor[T]()
	if id, ok := bus.eventTypeMap[t]; ok {
		for _, h := range bus.handlers[id] {
			if h.(func(T) bool)(event) {
				break
			}
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if int(bus.nextEventTypeID) >= MaxEventTypes {
		panic("ecs: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}

// Events exposes the world's event bus.
func (w *World) Events() *EventBus {
	return &w.bus
}

// Bind adds a handler for events of type T on the world's bus. Method-bound
// handlers are plain closures:
//
//	katachi.Bind(w, input.OnKeyDown)
func Bind[T any](w *World, handler func(T) bool) {
	Subscribe(&w.bus, handler)
}

// Emit publishes an event on the world's bus. Emitting does not mutate world
// state by itself; handlers may.
func Emit[T any](w *World, event T) {
	Publish(&w.bus, event)
}
