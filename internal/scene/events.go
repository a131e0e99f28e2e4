package scene

import "github.com/go-gl/mathgl/mgl64"

const (
	EventDoorToggled EventType = iota
	EventGoalReached
)

// EventType identifies a kind of scene event.
type EventType uint8

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventDoorToggled:
		return "door_toggled"
	case EventGoalReached:
		return "goal_reached"
	default:
		return "unknown"
	}
}

// Event is implemented by everything published on an EventBus.
type Event interface {
	Type() EventType
}

// DoorToggledEvent is emitted after a door changes state.
type DoorToggledEvent struct {
	Door   *Entity
	Open   bool
	Player mgl64.Vec3
}

func (e DoorToggledEvent) Type() EventType { return EventDoorToggled }

// GoalReachedEvent is emitted once, when the player first reaches the goal.
type GoalReachedEvent struct {
	Goal   *Entity
	Player mgl64.Vec3
}

func (e GoalReachedEvent) Type() EventType { return EventGoalReached }

// EventListener receives flushed events.
type EventListener func(event Event)

// EventBus buffers events during a step and delivers them on Flush.
// It is not safe for concurrent use; each game owns its own bus.
type EventBus struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 8),
	}
}

// Subscribe adds a listener for an event type.
func (b *EventBus) Subscribe(eventType EventType, listener EventListener) {
	b.listeners[eventType] = append(b.listeners[eventType], listener)
}

// Emit queues an event. A nil bus drops it.
func (b *EventBus) Emit(event Event) {
	if b == nil {
		return
	}
	b.buffer = append(b.buffer, event)
}

// Pending returns the number of queued events.
func (b *EventBus) Pending() int {
	return len(b.buffer)
}

// Flush delivers queued events in emission order and empties the queue.
func (b *EventBus) Flush() {
	for _, event := range b.buffer {
		for _, listener := range b.listeners[event.Type()] {
			listener(event)
		}
	}
	b.buffer = b.buffer[:0]
}
