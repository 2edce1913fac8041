// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	FocusChanged      Type = "focus_changed"
	HeadingChanged    Type = "heading_changed"
	ProjectileFired   Type = "projectile_fired"
	ProjectileExpired Type = "projectile_expired"
	WheelIgnored      Type = "wheel_ignored"
	FrameCompleted    Type = "frame_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers.
// Handlers run synchronously on the publishing goroutine.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// FocusEvent reports a camera focus transition.
type FocusEvent struct {
	BaseEvent
	From  string
	To    string
	Cause string
}

// NewFocusEvent creates a new focus event
func NewFocusEvent(source interface{}, from, to, cause string) *FocusEvent {
	return &FocusEvent{
		BaseEvent: BaseEvent{EventType: FocusChanged, Source: source},
		From:      from,
		To:        to,
		Cause:     cause,
	}
}

// ProjectileEvent reports a projectile spawn or expiry.
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	Distance     float32
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID uint64, distance float32) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent:    BaseEvent{EventType: eventType, Source: source},
		ProjectileID: projectileID,
		Distance:     distance,
	}
}

// HeadingEvent reports an airplane heading change.
type HeadingEvent struct {
	BaseEvent
	Yaw   float32
	Pitch float32
}

// NewHeadingEvent creates a new heading event
func NewHeadingEvent(source interface{}, yaw, pitch float32) *HeadingEvent {
	return &HeadingEvent{
		BaseEvent: BaseEvent{EventType: HeadingChanged, Source: source},
		Yaw:       yaw,
		Pitch:     pitch,
	}
}

// FrameEvent is published once per completed simulation step.
type FrameEvent struct {
	BaseEvent
	Frame        uint64
	DeltaSeconds float64
	Projectiles  int
	CameraMoved  bool
}

// NewFrameEvent creates a new frame event
func NewFrameEvent(source interface{}, frame uint64, dt float64, projectiles int, cameraMoved bool) *FrameEvent {
	return &FrameEvent{
		BaseEvent:    BaseEvent{EventType: FrameCompleted, Source: source},
		Frame:        frame,
		DeltaSeconds: dt,
		Projectiles:  projectiles,
		CameraMoved:  cameraMoved,
	}
}
