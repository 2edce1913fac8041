// Package input defines the per-frame input events consumed by the
// simulation. Frontends translate their native events into a Frame.
package input

import "fmt"

// Kind identifies the type of an input event
type Kind int

const (
	KeyPressed Kind = iota
	MouseButtonPressed
	Wheel
	ButtonInteraction
)

func (k Kind) String() string {
	switch k {
	case KeyPressed:
		return "key_pressed"
	case MouseButtonPressed:
		return "mouse_button_pressed"
	case Wheel:
		return "wheel"
	case ButtonInteraction:
		return "button_interaction"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Key is a logical key of the orrery controls
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeyZoomIn
	KeyZoomOut
	KeyQuit
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyFire:    "fire",
	KeyZoomIn:  "zoom_in",
	KeyZoomOut: "zoom_out",
	KeyQuit:    "quit",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// KeyFromRune maps a typed character to a logical key
func KeyFromRune(r rune) Key {
	switch r {
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case ' ':
		return KeyFire
	case '+', '=':
		return KeyZoomIn
	case '-', '_':
		return KeyZoomOut
	case 'q', 'Q':
		return KeyQuit
	}
	return KeyUnknown
}

// MouseButton identifies a mouse button
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// WheelUnit is the unit a wheel delta is reported in
type WheelUnit int

const (
	WheelLine WheelUnit = iota
	WheelPixel
)

func (u WheelUnit) String() string {
	if u == WheelPixel {
		return "pixel"
	}
	return "line"
}

// Interaction is the state of a UI button
type Interaction int

const (
	InteractionNone Interaction = iota
	InteractionHovered
	InteractionPressed
)

func (i Interaction) String() string {
	switch i {
	case InteractionHovered:
		return "hovered"
	case InteractionPressed:
		return "pressed"
	}
	return "none"
}

// Event is one discrete input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind        Kind
	Key         Key
	Button      MouseButton
	Unit        WheelUnit
	Delta       float32
	Target      string
	Interaction Interaction
}

// Frame is the finite sequence of events delivered in one frame, in order
type Frame []Event

// KeyPress returns a key pressed event
func KeyPress(k Key) Event {
	return Event{Kind: KeyPressed, Key: k}
}

// MousePress returns a mouse button pressed event
func MousePress(b MouseButton) Event {
	return Event{Kind: MouseButtonPressed, Button: b}
}

// WheelScroll returns a wheel event
func WheelScroll(unit WheelUnit, delta float32) Event {
	return Event{Kind: Wheel, Unit: unit, Delta: delta}
}

// ButtonChange returns a UI button interaction event for target
func ButtonChange(target string, state Interaction) Event {
	return Event{Kind: ButtonInteraction, Target: target, Interaction: state}
}

// Queue collects events between frames. It is not safe for concurrent use.
type Queue struct {
	events Frame
}

// Push appends an event to the pending frame
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns the pending events and starts a new frame
func (q *Queue) Drain() Frame {
	frame := q.events
	q.events = nil
	return frame
}
