package input

import (
	"github.com/gdamore/tcell/v2"
)

// FromTcellKey translates a terminal key event. Escape and Ctrl-C map to KeyQuit.
func FromTcellKey(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyPress(KeyLeft)
	case tcell.KeyRight:
		return KeyPress(KeyRight)
	case tcell.KeyUp:
		return KeyPress(KeyUp)
	case tcell.KeyDown:
		return KeyPress(KeyDown)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyPress(KeyQuit)
	case tcell.KeyRune:
		return KeyPress(KeyFromRune(ev.Rune()))
	}
	return KeyPress(KeyUnknown)
}

// MouseTracker turns terminal mouse reports, which carry the held button
// mask, into edge-triggered press events.
type MouseTracker struct {
	held tcell.ButtonMask
}

// Translate returns the events for one mouse report. Terminal wheels scroll
// by lines.
func (m *MouseTracker) Translate(ev *tcell.EventMouse) []Event {
	buttons := ev.Buttons()
	pressed := buttons &^ m.held
	m.held = buttons & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	var events []Event
	if pressed&tcell.ButtonPrimary != 0 {
		events = append(events, MousePress(MouseLeft))
	}
	if pressed&tcell.ButtonSecondary != 0 {
		events = append(events, MousePress(MouseRight))
	}
	if pressed&tcell.ButtonMiddle != 0 {
		events = append(events, MousePress(MouseMiddle))
	}
	if buttons&tcell.WheelUp != 0 {
		events = append(events, WheelScroll(WheelLine, 1))
	}
	if buttons&tcell.WheelDown != 0 {
		events = append(events, WheelScroll(WheelLine, -1))
	}
	return events
}
