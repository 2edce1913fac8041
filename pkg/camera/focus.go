// Package camera holds the camera focus state machine and the controller
// that moves the camera to follow the focused body.
package camera

import (
	"github.com/opd-ai/go-orrery/pkg/input"
)

// Global is the focus of the free, untracked camera
const Global = "Global"

// Cause names what triggered a focus transition
type Cause string

const (
	CauseButton       Cause = "button"
	CauseRightMouse   Cause = "right_mouse"
	CauseWheelPixel   Cause = "wheel_pixel"
	CauseWheelLine    Cause = "wheel_line"
	CauseProgrammatic Cause = "programmatic"
)

// Transition describes a focus change
type Transition struct {
	From  string
	To    string
	Cause Cause
}

// Focus is the name of the tracked body, or Global. The zero value is Global.
type Focus struct {
	target string
}

// NewFocus returns a focus in the Global state
func NewFocus() *Focus {
	return &Focus{target: Global}
}

// Target returns the focused name
func (f *Focus) Target() string {
	if f.target == "" {
		return Global
	}
	return f.target
}

// IsGlobal reports whether the camera is free
func (f *Focus) IsGlobal() bool {
	return f.Target() == Global
}

// Set moves the focus to target and reports whether the state changed.
// An empty target means Global.
func (f *Focus) Set(target string, cause Cause) (Transition, bool) {
	if target == "" {
		target = Global
	}
	from := f.Target()
	f.target = target
	return Transition{From: from, To: target, Cause: cause}, from != target
}

// Handle applies one input event. It returns the transition and whether the
// state changed. Events that do not affect the focus return false.
//
// A line-unit wheel event only resets the focus when uniformWheel is set;
// otherwise just pixel-unit wheel events do.
func (f *Focus) Handle(e input.Event, uniformWheel bool) (Transition, bool) {
	switch e.Kind {
	case input.ButtonInteraction:
		if e.Interaction == input.InteractionPressed {
			return f.Set(e.Target, CauseButton)
		}
	case input.MouseButtonPressed:
		if e.Button == input.MouseRight {
			return f.Set(Global, CauseRightMouse)
		}
	case input.Wheel:
		if e.Unit == input.WheelPixel {
			return f.Set(Global, CauseWheelPixel)
		}
		if uniformWheel {
			return f.Set(Global, CauseWheelLine)
		}
	}
	return Transition{From: f.Target(), To: f.Target()}, false
}
