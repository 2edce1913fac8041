// pkg/ui/panel.go
package ui

import (
	"github.com/opd-ai/go-orrery/pkg/camera"
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/input"
)

// Layout places buttons in a single column
type Layout struct {
	X, Y          float32
	Width, Height float32
	Gap           float32
}

// DefaultLayout is a pixel layout along the left edge of the window
var DefaultLayout = Layout{X: 10, Y: 10, Width: 120, Height: 32, Gap: 8}

// Panel is the column of focus buttons
type Panel struct {
	buttons []*Button
	wasDown bool
}

// NewPanel creates one button per target, laid out top to bottom
func NewPanel(targets []string, layout Layout) *Panel {
	p := &Panel{}
	for i, target := range targets {
		y := layout.Y + float32(i)*(layout.Height+layout.Gap)
		p.buttons = append(p.buttons, &Button{
			Label:  target,
			Target: target,
			Bounds: Rect{X: layout.X, Y: y, Width: layout.Width, Height: layout.Height},
		})
	}
	return p
}

// NewFocusPanel creates the configured focus buttons followed by Global
func NewFocusPanel(cfg *config.Config, layout Layout) *Panel {
	return NewPanel(append(cfg.ButtonTargets(), camera.Global), layout)
}

// Buttons returns the buttons in layout order
func (p *Panel) Buttons() []*Button {
	return p.buttons
}

// Button returns the button for target, or nil
func (p *Panel) Button(target string) *Button {
	for _, b := range p.buttons {
		if b.Target == target {
			return b
		}
	}
	return nil
}

// HitTest returns the button under the point, or nil
func (p *Panel) HitTest(x, y float32) *Button {
	for _, b := range p.buttons {
		if b.Bounds.Contains(x, y) {
			return b
		}
	}
	return nil
}

// Pointer feeds the pointer position and primary button state into the
// panel and returns one ButtonInteraction event per button whose state
// changed. A button only becomes Pressed when the press starts over it.
func (p *Panel) Pointer(x, y float32, down bool) []input.Event {
	pressEdge := down && !p.wasDown
	p.wasDown = down

	var events []input.Event
	for _, b := range p.buttons {
		held := down && !pressEdge && b.State != input.InteractionPressed
		if !b.update(x, y, down && !held) {
			continue
		}
		events = append(events, input.ButtonChange(b.Target, b.State))
	}
	return events
}
