// pkg/ui/button.go
package ui

import (
	"image/color"

	"github.com/opd-ai/go-orrery/pkg/input"
)

// Button colours
var (
	ColorPressedBorder = color.RGBA{255, 0, 0, 255}
	ColorHoveredFill   = color.RGBA{64, 64, 64, 255}
	ColorHoveredBorder = color.RGBA{255, 255, 255, 255}
	ColorNoneFill      = color.RGBA{0, 0, 0, 255}
	ColorNoneBorder    = color.RGBA{128, 128, 128, 255}
	ColorLabel         = color.RGBA{230, 230, 230, 255}
)

// Rect is an axis-aligned rectangle in screen units (pixels or cells)
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Style is the look of a button in one interaction state
type Style struct {
	Fill   color.RGBA
	Border color.RGBA
	Label  color.RGBA
}

// StyleFor returns the feedback style for state. A pressed button keeps the
// fill it had while hovered.
func StyleFor(state input.Interaction) Style {
	switch state {
	case input.InteractionPressed:
		return Style{Fill: ColorHoveredFill, Border: ColorPressedBorder, Label: ColorLabel}
	case input.InteractionHovered:
		return Style{Fill: ColorHoveredFill, Border: ColorHoveredBorder, Label: ColorLabel}
	default:
		return Style{Fill: ColorNoneFill, Border: ColorNoneBorder, Label: ColorLabel}
	}
}

// Button switches the camera focus to Target when pressed
type Button struct {
	Label  string
	Target string
	Bounds Rect
	State  input.Interaction
}

// Style returns the button's current style
func (b *Button) Style() Style {
	return StyleFor(b.State)
}

// update moves the button to the state implied by the pointer and reports
// whether it changed.
func (b *Button) update(x, y float32, down bool) bool {
	next := input.InteractionNone
	if b.Bounds.Contains(x, y) {
		next = input.InteractionHovered
		if down {
			next = input.InteractionPressed
		}
	}
	if next == b.State {
		return false
	}
	b.State = next
	return true
}
