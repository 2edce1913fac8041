// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orrery/pkg/input"
	"github.com/opd-ai/go-orrery/pkg/ui"
)

// keyBindings maps Engo button names to the orrery keys
var keyBindings = []struct {
	name string
	key  input.Key
	keys []engo.Key
}{
	{"left", input.KeyLeft, []engo.Key{engo.KeyArrowLeft, engo.KeyA}},
	{"right", input.KeyRight, []engo.Key{engo.KeyArrowRight, engo.KeyD}},
	{"up", input.KeyUp, []engo.Key{engo.KeyArrowUp, engo.KeyW}},
	{"down", input.KeyDown, []engo.Key{engo.KeyArrowDown, engo.KeyS}},
	{"fire", input.KeyFire, []engo.Key{engo.KeySpace}},
	{"zoomIn", input.KeyZoomIn, []engo.Key{engo.KeyEquals}},
	{"zoomOut", input.KeyZoomOut, []engo.Key{engo.KeyDash}},
	{"quit", input.KeyQuit, []engo.Key{engo.KeyEscape, engo.KeyQ}},
}

// SetupInputBindings registers the key bindings with Engo
func SetupInputBindings() {
	for _, b := range keyBindings {
		engo.Input.RegisterButton(b.name, b.keys...)
	}
}

// pointer is the mouse state sampled once per frame
type pointer struct {
	X, Y                float32
	Left, Right, Middle bool
	ScrollY             float32
}

// InputSystem samples Engo's keyboard and mouse once per frame and queues
// the resulting orrery input events.
type InputSystem struct {
	queue *input.Queue
	panel *ui.Panel

	held pointer
	poll func() ([]input.Key, pointer)
}

// NewInputSystem creates an input system feeding queue. Pointer events go
// through panel first, so button interactions precede mouse presses.
func NewInputSystem(queue *input.Queue, panel *ui.Panel) *InputSystem {
	is := &InputSystem{
		queue: queue,
		panel: panel,
	}
	is.poll = is.pollEngo
	return is
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update queues the input of this frame
func (is *InputSystem) Update(dt float32) {
	keys, p := is.poll()
	is.translate(keys, p)
}

// translate queues key presses, button interactions, mouse press edges and
// wheel scrolls, in that order.
func (is *InputSystem) translate(keys []input.Key, p pointer) {
	for _, k := range keys {
		is.queue.Push(input.KeyPress(k))
	}
	if is.panel != nil {
		for _, e := range is.panel.Pointer(p.X, p.Y, p.Left) {
			is.queue.Push(e)
		}
	}
	if p.Left && !is.held.Left {
		is.queue.Push(input.MousePress(input.MouseLeft))
	}
	if p.Right && !is.held.Right {
		is.queue.Push(input.MousePress(input.MouseRight))
	}
	if p.Middle && !is.held.Middle {
		is.queue.Push(input.MousePress(input.MouseMiddle))
	}
	// GLFW reports wheel offsets in lines
	if p.ScrollY != 0 {
		is.queue.Push(input.WheelScroll(input.WheelLine, p.ScrollY))
	}
	is.held = p
}

// pollEngo reads Engo's global input state. Mouse actions are edge reports,
// so the held buttons are tracked here.
func (is *InputSystem) pollEngo() ([]input.Key, pointer) {
	var keys []input.Key
	for _, b := range keyBindings {
		if engo.Input.Button(b.name).JustPressed() {
			keys = append(keys, b.key)
		}
	}

	m := engo.Input.Mouse
	p := is.held
	p.X, p.Y = m.X, m.Y
	p.ScrollY = m.ScrollY
	if m.Action == engo.Press || m.Action == engo.Release {
		down := m.Action == engo.Press
		switch m.Button {
		case engo.MouseButtonLeft:
			p.Left = down
		case engo.MouseButtonRight:
			p.Right = down
		case engo.MouseButtonMiddle:
			p.Middle = down
		}
	}
	return keys, p
}
