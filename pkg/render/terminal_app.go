package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/input"
	"github.com/opd-ai/go-orrery/pkg/orbit"
	"github.com/opd-ai/go-orrery/pkg/ui"
)

// TerminalScale is the number of world units per cell at zoom 1
const TerminalScale = 20

// TerminalLayout places the focus buttons in the top-left corner, one per row
var TerminalLayout = ui.Layout{X: 1, Y: 1, Width: 10, Height: 1, Gap: 0}

// TerminalApp runs the simulation on a tcell screen. Terminal events are
// queued as they arrive and consumed by the next step.
type TerminalApp struct {
	screen    tcell.Screen
	sim       *engine.Simulation
	renderer  *TerminalRenderer
	panel     *ui.Panel
	mouse     input.MouseTracker
	queue     input.Queue
	fps       int
	maxFrames uint64
}

// NewTerminalApp creates a terminal frontend for sim. The screen must
// already be initialised.
func NewTerminalApp(screen tcell.Screen, sim *engine.Simulation) *TerminalApp {
	r := NewTerminalRenderer(screen, TerminalScale)
	r.SetBackground(sim.Config.Window.Background)
	panel := ui.NewFocusPanel(sim.Config, TerminalLayout)
	r.SetPanel(panel)

	fps := sim.Config.Window.FPS
	if fps <= 0 {
		fps = 30
	}
	screen.EnableMouse()

	return &TerminalApp{
		screen:   screen,
		sim:      sim,
		renderer: r,
		panel:    panel,
		fps:      fps,
	}
}

// SetMaxFrames makes Run return after n steps; 0 runs until quit
func (a *TerminalApp) SetMaxFrames(n uint64) {
	a.maxFrames = n
}

// Panel returns the focus buttons
func (a *TerminalApp) Panel() *ui.Panel {
	return a.panel
}

// HandleEvent translates a terminal event into queued input events
func (a *TerminalApp) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.queue.Push(input.FromTcellKey(ev))
	case *tcell.EventMouse:
		x, y := ev.Position()
		down := ev.Buttons()&tcell.ButtonPrimary != 0
		for _, e := range a.panel.Pointer(float32(x), float32(y), down) {
			a.queue.Push(e)
		}
		for _, e := range a.mouse.Translate(ev) {
			a.queue.Push(e)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// Tick steps the simulation by dt with the queued events and redraws. It
// returns false once quit was requested.
func (a *TerminalApp) Tick(dt float64) bool {
	return a.present(a.sim.Step(a.queue.Drain(), dt))
}

func (a *TerminalApp) present(result engine.StepResult) bool {
	cam := a.sim.Camera
	a.renderer.SetView(cam.TargetFocus, cam.Zoom)
	a.renderer.SetStatus(StatusLine(a.sim.Focus.Target(), cam.Zoom, a.sim.SimSeconds()/orbit.OneDaySeconds, len(a.sim.Projectiles)))
	a.sim.Render(a.renderer)
	return !result.Quit
}

// Run drives the simulation from a ticker until quit, ctx is done, or the
// frame limit is reached.
func (a *TerminalApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.sim.Start()
	defer a.sim.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			a.HandleEvent(ev)
		case <-ticker.C:
			if !a.present(a.sim.Update(a.queue.Drain())) {
				return nil
			}
			if a.maxFrames > 0 && a.sim.Frames() >= a.maxFrames {
				return nil
			}
		}
	}
}
