package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen Init failed: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func newTestApp(t *testing.T, mutate func(*config.Config)) (*TerminalApp, tcell.SimulationScreen, *engine.Simulation) {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	sim, err := engine.NewSimulation(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	screen := newTestScreen(t)
	return NewTerminalApp(screen, sim), screen, sim
}

func cell(s tcell.Screen, x, y int) (rune, tcell.Style) {
	ch, _, style, _ := s.GetContent(x, y)
	return ch, style
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _ := cell(s, x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestTerminalRenderer_WorldToScreen(t *testing.T) {
	r := NewTerminalRenderer(newTestScreen(t), 10)

	tests := []struct {
		name   string
		center mgl32.Vec3
		zoom   float32
		pos    mgl32.Vec3
		wantX  int
		wantY  int
	}{
		{"origin at centre", mgl32.Vec3{}, 1, mgl32.Vec3{}, 40, 12},
		{"x is stretched", mgl32.Vec3{}, 1, mgl32.Vec3{50, 0, 0}, 50, 12},
		{"z maps to rows", mgl32.Vec3{}, 1, mgl32.Vec3{0, 0, -40}, 40, 8},
		{"height ignored", mgl32.Vec3{}, 1, mgl32.Vec3{0, 99, 0}, 40, 12},
		{"zoom", mgl32.Vec3{}, 2, mgl32.Vec3{10, 0, 10}, 44, 14},
		{"recentred", mgl32.Vec3{100, 0, 0}, 1, mgl32.Vec3{100, 0, 0}, 40, 12},
		{"negative rounds down", mgl32.Vec3{}, 1, mgl32.Vec3{-201, 0, 0}, -1, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.SetView(tt.center, tt.zoom)
			x, y := r.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		dir  mgl32.Vec3
		want rune
	}{
		{mgl32.Vec3{1, 0, 0}, '>'},
		{mgl32.Vec3{-1, 0, 0}, '<'},
		{mgl32.Vec3{0, 0, -1}, '^'},
		{mgl32.Vec3{0.1, 0, 0.9}, 'v'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.dir); got != tt.want {
			t.Errorf("headingGlyph(%v) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestTerminalApp_DrawsScene(t *testing.T) {
	app, screen, _ := newTestApp(t, nil)
	app.Tick(0)

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"sun at centre", 40, 12, GlyphStar},
		{"earth", 77, 12, 'E'},
		{"moon beside earth", 78, 12, 'M'},
		{"airplane", 79, 12, '>'},
		{"button bracket", 1, 1, '['},
		{"button label", 2, 1, 'E'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := cell(screen, tt.x, tt.y); got != tt.want {
				t.Errorf("cell(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if status := row(screen, 23); !strings.HasPrefix(status, "focus Global") {
		t.Errorf("status line = %q", status)
	}
	rings := 0
	for y := 0; y < 23; y++ {
		rings += strings.Count(row(screen, y), string(GlyphRing))
	}
	if rings == 0 {
		t.Error("no orbit rings drawn")
	}
}

func TestTerminalApp_ButtonClickFocuses(t *testing.T) {
	app, screen, sim := newTestApp(t, nil)
	earth := app.Panel().Button("Earth").Bounds

	app.HandleEvent(tcell.NewEventMouse(int(earth.X)+2, int(earth.Y), tcell.ButtonPrimary, tcell.ModNone))
	app.Tick(0)

	if sim.Focus.Target() != "Earth" {
		t.Fatalf("focus = %q, want Earth", sim.Focus.Target())
	}
	if got, _ := cell(screen, 40, 12); got != 'E' {
		t.Errorf("centre cell = %q, want Earth", got)
	}
	_, style := cell(screen, int(earth.X), int(earth.Y))
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("pressed button border = %v, want red", fg)
	}

	app.HandleEvent(tcell.NewEventMouse(int(earth.X)+2, int(earth.Y), tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(60, 20, tcell.ButtonSecondary, tcell.ModNone))
	app.Tick(0)
	if !sim.Focus.IsGlobal() {
		t.Errorf("right click left focus at %q", sim.Focus.Target())
	}
}

func TestTerminalApp_KeysReachSimulation(t *testing.T) {
	app, _, sim := newTestApp(t, nil)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	app.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if !app.Tick(0) {
		t.Fatal("Tick reported quit")
	}
	if len(sim.Projectiles) != 1 {
		t.Errorf("projectiles = %d, want 1", len(sim.Projectiles))
	}
	if sim.Airplane.Heading.Yaw == 0 {
		t.Error("left arrow did not turn the airplane")
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if app.Tick(0) {
		t.Error("escape did not quit")
	}
}

func TestTerminalApp_RunStopsAtFrameLimit(t *testing.T) {
	app, _, sim := newTestApp(t, func(c *config.Config) { c.Window.FPS = 200 })
	app.SetMaxFrames(3)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sim.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", sim.Frames())
	}
	if sim.Running {
		t.Error("simulation still running after Run")
	}
}

func TestTerminalApp_RunQuitsOnKey(t *testing.T) {
	app, screen, _ := newTestApp(t, func(c *config.Config) { c.Window.FPS = 200 })
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if time.Since(start) >= 5*time.Second {
		t.Error("Run only returned on context timeout")
	}
}
