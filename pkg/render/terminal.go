package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/orbit"
	"github.com/opd-ai/go-orrery/pkg/ui"
)

// Glyphs used by the terminal renderer
const (
	GlyphStar       = '*'
	GlyphRing       = '·'
	GlyphProjectile = '.'
)

// TerminalRenderer draws a top-down (x, z) view of the scene on a tcell
// screen. Entities are collected between Clear and Present and composed in
// layers: orbit rings, bodies, the airplane, projectiles, then the HUD.
type TerminalRenderer struct {
	screen tcell.Screen
	scale  float32 // world units per cell at zoom 1

	center mgl32.Vec3
	zoom   float32

	background tcell.Style
	ringStyle  tcell.Style

	bodies      []*entity.Body
	positions   map[string]mgl32.Vec3
	airplane    *entity.Airplane
	projectiles []*entity.Projectile

	panel  *ui.Panel
	status []string
}

// NewTerminalRenderer creates a terminal renderer on screen
func NewTerminalRenderer(screen tcell.Screen, scale float32) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &TerminalRenderer{
		screen:     screen,
		scale:      scale,
		zoom:       1,
		background: tcell.StyleDefault.Background(tcell.ColorBlack),
		ringStyle:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDimGray),
		positions:  make(map[string]mgl32.Vec3),
	}
}

// SetView sets the world point drawn at the centre of the screen and the zoom
func (r *TerminalRenderer) SetView(center mgl32.Vec3, zoom float32) {
	r.center = center
	if zoom > 0 {
		r.zoom = zoom
	}
}

// SetBackground sets the background colour, e.g. "#000000"
func (r *TerminalRenderer) SetBackground(hex string) {
	bg := tcell.GetColor(hex)
	r.background = tcell.StyleDefault.Background(bg)
	r.ringStyle = r.background.Foreground(tcell.ColorDimGray)
}

// SetPanel sets the focus buttons drawn over the scene
func (r *TerminalRenderer) SetPanel(p *ui.Panel) {
	r.panel = p
}

// SetStatus sets the HUD lines drawn at the bottom of the screen
func (r *TerminalRenderer) SetStatus(lines ...string) {
	r.status = lines
}

// worldToScreen converts world coordinates to screen cells. Cells are about
// twice as tall as wide, so x is stretched.
func (r *TerminalRenderer) worldToScreen(pos mgl32.Vec3) (int, int) {
	w, h := r.screen.Size()
	k := r.zoom / r.scale
	x := (pos.X()-r.center.X())*k*2 + float32(w)/2
	y := (pos.Z()-r.center.Z())*k + float32(h)/2
	return floor(x), floor(y)
}

func floor(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func (r *TerminalRenderer) inBounds(x, y int) bool {
	w, h := r.screen.Size()
	return x >= 0 && x < w && y >= 0 && y < h
}

func (r *TerminalRenderer) put(x, y int, ch rune, style tcell.Style) {
	if r.inBounds(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.put(x, y, ch, style)
		x++
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.bodies = r.bodies[:0]
	r.projectiles = r.projectiles[:0]
	r.airplane = nil
	clear(r.positions)
}

// RenderBody implements entity.Renderer
func (r *TerminalRenderer) RenderBody(body *entity.Body) {
	r.bodies = append(r.bodies, body)
	r.positions[body.Name()] = body.Position()
}

// RenderAirplane implements entity.Renderer
func (r *TerminalRenderer) RenderAirplane(airplane *entity.Airplane) {
	r.airplane = airplane
}

// RenderProjectile implements entity.Renderer
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	r.projectiles = append(r.projectiles, projectile)
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.SetStyle(r.background)
	r.screen.Clear()

	for _, b := range r.bodies {
		r.drawRing(b)
	}
	for _, b := range r.bodies {
		x, y := r.worldToScreen(b.Position())
		r.put(x, y, bodyGlyph(b), r.background.Foreground(tcell.GetColor(b.Color())).Bold(true))
	}
	if r.airplane != nil {
		x, y := r.worldToScreen(r.airplane.Transform.Translation)
		r.put(x, y, headingGlyph(r.airplane.Heading.Direction()), r.background.Foreground(tcell.ColorWhite).Bold(true))
	}
	for _, p := range r.projectiles {
		x, y := r.worldToScreen(p.Transform.Translation)
		r.put(x, y, GlyphProjectile, r.background.Foreground(tcell.ColorOrangeRed))
	}

	r.drawPanel()
	r.drawStatus()
	r.screen.Show()
}

// drawRing traces the body's orbit around its parent, or the origin
func (r *TerminalRenderer) drawRing(b *entity.Body) {
	if b.Distance() == 0 {
		return
	}
	center := mgl32.Vec3{}
	if b.HasParent() {
		parent, ok := r.positions[b.Parent()]
		if !ok {
			return
		}
		center = parent
	}
	for _, p := range orbit.Ring(center, b.Distance(), orbit.RingSegments) {
		x, y := r.worldToScreen(p)
		r.put(x, y, GlyphRing, r.ringStyle)
	}
}

func (r *TerminalRenderer) drawPanel() {
	if r.panel == nil {
		return
	}
	for _, b := range r.panel.Buttons() {
		st := b.Style()
		style := tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(st.Fill.R), int32(st.Fill.G), int32(st.Fill.B))).
			Foreground(tcell.NewRGBColor(int32(st.Border.R), int32(st.Border.G), int32(st.Border.B)))
		label := tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(st.Fill.R), int32(st.Fill.G), int32(st.Fill.B))).
			Foreground(tcell.NewRGBColor(int32(st.Label.R), int32(st.Label.G), int32(st.Label.B)))

		x, y, width := int(b.Bounds.X), int(b.Bounds.Y), int(b.Bounds.Width)
		r.put(x, y, '[', style)
		for i := 1; i < width-1; i++ {
			r.put(x+i, y, ' ', label)
		}
		r.drawText(x+1, y, fitLabel(b.Label, width-2), label)
		r.put(x+width-1, y, ']', style)
	}
}

func (r *TerminalRenderer) drawStatus() {
	_, h := r.screen.Size()
	style := r.background.Foreground(tcell.ColorSilver)
	for i, line := range r.status {
		r.drawText(0, h-len(r.status)+i, line, style)
	}
}

func fitLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s
}

// bodyGlyph is a star for central bodies and the initial otherwise
func bodyGlyph(b *entity.Body) rune {
	if b.Distance() == 0 && !b.HasParent() {
		return GlyphStar
	}
	for _, ch := range b.Name() {
		return ch
	}
	return 'o'
}

// headingGlyph points along the dominant screen axis of dir
func headingGlyph(dir mgl32.Vec3) rune {
	dx, dz := dir.X(), dir.Z()
	if abs32(dx) >= abs32(dz) {
		if dx >= 0 {
			return '>'
		}
		return '<'
	}
	if dz < 0 {
		return '^'
	}
	return 'v'
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// StatusLine formats the standard HUD line
func StatusLine(focus string, zoom float32, simDays float64, projectiles int) string {
	return fmt.Sprintf("focus %s | zoom %.3f | day %.1f | shots %d | arrows/wasd turn, space fire, +/- zoom, q quit",
		focus, zoom, simDays, projectiles)
}
