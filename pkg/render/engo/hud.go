// pkg/render/engo/hud.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/ui"
)

const (
	hudBorderWidth = 2
	hudPadding     = 8
	statusHeight   = 24
)

type hudButton struct {
	button *ui.Button
	box    *sprite
	label  *sprite
}

// HUDSystem draws the focus buttons and the status line in window space
type HUDSystem struct {
	panel   *ui.Panel
	camera  *CameraSystem
	sprites SpriteSystem
	font    *common.Font

	buttons []hudButton
	status  *sprite
	text    string

	statusText func() string
}

// NewHUDSystem creates the HUD for panel. statusText is called every frame;
// without a font only the button boxes are drawn.
func NewHUDSystem(panel *ui.Panel, cam *CameraSystem, sprites SpriteSystem, font *common.Font, statusText func() string) *HUDSystem {
	hud := &HUDSystem{
		panel:      panel,
		camera:     cam,
		sprites:    sprites,
		font:       font,
		statusText: statusText,
	}
	for _, b := range panel.Buttons() {
		hb := hudButton{button: b, box: hud.newHUDSprite(common.Rectangle{BorderWidth: hudBorderWidth})}
		hb.box.Position = engo.Point{X: b.Bounds.X, Y: b.Bounds.Y}
		hb.box.Width, hb.box.Height = b.Bounds.Width, b.Bounds.Height
		hb.box.Scale = engo.Point{X: 1, Y: 1}
		if font != nil {
			hb.label = hud.newHUDSprite(common.Text{Font: font, Text: b.Label})
			hb.label.Position = engo.Point{X: b.Bounds.X + hudPadding, Y: b.Bounds.Y + hudPadding}
			hb.label.Scale = engo.Point{X: 1, Y: 1}
		}
		hud.buttons = append(hud.buttons, hb)
	}
	if font != nil {
		hud.status = hud.newHUDSprite(common.Text{Font: font})
		hud.status.Scale = engo.Point{X: 1, Y: 1}
	}
	hud.refresh()
	return hud
}

func (hud *HUDSystem) newHUDSprite(drawable common.Drawable) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{Drawable: drawable}
	s.RenderComponent.SetShader(common.HUDShader)
	s.RenderComponent.SetZIndex(zHUD)
	hud.sprites.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update recolours the buttons for their interaction state and refreshes
// the status line
func (hud *HUDSystem) Update(dt float32) {
	hud.refresh()
}

func (hud *HUDSystem) refresh() {
	for _, hb := range hud.buttons {
		st := hb.button.Style()
		hb.box.Color = st.Fill
		hb.box.Drawable = common.Rectangle{BorderWidth: hudBorderWidth, BorderColor: st.Border}
		if hb.label != nil {
			hb.label.Color = st.Label
		}
	}

	if hud.statusText == nil {
		return
	}
	hud.text = hud.statusText()
	if hud.status != nil {
		_, h := hud.camera.Viewport()
		hud.status.Drawable = common.Text{Font: hud.font, Text: hud.text}
		hud.status.Color = ui.ColorLabel
		hud.status.Position = engo.Point{X: hudPadding, Y: h - statusHeight}
	}
}

// Status returns the status line drawn in the last frame
func (hud *HUDSystem) Status() string {
	return hud.text
}
