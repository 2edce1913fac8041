// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-orrery/pkg/entity"
)

// Draw order of the scene layers
const (
	zRing float32 = iota
	zBody
	zAirplane
	zProjectile
	zHUD = 10
)

var (
	ringColor       = color.RGBA{90, 90, 90, 255}
	airplaneColor   = color.RGBA{255, 255, 255, 255}
	projectileColor = color.RGBA{255, 69, 0, 255}
)

// SpriteSystem is the part of common.RenderSystem the renderer drives
type SpriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// Scene is anything that can draw itself through an entity.Renderer
type Scene interface {
	Render(r entity.Renderer)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// EngoRenderer implements entity.Renderer by keeping one Engo sprite per
// entity. Sprites of entities not drawn in a frame are removed on Present.
type EngoRenderer struct {
	scene   Scene
	sprites SpriteSystem
	camera  *CameraSystem
	assets  *AssetManager

	bodies      map[string]*sprite
	rings       map[string]*sprite
	positions   map[string]mgl32.Vec3
	airplane    *sprite
	projectiles map[entity.ID]*sprite
}

// NewEngoRenderer creates a renderer drawing scene into sprites
func NewEngoRenderer(scene Scene, sprites SpriteSystem, cam *CameraSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		scene:       scene,
		sprites:     sprites,
		camera:      cam,
		assets:      assets,
		bodies:      make(map[string]*sprite),
		rings:       make(map[string]*sprite),
		positions:   make(map[string]mgl32.Vec3),
		projectiles: make(map[entity.ID]*sprite),
	}
}

// Remove satisfies the ecs.System interface
func (r *EngoRenderer) Remove(basic ecs.BasicEntity) {}

// Update draws the scene for this frame
func (r *EngoRenderer) Update(dt float32) {
	if r.scene != nil {
		r.scene.Render(r)
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.bodies {
		s.seen = false
	}
	for _, s := range r.rings {
		s.seen = false
	}
	for _, s := range r.projectiles {
		s.seen = false
	}
	if r.airplane != nil {
		r.airplane.seen = false
	}
	clear(r.positions)
}

// RenderBody implements entity.Renderer
func (r *EngoRenderer) RenderBody(body *entity.Body) {
	r.positions[body.Name()] = body.Position()
	r.renderRing(body)

	s, exists := r.bodies[body.Name()]
	if !exists {
		s = r.newSprite(r.assets.Sprite(body.Model()), hexColor(body.Color(), color.White), zBody)
		r.bodies[body.Name()] = s
	}
	d := spriteDiameter(body.Radius())
	r.place(s, body.Position(), d, 0)
	s.seen = true
}

// renderRing traces the body's orbit around its parent, or the origin
func (r *EngoRenderer) renderRing(body *entity.Body) {
	if body.Distance() == 0 {
		return
	}
	center := mgl32.Vec3{}
	if body.HasParent() {
		parent, ok := r.positions[body.Parent()]
		if !ok {
			return
		}
		center = parent
	}

	s, exists := r.rings[body.Name()]
	if !exists {
		s = r.newSprite(common.Circle{BorderWidth: 1, BorderColor: ringColor}, color.Transparent, zRing)
		r.rings[body.Name()] = s
	}
	r.place(s, center, 2*body.Distance()*r.camera.PixelsPerUnit(), 0)
	s.seen = true
}

// RenderAirplane implements entity.Renderer
func (r *EngoRenderer) RenderAirplane(airplane *entity.Airplane) {
	if r.airplane == nil {
		r.airplane = r.newSprite(r.assets.Sprite(AirplaneSprite), airplaneColor, zAirplane)
	}
	r.place(r.airplane, airplane.Transform.Translation, airplaneImageSize, screenRotation(airplane.Heading.Direction()))
	r.airplane.seen = true
}

// RenderProjectile implements entity.Renderer
func (r *EngoRenderer) RenderProjectile(projectile *entity.Projectile) {
	s, exists := r.projectiles[projectile.ID]
	if !exists {
		s = r.newSprite(r.assets.Sprite(ProjectileSprite), projectileColor, zProjectile)
		r.projectiles[projectile.ID] = s
	}
	r.place(s, projectile.Transform.Translation, projectileImageSize, 0)
	s.seen = true
}

// Present implements entity.Renderer. Engo draws the sprites itself; this
// only drops the ones nothing was drawn for.
func (r *EngoRenderer) Present() {
	r.cleanupInactiveEntities()
}

func (r *EngoRenderer) newSprite(drawable common.Drawable, tint color.Color, z float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{Drawable: drawable, Color: tint}
	s.RenderComponent.SetZIndex(z)
	r.sprites.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// place centres s on a scene position with the given size in pixels and
// clockwise rotation in degrees.
func (r *EngoRenderer) place(s *sprite, pos mgl32.Vec3, size, rotation float32) {
	if w, h := drawableSize(s.Drawable); w > 0 && h > 0 {
		s.Scale = engo.Point{X: size / w, Y: size / h}
	}
	s.Width = size
	s.Height = size
	s.Rotation = rotation
	s.SetCenter(r.camera.WorldToScreen(pos))
}

func drawableSize(d common.Drawable) (float32, float32) {
	if d == nil {
		return 0, 0
	}
	switch d.(type) {
	case common.Circle, common.Rectangle:
		return 1, 1
	}
	return d.Width(), d.Height()
}

// screenRotation is the clockwise angle in degrees from window-up to the
// projected direction
func screenRotation(dir mgl32.Vec3) float32 {
	if dir.X() == 0 && dir.Z() == 0 {
		return 0
	}
	return float32(math.Atan2(float64(dir.X()), float64(-dir.Z())) * 180 / math.Pi)
}

// cleanupInactiveEntities removes sprites not drawn since the last Clear
func (r *EngoRenderer) cleanupInactiveEntities() {
	for name, s := range r.bodies {
		if !s.seen {
			r.sprites.Remove(s.BasicEntity)
			delete(r.bodies, name)
		}
	}
	for name, s := range r.rings {
		if !s.seen {
			r.sprites.Remove(s.BasicEntity)
			delete(r.rings, name)
		}
	}
	for id, s := range r.projectiles {
		if !s.seen {
			r.sprites.Remove(s.BasicEntity)
			delete(r.projectiles, id)
		}
	}
	if r.airplane != nil && !r.airplane.seen {
		r.sprites.Remove(r.airplane.BasicEntity)
		r.airplane = nil
	}
}

// Counts returns the number of live body, ring and projectile sprites
func (r *EngoRenderer) Counts() (bodies, rings, projectiles int) {
	return len(r.bodies), len(r.rings), len(r.projectiles)
}
