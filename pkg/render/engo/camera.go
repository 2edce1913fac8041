// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-orrery/pkg/camera"
)

// EngoScale is the number of scene units per pixel at zoom 1
const EngoScale = 2

// CameraSystem projects the scene top-down onto the window. It centres the
// view on the simulation camera's target and applies its zoom.
type CameraSystem struct {
	source *camera.Camera

	center mgl32.Vec3
	zoom   float32
	scale  float32

	width  float32
	height float32
}

// NewCameraSystem creates a camera system following source
func NewCameraSystem(source *camera.Camera, scale float32) *CameraSystem {
	if scale <= 0 {
		scale = EngoScale
	}
	cs := &CameraSystem{
		source: source,
		zoom:   1,
		scale:  scale,
	}
	cs.Sync()
	return cs
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update copies the simulation camera's target and zoom
func (cs *CameraSystem) Update(dt float32) {
	cs.Sync()
}

// Sync copies the simulation camera's target and zoom
func (cs *CameraSystem) Sync() {
	if cs.source == nil {
		return
	}
	cs.center = cs.source.TargetFocus
	if cs.source.Zoom > 0 {
		cs.zoom = cs.source.Zoom
	}
}

// SetViewport sets the window size in pixels
func (cs *CameraSystem) SetViewport(width, height float32) {
	cs.width = width
	cs.height = height
}

// Viewport returns the window size in pixels
func (cs *CameraSystem) Viewport() (float32, float32) {
	return cs.width, cs.height
}

// GetCurrentPosition returns the scene point at the centre of the window
func (cs *CameraSystem) GetCurrentPosition() mgl32.Vec3 {
	return cs.center
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// PixelsPerUnit returns how many pixels one scene unit spans
func (cs *CameraSystem) PixelsPerUnit() float32 {
	return cs.zoom / cs.scale
}

// WorldToScreen converts scene coordinates to window pixels. Scene z maps
// to window y; height is dropped.
func (cs *CameraSystem) WorldToScreen(pos mgl32.Vec3) engo.Point {
	k := cs.PixelsPerUnit()
	return engo.Point{
		X: (pos.X()-cs.center.X())*k + cs.width/2,
		Y: (pos.Z()-cs.center.Z())*k + cs.height/2,
	}
}

// ScreenToWorld converts window pixels to a scene point on the orbital plane
func (cs *CameraSystem) ScreenToWorld(p engo.Point) mgl32.Vec3 {
	k := cs.PixelsPerUnit()
	return mgl32.Vec3{
		(p.X-cs.width/2)/k + cs.center.X(),
		0,
		(p.Y-cs.height/2)/k + cs.center.Z(),
	}
}
