package camera

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// DefaultOffset is where the camera sits relative to a followed body
var DefaultOffset = mgl32.Vec3{50, 50, 50}

// Trackable is a named position the camera can follow
type Trackable struct {
	Name     string
	Position mgl32.Vec3
}

// Camera is the scene camera. Zoom only affects the free camera of the
// 2D frontends.
type Camera struct {
	Transform   physics.Transform
	TargetFocus mgl32.Vec3
	Zoom        float32

	writes uint64
}

// NewCamera creates a camera at position looking at target
func NewCamera(position, target mgl32.Vec3, zoom float32) *Camera {
	return &Camera{
		Transform:   physics.LookingAt(position, target, physics.Up),
		TargetFocus: target,
		Zoom:        zoom,
	}
}

// Place moves the camera to position facing target
func (c *Camera) Place(position, target mgl32.Vec3) {
	c.Transform = physics.LookingAt(position, target, physics.Up)
	c.TargetFocus = target
	c.writes++
}

// Writes returns the number of transform writes made through Place
func (c *Camera) Writes() uint64 {
	return c.writes
}

// ZoomBy multiplies the zoom by factor within [min, max]
func (c *Camera) ZoomBy(factor, min, max float32) {
	z := c.Zoom * factor
	if z < min {
		z = min
	}
	if z > max {
		z = max
	}
	c.Zoom = z
}

// Controller moves the camera to follow the focused trackable
type Controller struct {
	Offset mgl32.Vec3
	logger *logging.Logger
}

// NewController creates a controller placing the camera at offset from its
// target
func NewController(offset mgl32.Vec3, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Controller{Offset: offset, logger: logger}
}

// Update follows the focused trackable and reports whether the camera moved.
// A Global focus, or a name that matches nothing, leaves the camera alone.
func (c *Controller) Update(ctx context.Context, cam *Camera, focus *Focus, trackables []Trackable) bool {
	if focus.IsGlobal() {
		return false
	}

	target := focus.Target()
	for _, t := range trackables {
		if t.Name == target {
			cam.Place(t.Position.Add(c.Offset), t.Position)
			return true
		}
	}

	c.logger.Debug(ctx, "focus target not found", "focus", target)
	return false
}
