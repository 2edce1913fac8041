// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// NullRenderer is a headless implementation of entity.Renderer that logs
// what it is asked to draw.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
	drawn  int
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Drawn returns the number of entities drawn in the last frame
func (d *NullRenderer) Drawn() int {
	return d.drawn
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.drawn = 0
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames, "entities", d.drawn)
}

// RenderBody implements entity.Renderer.
func (d *NullRenderer) RenderBody(body *entity.Body) {
	ctx := context.Background()
	if body == nil {
		d.logger.Debug(ctx, "RenderBody called with nil body")
		return
	}
	d.drawn++
	d.logger.Debug(ctx, "RenderBody called",
		"body_id", uint64(body.ID),
		"body_name", body.Name(),
		"position", body.Position(),
	)
}

// RenderAirplane implements entity.Renderer.
func (d *NullRenderer) RenderAirplane(airplane *entity.Airplane) {
	ctx := context.Background()
	if airplane == nil {
		d.logger.Debug(ctx, "RenderAirplane called with nil airplane")
		return
	}
	d.drawn++
	d.logger.Debug(ctx, "RenderAirplane called",
		"airplane_id", uint64(airplane.ID),
		"position", airplane.Transform.Translation,
		"yaw", airplane.Heading.Yaw,
		"pitch", airplane.Heading.Pitch,
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.drawn++
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", uint64(projectile.ID),
		"distance", projectile.DistanceTraveled,
	)
}
