// pkg/entity/body.go
package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// ErrInvalidBody is returned when a body is created with impossible values
var ErrInvalidBody = errors.New("invalid body")

// BodySpec holds the values a body is spawned with. Distance and Radius are
// in scene units, rates in radians per simulated second.
type BodySpec struct {
	Name         string
	Distance     float32
	Radius       float32
	RotationRate float64
	OrbitalRate  float64
	Parent       string
	Model        string
	Color        string
	Scale        float32
}

// Body is a planet, star or moon. Its orbit parameters are fixed at spawn.
type Body struct {
	BaseEntity
	spec BodySpec
}

// NewBody creates a body at its orbit's starting point, on +X of its centre.
func NewBody(id ID, spec BodySpec) (*Body, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidBody)
	}
	if spec.Distance < 0 || spec.Radius < 0 || spec.RotationRate < 0 || spec.OrbitalRate < 0 {
		return nil, fmt.Errorf("%w: %s has a negative distance, radius or rate", ErrInvalidBody, spec.Name)
	}
	if spec.Parent == spec.Name {
		return nil, fmt.Errorf("%w: %s orbits itself", ErrInvalidBody, spec.Name)
	}
	if spec.Scale <= 0 {
		spec.Scale = 1
	}

	return &Body{
		BaseEntity: BaseEntity{
			ID:        id,
			Transform: physics.NewTransform(mgl32.Vec3{spec.Distance, 0, 0}).WithScale(spec.Scale),
			Active:    true,
		},
		spec: spec,
	}, nil
}

// Name returns the body's name
func (b *Body) Name() string { return b.spec.Name }

// Distance returns the orbit radius around the Sun or the parent
func (b *Body) Distance() float32 { return b.spec.Distance }

// Radius returns the body's radius in scene units
func (b *Body) Radius() float32 { return b.spec.Radius }

// RotationRate returns the spin rate in radians per simulated second
func (b *Body) RotationRate() float64 { return b.spec.RotationRate }

// OrbitalRate returns the orbital rate in radians per simulated second
func (b *Body) OrbitalRate() float64 { return b.spec.OrbitalRate }

// Parent returns the name of the body this one orbits, empty for the Sun's
// direct satellites.
func (b *Body) Parent() string { return b.spec.Parent }

// HasParent reports whether the body is a moon
func (b *Body) HasParent() bool { return b.spec.Parent != "" }

// Model returns the asset path of the body's model
func (b *Body) Model() string { return b.spec.Model }

// Color returns the body's display colour as #RRGGBB
func (b *Body) Color() string { return b.spec.Color }

// Position returns the body's current translation
func (b *Body) Position() mgl32.Vec3 { return b.Transform.Translation }
