// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all scene objects
type Entity interface {
	GetID() ID
	GetTransform() physics.Transform
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID        ID
	Transform physics.Transform
	Active    bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetTransform returns the entity's transform
func (e *BaseEntity) GetTransform() physics.Transform {
	return e.Transform
}

// IDGenerator hands out increasing entity IDs, starting at 1.
// Each simulation owns its own generator.
type IDGenerator struct {
	next ID
}

// NewIDGenerator creates a generator whose first ID is 1
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{next: 1}
}

// Next returns a fresh ID
func (g *IDGenerator) Next() ID {
	id := g.next
	g.next++
	return id
}

func (b *Body) Render(r Renderer) {
	r.RenderBody(b)
}

func (a *Airplane) Render(r Renderer) {
	r.RenderAirplane(a)
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p)
}
