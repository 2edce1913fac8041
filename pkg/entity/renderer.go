package entity

// Renderer draws the scene entities of one frame
type Renderer interface {
	RenderBody(body *Body)
	RenderAirplane(airplane *Airplane)
	RenderProjectile(projectile *Projectile)
	Clear()
	Present()
}
