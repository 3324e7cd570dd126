package catch

import "github.com/vovakirdan/pawpark/internal/core"

// Player is the dragged dog. One pointer at a time: Begin starts a gesture,
// Move applies the cumulative delta since Begin.
type Player struct {
	x      float64
	origin float64
}

// NewPlayer places the dog in the middle of the field.
func NewPlayer(g Geometry) Player {
	x := g.StartX()
	return Player{x: x, origin: x}
}

// X returns the published position.
func (p *Player) X() float64 {
	return p.x
}

// Begin records the current position as the drag origin.
func (p *Player) Begin() {
	p.origin = p.x
}

// Move publishes origin+dx clamped to the field. Applying the same delta
// twice yields the same position.
func (p *Player) Move(dx float64, g Geometry) {
	p.x = g.ClampX(p.origin + dx)
}

// Nudge moves by dx as a complete gesture.
func (p *Player) Nudge(dx float64, g Geometry) {
	p.Begin()
	p.Move(dx, g)
}

// Place sets an absolute position, clamped to the field.
func (p *Player) Place(x float64, g Geometry) {
	p.x = g.ClampX(x)
	p.origin = p.x
}

// Resize re-clamps the position after the field was measured again.
func (p *Player) Resize(g Geometry) {
	p.x = g.ClampX(p.x)
	p.origin = g.ClampX(p.origin)
}

// Bounds returns the dog's bounding box.
func (p *Player) Bounds(g Geometry) core.RectF {
	return core.NewRectF(p.x, g.PlayerY, g.PlayerW, g.PlayerH)
}
