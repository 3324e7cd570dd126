package catch

import "github.com/vovakirdan/pawpark/internal/core"

// StepResult summarizes one simulation tick.
type StepResult struct {
	Caught int // collectibles that hit the dog
	Struck int // hazards that hit the dog
	Missed int // objects that fell past the field
}

// Step advances every live object by its fall speed and resolves it against
// the player box. Collision is checked before the off-field test, so an
// object that does both counts as caught. The returned slice reuses the
// backing array of live.
func Step(live []Object, player core.RectF, g Geometry) ([]Object, StepResult) {
	var res StepResult
	kept := live[:0]

	for _, o := range live {
		o.Y += o.Speed

		if o.Bounds(g).Intersects(player) {
			if o.Kind.Hazard() {
				res.Struck++
			} else {
				res.Caught++
			}
			continue
		}

		if o.Y > g.CullY {
			res.Missed++
			continue
		}

		kept = append(kept, o)
	}

	// Drop stale references past the new length
	for i := len(kept); i < len(live); i++ {
		live[i] = Object{}
	}
	return kept, res
}
