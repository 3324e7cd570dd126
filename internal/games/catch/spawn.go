package catch

import (
	"github.com/google/uuid"
)

// Rand is the source of uniform draws in [0, 1). *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner decides what falls next.
type Spawner struct {
	rng   Rand
	newID func() string
}

// NewSpawner creates a spawner. A nil newID uses random UUIDs.
func NewSpawner(rng Rand, newID func() string) *Spawner {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Spawner{rng: rng, newID: newID}
}

// Next draws one object for the field, or reports false when the field has
// not been measured yet. Draw order is kind, x, then speed. speedFactor
// scales the drawn fall speed.
func (sp *Spawner) Next(g Geometry, speedFactor float64) (Object, bool) {
	if !g.Measured() {
		return Object{}, false
	}

	kind := sp.kind(g, sp.rng.Float64())
	w, _ := g.Size(kind)
	x := uniform(sp.rng, g.Margin, max(g.Margin, g.FieldW-w-g.Margin))
	speed := uniform(sp.rng, g.MinSpeed, g.MaxSpeed) * speedFactor

	return Object{
		ID:    sp.newID(),
		Kind:  kind,
		X:     x,
		Y:     g.SpawnY,
		Speed: speed,
	}, true
}

func (sp *Spawner) kind(g Geometry, r float64) Kind {
	switch {
	case r < g.BoneCut:
		return KindBone
	case r < g.TrashCut:
		return KindTrash
	default:
		return KindNoDogs
	}
}

func uniform(rng Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}

// admit adds obj to the live set, newest first, keeping at most limit
// objects. The oldest objects are dropped.
func admit(live []Object, obj Object, limit int) []Object {
	next := make([]Object, 0, min(len(live)+1, max(limit, 1)))
	next = append(next, obj)
	for _, o := range live {
		if len(next) >= limit {
			break
		}
		next = append(next, o)
	}
	return next
}
