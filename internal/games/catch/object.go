package catch

import "github.com/vovakirdan/pawpark/internal/core"

// Kind is the type of a falling object.
type Kind int

const (
	KindBone   Kind = iota // collectible
	KindTrash              // hazard
	KindNoDogs             // hazard, scored like trash
)

// String returns the name used in logs and snapshots.
func (k Kind) String() string {
	switch k {
	case KindBone:
		return "bone"
	case KindTrash:
		return "trash"
	case KindNoDogs:
		return "nodogs"
	default:
		return "unknown"
	}
}

// Hazard reports whether catching k costs a strike.
func (k Kind) Hazard() bool {
	return k != KindBone
}

// Object is a falling item owned by one session.
type Object struct {
	ID    string
	Kind  Kind
	X, Y  float64
	Speed float64 // field units per tick
}

// Bounds returns the object's bounding box.
func (o Object) Bounds(g Geometry) core.RectF {
	w, h := g.Size(o.Kind)
	return core.NewRectF(o.X, o.Y, w, h)
}
