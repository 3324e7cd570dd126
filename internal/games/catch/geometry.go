// Package catch implements the falling-object catch game: a dog at the
// bottom of the field is dragged sideways to catch bones and dodge hazards.
// The session is driven by two periodic processes, a coarse spawn tick and a
// fine simulation tick, and commits the bones it collected when it ends.
package catch

import (
	"math"
	"time"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/core"
)

// Geometry is the immutable layout of one measured field. Every length is in
// field units and already multiplied by Scale.
type Geometry struct {
	Scale          float64
	FieldW, FieldH float64

	PlayerW, PlayerH float64
	PlayerY          float64
	Margin           float64

	BoneW, BoneH     float64
	HazardW, HazardH float64
	SpawnY           float64
	CullY            float64
	MinSpeed         float64
	MaxSpeed         float64
	MinFieldW        float64 // unscaled

	// Terminal cell size, for hosts that draw onto a core.Screen.
	CellW, CellH float64

	SpawnInterval time.Duration
	TickInterval  time.Duration
	MaxLive       int
	MaxStrikes    int
	BoneCut       float64
	TrashCut      float64
}

// ScaleFor returns the layout scale for a field: landscape fields scale by
// width against the reference height, portrait fields by the tighter axis.
func ScaleFor(cfg config.CatchConfig, w, h float64) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	if w > h {
		return w / cfg.Field.ReferenceHeight
	}
	return min(w/cfg.Field.ReferenceWidth, h/cfg.Field.ReferenceHeight)
}

// NewGeometry lays out a field of w by h units.
func NewGeometry(cfg config.CatchConfig, w, h float64) Geometry {
	s := ScaleFor(cfg, w, h)
	g := Geometry{
		Scale:   s,
		FieldW:  w,
		FieldH:  h,
		PlayerW: cfg.Player.Width * s,
		PlayerH: cfg.Player.Height * s,
		Margin:  cfg.Player.Margin * s,

		BoneW:     cfg.Objects.BoneWidth * s,
		BoneH:     cfg.Objects.BoneHeight * s,
		HazardW:   cfg.Objects.HazardWidth * s,
		HazardH:   cfg.Objects.HazardHeight * s,
		SpawnY:    cfg.Objects.SpawnY * s,
		CullY:     h + cfg.Objects.CullMargin*s,
		MinSpeed:  cfg.Objects.MinSpeed * s,
		MaxSpeed:  cfg.Objects.MaxSpeed * s,
		MinFieldW: cfg.Field.MinWidth,

		CellW: cfg.Field.CellWidth,
		CellH: cfg.Field.CellHeight,

		SpawnInterval: time.Duration(cfg.Timing.SpawnIntervalMS) * time.Millisecond,
		TickInterval:  time.Duration(cfg.Timing.TickIntervalMS) * time.Millisecond,
		MaxLive:       cfg.Objects.MaxLive,
		MaxStrikes:    cfg.Rules.MaxStrikes,
		BoneCut:       cfg.Spawn.Bone,
		TrashCut:      cfg.Spawn.Trash,
	}
	g.PlayerY = max(0, h-g.PlayerH-cfg.Player.BottomOffset*s)
	return g
}

// TerminalGeometry lays out a field that fills cols by rows terminal cells.
func TerminalGeometry(cfg config.CatchConfig, cols, rows int) Geometry {
	return NewGeometry(cfg, float64(cols)*cfg.Field.CellWidth, float64(rows)*cfg.Field.CellHeight)
}

// Measured reports whether the field is wide enough to spawn on.
func (g Geometry) Measured() bool {
	return g.FieldW > g.MinFieldW
}

// StartX is the centered player position a new mount starts from.
func (g Geometry) StartX() float64 {
	return (g.FieldW - g.PlayerW) / 2
}

// MinX is the leftmost player position.
func (g Geometry) MinX() float64 {
	return g.Margin
}

// MaxX is the rightmost player position. It may be below MinX on a field
// narrower than the dog; clamping then pins the dog to MinX.
func (g Geometry) MaxX() float64 {
	return g.FieldW - g.PlayerW - g.Margin
}

// ClampX restricts a player position to the field.
func (g Geometry) ClampX(x float64) float64 {
	return core.ClampF(x, g.MinX(), g.MaxX())
}

// Size returns the bounding box size for objects of kind k.
func (g Geometry) Size(k Kind) (w, h float64) {
	if k == KindBone {
		return g.BoneW, g.BoneH
	}
	return g.HazardW, g.HazardH
}

// ToCells converts a field rectangle to the terminal cells it covers.
func (g Geometry) ToCells(r core.RectF) core.Rect {
	if g.CellW <= 0 || g.CellH <= 0 {
		return core.Rect{}
	}
	x := int(math.Floor(r.X / g.CellW))
	y := int(math.Floor(r.Y / g.CellH))
	w := max(1, int(math.Round(r.W/g.CellW)))
	h := max(1, int(math.Round(r.H/g.CellH)))
	return core.NewRect(x, y, w, h)
}
