package catch

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pawpark/internal/core"
)

// Render draws a snapshot onto screen. Row 0 is the HUD.
func Render(screen *core.Screen, snap Snapshot, geo Geometry) {
	screen.Clear()

	for _, o := range snap.Objects {
		drawObject(screen, o, geo)
	}
	drawDog(screen, snap, geo)

	hud := fmt.Sprintf(" Bones %d  Strikes %s  Total %d ",
		snap.Collected, strikeMarks(snap.Strikes, geo.MaxStrikes), snap.Total)
	screen.DrawHLine(0, 0, screen.Width(), ' ', core.ColorDefault)
	screen.DrawTextColor(0, 0, hud, core.ColorYellow)
}

func drawObject(screen *core.Screen, o Object, geo Geometry) {
	cells := geo.ToCells(o.Bounds(geo))
	glyph, color := Glyph(o.Kind)
	row := cells.Y + cells.H/2
	if row < 1 {
		return // under the HUD or above the field
	}
	text := fitText(glyph, cells.W)
	x := cells.X + (cells.W-len([]rune(text)))/2
	screen.DrawTextColor(x, row, text, color)
}

func drawDog(screen *core.Screen, snap Snapshot, geo Geometry) {
	sprite := SpriteFor(snap.Pet, snap.Skin)
	box := geo.ToCells(core.NewRectF(snap.PlayerX, geo.PlayerY, geo.PlayerW, geo.PlayerH))

	top := box.Y + max(0, box.H-len(sprite.Lines))
	for i, line := range sprite.Lines {
		text := fitText(line, box.W)
		x := box.X + (box.W-len([]rune(text)))/2
		screen.DrawTextColor(x, top+i, text, sprite.Color)
	}
}

func strikeMarks(strikes, limit int) string {
	strikes = core.Clamp(strikes, 0, limit)
	return strings.Repeat("x", strikes) + strings.Repeat(".", limit-strikes)
}

// fitText trims s to at most w runes, keeping the middle.
func fitText(s string, w int) string {
	r := []rune(s)
	if w <= 0 || len(r) <= w {
		return s
	}
	cut := (len(r) - w) / 2
	return string(r[cut : cut+w])
}
