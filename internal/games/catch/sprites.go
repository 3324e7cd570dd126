package catch

import (
	"github.com/vovakirdan/pawpark/internal/core"
	"github.com/vovakirdan/pawpark/internal/progression"
)

// Sprite is glyph art for a dog in one skin.
type Sprite struct {
	Lines []string
	Color core.Color
}

var dogArt = map[progression.PetID][]string{
	progression.Pug: {
		` /^-^\ `,
		`( o.o )`,
		` (")(")`,
	},
	progression.Beagle: {
		`/\_/\__`,
		`( o  o)`,
		` U---U `,
	},
	progression.Maltese: {
		` ~~~~~ `,
		`( ^.^ )`,
		` (_)_) `,
	},
	progression.Rottweiler: {
		` |\_/| `,
		`[ O O ]`,
		` ||-|| `,
	},
}

var skinColors = map[progression.PetID]map[progression.Skin]core.Color{
	progression.Pug:        {progression.SkinBase: core.ColorYellow, progression.SkinAlt: core.ColorMagenta},
	progression.Beagle:     {progression.SkinBase: core.ColorOrange, progression.SkinAlt: core.ColorCyan},
	progression.Maltese:    {progression.SkinBase: core.ColorBrightWhite, progression.SkinAlt: core.ColorMagenta},
	progression.Rottweiler: {progression.SkinBase: core.ColorGray, progression.SkinAlt: core.ColorRed},
}

// SpriteFor resolves the art for a dog and skin, falling back to the default
// dog's base sprite for anything unknown.
func SpriteFor(pet progression.PetID, skin progression.Skin) Sprite {
	lines, ok := dogArt[pet]
	if !ok {
		pet, skin = progression.DefaultPet, progression.SkinBase
		lines = dogArt[pet]
	}
	color, ok := skinColors[pet][skin]
	if !ok {
		color = skinColors[pet][progression.SkinBase]
	}
	return Sprite{Lines: lines, Color: color}
}

// Glyph returns the art for a falling object.
func Glyph(k Kind) (string, core.Color) {
	switch k {
	case KindBone:
		return "o==o", core.ColorBrightWhite
	case KindTrash:
		return "[#]", core.ColorGreen
	default:
		return "(/)", core.ColorRed
	}
}
