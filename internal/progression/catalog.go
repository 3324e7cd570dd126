// Package progression is the typed repository over the key/value store that
// holds everything that survives between runs: bones, unlocked dogs, skins,
// supplies and the daily guess state. Every read substitutes a documented
// default when the stored value is absent or malformed.
package progression

import "errors"

// ErrUnknownPet is returned for ids outside the catalog.
var ErrUnknownPet = errors.New("progression: unknown pet")

// PetID identifies a dog in the catalog.
type PetID string

// Skin is a cosmetic variant of a dog.
type Skin string

// Known dogs. DefaultPet is always unlocked.
const (
	Pug        PetID = "dog-1"
	Beagle     PetID = "dog-2"
	Maltese    PetID = "dog-3"
	Rottweiler PetID = "dog-4"

	DefaultPet = Pug
)

// Known skins. Every dog owns SkinBase.
const (
	SkinBase Skin = "base"
	SkinAlt  Skin = "alt"
)

// Pet is a catalog entry.
type Pet struct {
	ID    PetID
	Name  string
	Price int // bones; 0 means free
}

// Catalog lists every dog in display order.
var Catalog = []Pet{
	{ID: Pug, Name: "Pug", Price: 0},
	{ID: Beagle, Name: "Beagle", Price: 150},
	{ID: Maltese, Name: "Maltese", Price: 200},
	{ID: Rottweiler, Name: "Rottweiler", Price: 300},
}

// Lookup returns the catalog entry for id.
func Lookup(id PetID) (Pet, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Pet{}, false
}

// Known reports whether id is in the catalog.
func Known(id PetID) bool {
	_, ok := Lookup(id)
	return ok
}

// ValidSkin reports whether s is a known skin.
func ValidSkin(s Skin) bool {
	return s == SkinBase || s == SkinAlt
}
