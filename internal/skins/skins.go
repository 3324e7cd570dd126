// Package skins lists and equips the cosmetic variants of each dog.
package skins

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/pawpark/internal/progression"
)

var (
	// ErrSkinNotOwned is returned when equipping a skin the dog does not own.
	ErrSkinNotOwned = errors.New("skins: skin not owned")
	// ErrUnknownSkin is returned for skins outside the known set.
	ErrUnknownSkin = errors.New("skins: unknown skin")
)

// Entry is one dog's wardrobe.
type Entry struct {
	Pet      progression.Pet
	Owned    []progression.Skin
	Equipped progression.Skin
}

// HasAlt reports whether the alternate skin has been won.
func (e Entry) HasAlt() bool {
	for _, s := range e.Owned {
		if s == progression.SkinAlt {
			return true
		}
	}
	return false
}

// List returns every catalog dog's wardrobe in catalog order.
func List(ctx context.Context, repo *progression.Repository) []Entry {
	var entries []Entry
	repo.View(ctx, func(tx *progression.Tx) {
		owned := tx.OwnedSkins()
		equipped := tx.Equipped()
		for _, p := range progression.Catalog {
			entries = append(entries, Entry{
				Pet:      p,
				Owned:    owned[p.ID],
				Equipped: equipped[p.ID],
			})
		}
	})
	return entries
}

// Equip sets the skin a dog wears in the catch game.
func Equip(ctx context.Context, repo *progression.Repository, id progression.PetID, skin progression.Skin) error {
	if !progression.Known(id) {
		return fmt.Errorf("skins: equip %s: %w", id, progression.ErrUnknownPet)
	}
	if !progression.ValidSkin(skin) {
		return fmt.Errorf("skins: equip %s: %w", skin, ErrUnknownSkin)
	}

	return repo.Update(ctx, func(tx *progression.Tx) error {
		if !tx.OwnsSkin(id, skin) {
			return fmt.Errorf("skins: equip %s on %s: %w", skin, id, ErrSkinNotOwned)
		}
		equipped := tx.Equipped()
		equipped[id] = skin
		return tx.SetEquipped(equipped)
	})
}

// Grant adds skin to a dog's wardrobe. Granting an owned skin is a no-op.
func Grant(tx *progression.Tx, id progression.PetID, skin progression.Skin) error {
	if tx.OwnsSkin(id, skin) {
		return nil
	}
	owned := tx.OwnedSkins()
	owned[id] = append(owned[id], skin)
	return tx.SetOwnedSkins(owned)
}
