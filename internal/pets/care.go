// Package pets tracks how hungry and thirsty each dog is while the hub is
// open. Needs live only in memory; the food and water they consume come out
// of the persisted stock.
package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/core"
	"github.com/vovakirdan/pawpark/internal/progression"
)

var (
	// ErrOutOfStock is returned when there is no food or water left.
	ErrOutOfStock = errors.New("pets: out of stock")
	// ErrLocked is returned when caring for a dog that is not unlocked.
	ErrLocked = errors.New("pets: dog is locked")
)

// Care tuning.
const (
	MaxLevel  = 100
	FeedBoost = 20
)

// Needs are a dog's fill levels, 0 to MaxLevel.
type Needs struct {
	Hunger int
	Thirst int
}

// StartingNeeds returns the levels a dog has when the hub opens.
func StartingNeeds(id progression.PetID) Needs {
	if id == progression.DefaultPet {
		return Needs{Hunger: 70, Thirst: 70}
	}
	return Needs{Hunger: 50, Thirst: 50}
}

// Care holds the needs of every catalog dog for one hub visit.
type Care struct {
	repo   *progression.Repository
	logger *log.Logger

	mu    sync.Mutex
	needs map[progression.PetID]Needs
}

// NewCare starts a visit with every dog at its starting needs.
func NewCare(repo *progression.Repository, logger *log.Logger) *Care {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	needs := make(map[progression.PetID]Needs, len(progression.Catalog))
	for _, p := range progression.Catalog {
		needs[p.ID] = StartingNeeds(p.ID)
	}
	return &Care{repo: repo, logger: logger, needs: needs}
}

// Needs returns the current levels of id.
func (c *Care) Needs(id progression.PetID) Needs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.needs[id]
}

// Feed gives id one food. It returns the new needs and the food left.
func (c *Care) Feed(ctx context.Context, id progression.PetID) (Needs, int, error) {
	return c.give(ctx, id, progression.Food)
}

// Water gives id one water. It returns the new needs and the water left.
func (c *Care) Water(ctx context.Context, id progression.PetID) (Needs, int, error) {
	return c.give(ctx, id, progression.Water)
}

func (c *Care) give(ctx context.Context, id progression.PetID, supply progression.Supply) (Needs, int, error) {
	if !progression.Known(id) {
		return Needs{}, 0, fmt.Errorf("pets: %s: %w", id, progression.ErrUnknownPet)
	}

	var left int
	err := c.repo.Update(ctx, func(tx *progression.Tx) error {
		if !tx.IsUnlocked(id) {
			return ErrLocked
		}
		left = tx.Supply(supply)
		if left <= 0 {
			return ErrOutOfStock
		}
		if err := tx.SetSupply(supply, left-1); err != nil {
			return err
		}
		left--
		return nil
	})
	if err != nil {
		return c.Needs(id), left, err
	}

	c.mu.Lock()
	n := c.needs[id]
	if supply == progression.Water {
		n.Thirst = core.Clamp(n.Thirst+FeedBoost, 0, MaxLevel)
	} else {
		n.Hunger = core.Clamp(n.Hunger+FeedBoost, 0, MaxLevel)
	}
	c.needs[id] = n
	c.mu.Unlock()

	c.logger.Debug("cared for dog", "pet", id, "supply", supply, "left", left)
	return n, left, nil
}
