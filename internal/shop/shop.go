// Package shop sells supplies and dogs for bones.
package shop

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/progression"
)

// SupplyPrice is the cost of one food or one water.
const SupplyPrice = 3

// Receipt describes a completed purchase.
type Receipt struct {
	Item    string
	Cost    int
	Balance int  // bones left
	Stock   int  // supply count after the purchase; 0 for dogs
	Owned   bool // the dog was already unlocked; nothing was charged
}

// Shop spends bones through the progression repository, so purchases and
// session commits never overwrite each other's balance.
type Shop struct {
	repo   *progression.Repository
	logger *log.Logger
}

// New creates a shop over repo.
func New(repo *progression.Repository, logger *log.Logger) *Shop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shop{repo: repo, logger: logger}
}

// BuySupply buys one unit of food or water.
func (s *Shop) BuySupply(ctx context.Context, supply progression.Supply) (Receipt, error) {
	r := Receipt{Item: string(supply), Cost: SupplyPrice}
	err := s.repo.Update(ctx, func(tx *progression.Tx) error {
		balance, err := tx.Spend(SupplyPrice)
		r.Balance = balance
		if err != nil {
			return err
		}
		r.Stock = tx.Supply(supply) + 1
		return tx.SetSupply(supply, r.Stock)
	})
	if err != nil {
		return r, fmt.Errorf("shop: buy %s: %w", supply, err)
	}
	s.logger.Info("bought supply", "item", supply, "stock", r.Stock, "balance", r.Balance)
	return r, nil
}

// BuyPet unlocks a dog for its catalog price. Buying a dog that is already
// unlocked charges nothing and reports Owned.
func (s *Shop) BuyPet(ctx context.Context, id progression.PetID) (Receipt, error) {
	pet, ok := progression.Lookup(id)
	if !ok {
		return Receipt{}, fmt.Errorf("shop: buy %s: %w", id, progression.ErrUnknownPet)
	}

	r := Receipt{Item: pet.Name}
	err := s.repo.Update(ctx, func(tx *progression.Tx) error {
		if tx.IsUnlocked(id) {
			r.Owned = true
			r.Balance = tx.Bones()
			return nil
		}
		balance, err := tx.Spend(pet.Price)
		r.Balance = balance
		if err != nil {
			return err
		}
		r.Cost = pet.Price
		return tx.SetUnlocked(append(tx.Unlocked(), id))
	})
	if err != nil {
		return r, fmt.Errorf("shop: buy %s: %w", pet.Name, err)
	}
	if !r.Owned {
		s.logger.Info("unlocked dog", "pet", id, "cost", r.Cost, "balance", r.Balance)
	}
	return r, nil
}
