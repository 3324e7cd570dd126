package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

func newShop(t *testing.T, bones string) (*Shop, *progression.Repository) {
	t.Helper()
	kv := storage.NewMemory()
	if bones != "" {
		kv.Set(context.Background(), progression.KeyBones, bones)
	}
	repo := progression.NewRepository(kv, nil)
	return New(repo, nil), repo
}

func TestBuySupply(t *testing.T) {
	ctx := context.Background()
	s, repo := newShop(t, "10")

	r, err := s.BuySupply(ctx, progression.Water)
	if err != nil {
		t.Fatalf("BuySupply() failed: %v", err)
	}
	if r.Balance != 7 || r.Stock != progression.DefaultSupply+1 || r.Cost != SupplyPrice {
		t.Errorf("unexpected receipt %+v", r)
	}

	p := repo.Snapshot(ctx)
	if p.Bones != 7 || p.Water != 6 || p.Food != progression.DefaultSupply {
		t.Errorf("unexpected progress %+v", p)
	}
}

func TestBuySupplyInsufficient(t *testing.T) {
	ctx := context.Background()
	s, repo := newShop(t, "2")

	_, err := s.BuySupply(ctx, progression.Food)
	if !errors.Is(err, progression.ErrInsufficientBones) {
		t.Fatalf("error = %v, expected ErrInsufficientBones", err)
	}
	p := repo.Snapshot(ctx)
	if p.Bones != 2 || p.Food != progression.DefaultSupply {
		t.Errorf("failed purchase changed state: %+v", p)
	}
}

func TestBuyPet(t *testing.T) {
	ctx := context.Background()
	s, repo := newShop(t, "400")

	r, err := s.BuyPet(ctx, progression.Maltese)
	if err != nil {
		t.Fatalf("BuyPet() failed: %v", err)
	}
	if r.Cost != 200 || r.Balance != 200 || r.Owned {
		t.Errorf("unexpected receipt %+v", r)
	}
	unlocked := repo.Unlocked(ctx)
	if len(unlocked) != 2 || unlocked[1] != progression.Maltese {
		t.Errorf("Unlocked = %v, expected Pug and Maltese", unlocked)
	}

	// Second purchase is free and changes nothing
	r, err = s.BuyPet(ctx, progression.Maltese)
	if err != nil || !r.Owned || r.Balance != 200 {
		t.Errorf("repeat purchase = %+v, %v", r, err)
	}
}

func TestBuyPetErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		bones   string
		pet     progression.PetID
		wantErr error
	}{
		{"short", "299", progression.Rottweiler, progression.ErrInsufficientBones},
		{"unknown", "999", "dog-5", progression.ErrUnknownPet},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, repo := newShop(t, tc.bones)
			if _, err := s.BuyPet(ctx, tc.pet); !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, expected %v", err, tc.wantErr)
			}
			if len(repo.Unlocked(ctx)) != 1 {
				t.Error("failed purchase unlocked a dog")
			}
		})
	}
}

func TestDefaultPetAlwaysOwned(t *testing.T) {
	s, _ := newShop(t, "")
	r, err := s.BuyPet(context.Background(), progression.Pug)
	if err != nil || !r.Owned {
		t.Errorf("Pug should already be owned: %+v, %v", r, err)
	}
}
