package pets

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

func newCare(t *testing.T, seed map[string]string) (*Care, *progression.Repository) {
	t.Helper()
	kv := storage.NewMemory()
	for k, v := range seed {
		kv.Set(context.Background(), k, v)
	}
	repo := progression.NewRepository(kv, nil)
	return NewCare(repo, nil), repo
}

func TestStartingNeeds(t *testing.T) {
	c, _ := newCare(t, nil)
	if n := c.Needs(progression.Pug); n != (Needs{Hunger: 70, Thirst: 70}) {
		t.Errorf("Pug needs = %+v, expected 70/70", n)
	}
	for _, id := range []progression.PetID{progression.Beagle, progression.Maltese, progression.Rottweiler} {
		if n := c.Needs(id); n != (Needs{Hunger: 50, Thirst: 50}) {
			t.Errorf("%s needs = %+v, expected 50/50", id, n)
		}
	}
}

func TestFeedConsumesStock(t *testing.T) {
	ctx := context.Background()
	c, repo := newCare(t, nil)

	n, left, err := c.Feed(ctx, progression.Pug)
	if err != nil {
		t.Fatalf("Feed() failed: %v", err)
	}
	if n.Hunger != 90 || n.Thirst != 70 {
		t.Errorf("needs after feeding = %+v, expected hunger 90", n)
	}
	if left != progression.DefaultSupply-1 {
		t.Errorf("food left = %d, expected %d", left, progression.DefaultSupply-1)
	}
	if got := repo.Snapshot(ctx).Food; got != left {
		t.Errorf("stored food = %d, expected %d", got, left)
	}
}

func TestCareClampsAtMax(t *testing.T) {
	ctx := context.Background()
	c, _ := newCare(t, nil)

	for i := 0; i < 3; i++ {
		c.Water(ctx, progression.Pug)
	}
	if got := c.Needs(progression.Pug).Thirst; got != MaxLevel {
		t.Errorf("thirst = %d, expected clamp at %d", got, MaxLevel)
	}
}

func TestCareErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		seed    map[string]string
		pet     progression.PetID
		water   bool
		wantErr error
	}{
		{"locked dog", nil, progression.Beagle, false, ErrLocked},
		{"no food", map[string]string{progression.KeyFood: "0"}, progression.Pug, false, ErrOutOfStock},
		{"no water", map[string]string{progression.KeyWater: "0"}, progression.Pug, true, ErrOutOfStock},
		{"unknown dog", nil, "dog-9", false, progression.ErrUnknownPet},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newCare(t, tc.seed)
			before := c.Needs(tc.pet)

			var err error
			if tc.water {
				_, _, err = c.Water(ctx, tc.pet)
			} else {
				_, _, err = c.Feed(ctx, tc.pet)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, expected %v", err, tc.wantErr)
			}
			if c.Needs(tc.pet) != before {
				t.Error("failed care must not change needs")
			}
		})
	}
}

func TestCareUnlockedDog(t *testing.T) {
	ctx := context.Background()
	c, _ := newCare(t, map[string]string{progression.KeyUnlocked: `["dog-1","dog-3"]`})

	n, _, err := c.Feed(ctx, progression.Maltese)
	if err != nil {
		t.Fatalf("Feed() failed: %v", err)
	}
	if n.Hunger != 70 {
		t.Errorf("Maltese hunger = %d, expected 70", n.Hunger)
	}
}
