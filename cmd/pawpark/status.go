package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pawpark/internal/guess"
	"github.com/vovakirdan/pawpark/internal/progression"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print progression",
	Long:  `Prints your bones, supplies, dogs, skins and the daily guess state.`,
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) {
	e := openEnv(false)
	defer e.Close()

	ctx := cmd.Context()
	svc := e.services(flagSeed)
	p := e.repo.Snapshot(ctx)

	unlocked := make(map[progression.PetID]bool, len(p.Unlocked))
	for _, id := range p.Unlocked {
		unlocked[id] = true
	}

	fmt.Printf("Bones: %d\n", p.Bones)
	fmt.Printf("Food:  %d\n", p.Food)
	fmt.Printf("Water: %d\n", p.Water)
	fmt.Println()

	fmt.Printf("  %-11s  %-8s  %-5s  %s\n", "Dog", "Status", "Skin", "Alt")
	fmt.Printf("  %-11s  %-8s  %-5s  %s\n", "---", "------", "----", "---")
	for _, pet := range progression.Catalog {
		state := fmt.Sprintf("%d", pet.Price)
		if unlocked[pet.ID] {
			state = "owned"
		}
		alt := "-"
		for _, s := range p.OwnedSkins[pet.ID] {
			if s == progression.SkinAlt {
				alt = "won"
			}
		}
		fmt.Printf("  %-11s  %-8s  %-5s  %s\n", pet.Name, state, p.Equipped[pet.ID], alt)
	}
	fmt.Println()

	st := svc.Guess.Peek(ctx)
	switch {
	case st.Locked:
		fmt.Printf("Daily guess: next round in %s\n", guess.FormatRemaining(st.Remaining(svc.Clock.Now())))
	default:
		fmt.Printf("Daily guess: open, %d tries left\n", st.AttemptsLeft)
	}
}
