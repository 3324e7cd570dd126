package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pawpark/internal/core"
	"github.com/vovakirdan/pawpark/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the catch game",
	Long: `Catch falling bones with one of your dogs.

Drag the dog with the mouse or move it with the arrow keys. Bones add to
your catch; trash and no-dogs signs are strikes. Three strikes end the run
and the bones you caught are added to your total.

Controls:
  Mouse drag / Left, Right  - Move the dog
  R                         - Play again (after game over)
  Esc/B                     - Back to the hub
  Q/Ctrl+C                  - Quit

Examples:
  pawpark play
  pawpark play --difficulty hard
  pawpark play --config ./my-catch.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd.Context(), tui.ScreenGame)
	},
}

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Open the kennel",
	Long:  `Shows your dogs, their hunger and thirst, and your supplies.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd.Context(), tui.ScreenHub)
	},
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Open the market",
	Long:  `Buy food and water for 3 bones each, or adopt a new dog.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd.Context(), tui.ScreenMarket)
	},
}

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "Open the wardrobe",
	Long:  `Choose the skin each dog wears. Alternate skins are won in the daily guess.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd.Context(), tui.ScreenWardrobe)
	},
}

var guessCmd = &cobra.Command{
	Use:   "guess",
	Short: "Play the daily guess",
	Long: `One of nine cells hides a dog's alternate skin. You get two picks;
win or lose, the next round opens a day later.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd.Context(), tui.ScreenGuess)
	},
}

// runScreen opens the TUI on screen.
func runScreen(ctx context.Context, screen tui.Screen) {
	e := openEnv(true)

	rc := runtimeConfig()
	runErr := tui.Run(ctx, e.services(rc.Seed), screen, rc)

	// Close store before potential exit
	e.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", screen, runErr)
		os.Exit(1)
	}
}

// runtimeConfig captures the terminal size and seed once at startup.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	return rc
}
