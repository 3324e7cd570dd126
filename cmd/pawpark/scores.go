package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pawpark/internal/platform/tui"
)

var flagPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best catch sessions",
	Long: `Shows the best catch sessions of the player. In a terminal the board is
interactive; with --plain, or when output is piped, the top 10 are printed.

Examples:
  pawpark scores
  pawpark scores --plain
  pawpark scores --player alice --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top 10 instead of opening the board")
}

func runScores(cmd *cobra.Command, _ []string) {
	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		runScreen(cmd.Context(), tui.ScreenScores)
		return
	}

	e := openEnv(false)
	defer e.Close()
	if e.store == nil {
		fmt.Fprintln(os.Stderr, "Error: no session history without a database")
		os.Exit(1)
	}

	ctx := cmd.Context()
	records, err := e.store.TopSessions(ctx, flagPlayer, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best runs - %s\n", flagPlayer)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pawpark play' to set the first record!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-7s  %s\n", "Rank", "Bones", "Dog", "Strikes", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-7s  %s\n", "----", "-----", "---", "-------", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-6d  %-7s  %-7d  %s\n", i+1, r.Collected, r.PetID, r.Strikes, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := e.store.BestSession(ctx, flagPlayer); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
