// pawpark is a virtual-pet arcade for the terminal: care for your dogs, catch
// falling bones to earn currency, spend it in the market and try your luck
// in the daily guess.
//
// Usage:
//
//	pawpark                  - Open the hub
//	pawpark play             - Play the catch game
//	pawpark shop             - Open the market
//	pawpark skins            - Open the wardrobe
//	pawpark guess            - Play the daily guess
//	pawpark status           - Print progression
//	pawpark scores           - Show the best catch sessions
//	pawpark simulate         - Run a headless session with an autopilot
//	pawpark serve            - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.pawpark/pawpark.db)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Custom catch config YAML
//	--difficulty <name>  - easy, normal or hard
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pawpark/internal/platform/tui"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagPlayer     string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pawpark",
	Short: "Pawpark - a virtual-pet arcade in your terminal",
	Long: `Pawpark is a virtual-pet arcade for the terminal.

Feed and water your dogs, catch falling bones to earn currency, spend it in
the market and win alternate skins in the daily guess.

Available commands:
  hub       - The kennel (default)
  play      - Catch game
  shop      - Market
  skins     - Wardrobe
  guess     - Daily guess
  status    - Print progression
  scores    - Best catch sessions
  simulate  - Headless session with an autopilot
  serve     - Start SSH server for remote play

Examples:
  pawpark
  pawpark play --difficulty hard
  pawpark simulate --duration 2m --speedup 20
  pawpark serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd.Context(), tui.ScreenHub)
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pawpark/pawpark.db", "Path to progression database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom catch config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "local", "Name recorded with catch sessions")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hubCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(guessCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}
