package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pawpark/internal/games/catch"
)

var (
	flagSimDuration time.Duration
	flagSimSpeedup  float64
	flagSimWidth    int
	flagSimHeight   int
	flagSimStep     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless catch session with an autopilot",
	Long: `Runs the catch game without a screen. An autopilot steers the dog; the
session ends after three strikes or when the game time runs out, and the
bones are committed like in a played session.

Examples:
  pawpark simulate
  pawpark simulate --duration 5m --speedup 50 --seed 42
  pawpark simulate --width 390 --height 844 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "Game time before the session is closed")
	simulateCmd.Flags().Float64Var(&flagSimSpeedup, "speedup", 10, "How much faster than real time to run")
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 390, "Field width in reference units")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 844, "Field height in reference units")
	simulateCmd.Flags().Float64Var(&flagSimStep, "step", 6, "Largest autopilot move per tick, in reference units")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	e := openEnv(false)
	defer e.Close()

	svc := e.services(flagSeed)
	ctx := cmd.Context()

	// The field is given in reference units; convert to terminal cells.
	cols := int(float64(flagSimWidth) / e.catch.Field.CellWidth)
	rows := int(float64(flagSimHeight) / e.catch.Field.CellHeight)
	sess := svc.NewCatchSession(ctx, cols, rows)
	if !sess.Geometry().Measured() {
		fmt.Fprintf(os.Stderr, "Error: field %dx%d is too small to play on\n", flagSimWidth, flagSimHeight)
		os.Exit(1)
	}

	loop := catch.NewLoop(sess, flagSimSpeedup)
	pilot := catch.Autopilot{Step: flagSimStep}
	loop.OnTick = func(s *catch.Session, res catch.StepResult) {
		if res.Caught > 0 || res.Struck > 0 {
			snap := s.Snapshot()
			e.logger.Debug("tick", "caught", snap.Collected, "strikes", snap.Strikes, "live", len(snap.Objects))
		}
		pilot.Steer(s)
	}

	wall := time.Duration(float64(flagSimDuration) / max(1, flagSimSpeedup))
	runCtx, cancel := context.WithTimeout(ctx, wall)
	defer cancel()

	start := time.Now()
	out := loop.Run(runCtx)

	fmt.Printf("Dog:       %s (%s)\n", sess.Pet(), sess.Skin())
	fmt.Printf("Ended by:  %s\n", out.Reason)
	fmt.Printf("Caught:    %d\n", out.Collected)
	fmt.Printf("Strikes:   %d\n", out.Strikes)
	fmt.Printf("Total:     %d\n", out.Total)
	if out.Best > 0 {
		fmt.Printf("Best:      %d\n", out.Best)
	}
	fmt.Printf("Took:      %s\n", time.Since(start).Round(time.Millisecond))
	if !out.Committed() {
		fmt.Fprintf(os.Stderr, "Warning: bones were not saved: %v\n", out.CommitErr)
		os.Exit(1)
	}
}
