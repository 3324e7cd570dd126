package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/platform/tui"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

// env is what every command opens: the logger, the catch tuning and the
// progression store.
type env struct {
	logger  *log.Logger
	logFile *os.File
	catch   config.CatchConfig
	store   *storage.Store // nil when running on the in-memory fallback
	repo    *progression.Repository
}

// openEnv prepares a command. Interactive commands log to a file so the
// logger never draws over the TUI.
func openEnv(interactive bool) *env {
	e := &env{}
	e.logger, e.logFile = newLogger(interactive)

	cfg, err := config.LoadCatch(flagConfig)
	if err != nil {
		e.logger.Warn("using default catch config", "error", err)
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard)\n", flagDifficulty)
			os.Exit(1)
		}
		config.ApplyCatchPreset(&cfg, preset)
	}
	e.catch = cfg

	var kv storage.KV
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved after exit.")
		kv = storage.NewMemory()
	} else {
		e.store = store
		kv = store
	}
	e.repo = progression.NewRepository(kv, e.logger)
	return e
}

// services builds the feature set of the local player.
func (e *env) services(seed int64) *tui.Services {
	return tui.NewServices(e.repo, tui.ServiceOptions{
		History: e.store,
		Catch:   e.catch,
		Player:  flagPlayer,
		Seed:    seed,
		Logger:  e.logger,
	})
}

// Close releases the store and the log file.
func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func newLogger(interactive bool) (*log.Logger, *os.File) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	var (
		w    io.Writer = os.Stderr
		file *os.File
	)
	if interactive {
		w = io.Discard
		if path := logPath(); path != "" {
			if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); openErr == nil {
				w, file = f, f
			}
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pawpark",
		Level:           level,
	}), file
}

func logPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".pawpark")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "pawpark.log")
}
