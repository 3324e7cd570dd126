package tui

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/games/catch"
	"github.com/vovakirdan/pawpark/internal/guess"
	"github.com/vovakirdan/pawpark/internal/pets"
	"github.com/vovakirdan/pawpark/internal/platform/clock"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/shop"
	"github.com/vovakirdan/pawpark/internal/storage"
)

// Services is everything the screens of one player share: the progression
// repository and the features built on it. A local run has one; the SSH
// server builds one per connection.
type Services struct {
	Repo       *progression.Repository
	Care       *pets.Care
	Shop       *shop.Shop
	Guess      *guess.Game
	History    *storage.Store // nil when sessions are not recorded
	Catch      config.CatchConfig
	Difficulty *config.DifficultyManager
	Player     string
	Rand       *rand.Rand
	Clock      clock.Clock
	Logger     *log.Logger

	mu     sync.Mutex
	active *catch.Session
}

// ServiceOptions configures NewServices.
type ServiceOptions struct {
	History *storage.Store
	Catch   config.CatchConfig
	Player  string
	Seed    int64 // 0 seeds from the clock
	Clock   clock.Clock
	Logger  *log.Logger
}

// NewServices wires the features of one player over repo.
func NewServices(repo *progression.Repository, opts ServiceOptions) *Services {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	return &Services{
		Repo:       repo,
		Care:       pets.NewCare(repo, opts.Logger),
		Shop:       shop.New(repo, opts.Logger),
		Guess:      guess.New(repo, opts.Clock, rng, opts.Logger),
		History:    opts.History,
		Catch:      opts.Catch,
		Difficulty: config.NewDifficultyManager(opts.Catch.Difficulty),
		Player:     opts.Player,
		Rand:       rng,
		Clock:      opts.Clock,
		Logger:     opts.Logger,
	}
}

// NewCatchSession mounts a catch session on a cols by rows field and makes
// it the active one.
func (s *Services) NewCatchSession(ctx context.Context, cols, rows int) *catch.Session {
	opts := catch.Options{
		Rand:       s.Rand,
		Difficulty: s.Difficulty,
		Logger:     s.Logger,
		PlayerName: s.Player,
	}
	if s.History != nil {
		opts.Recorder = s.History
	}
	sess := catch.NewSession(ctx, s.Repo, catch.TerminalGeometry(s.Catch, cols, rows), opts)

	s.mu.Lock()
	s.active = sess
	s.mu.Unlock()
	return sess
}

// CloseActive ends the active catch session, committing its bones if it is
// still running. Hosts call it once the program has stopped.
func (s *Services) CloseActive(ctx context.Context) {
	s.mu.Lock()
	sess := s.active
	s.active = nil
	s.mu.Unlock()

	if sess == nil || sess.State() != catch.StateRunning {
		return
	}
	out := sess.Close(ctx)
	s.Logger.Info("closed running session on exit", "collected", out.Collected, "committed", out.Committed())
}
