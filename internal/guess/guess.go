// Package guess runs the daily "guess the cell" game. A round hides a prize
// under one of nine cells and allows two picks. Finding it wins the prize
// dog's alternate skin; either way the game then locks for a day.
package guess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/platform/clock"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/skins"
)

// Round rules.
const (
	Cells    = 9
	Attempts = 2
	Cooldown = 24 * time.Hour
)

var (
	// ErrCooldown is returned when picking while the game is locked.
	ErrCooldown = errors.New("guess: locked until the next round")
	// ErrBadCell is returned for cells outside 0..Cells-1.
	ErrBadCell = errors.New("guess: no such cell")
)

// Result is the outcome of a finished round.
type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultLose Result = "lose"
)

// Status is the state of the game as the player sees it.
type Status struct {
	Locked       bool
	NextAt       time.Time // zero while a round is open
	AttemptsLeft int
	Prize        progression.PetID
	// Pending is the result of the round that caused the lock. It is
	// reported by one Load and then cleared.
	Pending Result
}

// Remaining returns how long until the next round.
func (s Status) Remaining(now time.Time) time.Duration {
	if !s.Locked {
		return 0
	}
	return max(0, s.NextAt.Sub(now))
}

// Pick is the outcome of one pick.
type Pick struct {
	Cell         int
	Hit          bool
	AttemptsLeft int
	Result       Result // ResultNone while attempts remain
	Prize        progression.PetID
	NextAt       time.Time
}

// Rand draws uniform integers in [0, n). *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Game is the guess state machine over the progression store.
type Game struct {
	repo   *progression.Repository
	clock  clock.Clock
	rng    Rand
	logger *log.Logger
}

// New creates a game.
func New(repo *progression.Repository, clk clock.Clock, rng Rand, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{repo: repo, clock: clk, rng: rng, logger: logger}
}

// Load opens the game. When the last lock has expired, or no round was ever
// played, a new round starts with a fresh prize dog. A pending result is
// returned once and cleared.
func (g *Game) Load(ctx context.Context) (Status, error) {
	var st Status
	err := g.repo.Update(ctx, func(tx *progression.Tx) error {
		var err error
		st, err = g.refresh(tx)
		if err != nil || st.Pending == ResultNone {
			return err
		}
		return tx.Remove(progression.KeyGuessPending)
	})
	return st, err
}

// Peek reports the stored state without starting a round or clearing a
// pending result. A round that would start on the next Load reads as open
// with full attempts.
func (g *Game) Peek(ctx context.Context) Status {
	var st Status
	g.repo.View(ctx, func(tx *progression.Tx) {
		nextAtMS := tx.Int64(progression.KeyGuessNextAt, 0)
		st = Status{AttemptsLeft: Attempts, Prize: g.prize(tx)}
		switch _, open := tx.String(progression.KeyGuessAttempt); {
		case nextAtMS > g.clock.Now().UnixMilli():
			st.Locked = true
			st.NextAt = time.UnixMilli(nextAtMS).UTC()
			st.AttemptsLeft = g.attempts(tx)
			st.Pending = pending(tx)
		case nextAtMS == 0 && open:
			st.AttemptsLeft = g.attempts(tx)
		}
	})
	return st
}

// Pick uncovers cell. The hidden cell is drawn on the first pick of a round.
func (g *Game) Pick(ctx context.Context, cell int) (Pick, error) {
	if cell < 0 || cell >= Cells {
		return Pick{}, fmt.Errorf("guess: pick %d: %w", cell, ErrBadCell)
	}

	var p Pick
	err := g.repo.Update(ctx, func(tx *progression.Tx) error {
		st, err := g.refresh(tx)
		if err != nil {
			return err
		}
		if st.Locked {
			return ErrCooldown
		}

		correct := tx.Int(progression.KeyGuessCell, -1)
		if correct < 0 || correct >= Cells {
			correct = g.rng.Intn(Cells)
			if err := tx.SetInt(progression.KeyGuessCell, correct); err != nil {
				return err
			}
		}

		p = Pick{Cell: cell, Prize: st.Prize, AttemptsLeft: st.AttemptsLeft}
		if cell == correct {
			p.Hit = true
			p.AttemptsLeft = 0
			p.Result = ResultWin
			if err := skins.Grant(tx, st.Prize, progression.SkinAlt); err != nil {
				return err
			}
		} else {
			p.AttemptsLeft = max(0, st.AttemptsLeft-1)
			if p.AttemptsLeft == 0 {
				p.Result = ResultLose
			}
		}

		if err := tx.SetInt(progression.KeyGuessAttempt, p.AttemptsLeft); err != nil {
			return err
		}
		if p.Result == ResultNone {
			return nil
		}
		return g.lock(tx, &p)
	})
	if err != nil {
		return p, err
	}

	g.logger.Info("guess picked", "cell", cell, "hit", p.Hit, "attempts", p.AttemptsLeft, "result", p.Result)
	return p, nil
}

// lock closes the round until one cooldown from now.
func (g *Game) lock(tx *progression.Tx, p *Pick) error {
	p.NextAt = g.clock.Now().Add(Cooldown)
	if err := tx.SetInt64(progression.KeyGuessNextAt, p.NextAt.UnixMilli()); err != nil {
		return err
	}
	return tx.SetString(progression.KeyGuessPending, string(p.Result))
}

// refresh reads the stored state, starting a new round when one is due.
func (g *Game) refresh(tx *progression.Tx) (Status, error) {
	now := g.clock.Now()
	nextAtMS := tx.Int64(progression.KeyGuessNextAt, 0)
	_, open := tx.String(progression.KeyGuessAttempt)

	if nextAtMS > now.UnixMilli() {
		return Status{
			Locked:       true,
			NextAt:       time.UnixMilli(nextAtMS).UTC(),
			AttemptsLeft: g.attempts(tx),
			Prize:        g.prize(tx),
			Pending:      pending(tx),
		}, nil
	}

	if nextAtMS == 0 && open {
		// A round is in progress.
		return Status{AttemptsLeft: g.attempts(tx), Prize: g.prize(tx)}, nil
	}

	prize := progression.Catalog[g.rng.Intn(len(progression.Catalog))].ID
	if err := g.startRound(tx, prize); err != nil {
		return Status{}, err
	}
	g.logger.Debug("guess round started", "prize", prize)
	return Status{AttemptsLeft: Attempts, Prize: prize}, nil
}

func (g *Game) startRound(tx *progression.Tx, prize progression.PetID) error {
	if err := tx.Remove(progression.KeyGuessNextAt); err != nil {
		return err
	}
	if err := tx.SetInt(progression.KeyGuessAttempt, Attempts); err != nil {
		return err
	}
	if err := tx.SetString(progression.KeyGuessDog, string(prize)); err != nil {
		return err
	}
	if err := tx.Remove(progression.KeyGuessCell); err != nil {
		return err
	}
	return tx.Remove(progression.KeyGuessPending)
}

func (g *Game) attempts(tx *progression.Tx) int {
	return max(0, min(Attempts, tx.Int(progression.KeyGuessAttempt, Attempts)))
}

func (g *Game) prize(tx *progression.Tx) progression.PetID {
	v, _ := tx.String(progression.KeyGuessDog)
	if id := progression.PetID(v); progression.Known(id) {
		return id
	}
	return progression.DefaultPet
}

func pending(tx *progression.Tx) Result {
	switch v, _ := tx.String(progression.KeyGuessPending); Result(v) {
	case ResultWin:
		return ResultWin
	case ResultLose:
		return ResultLose
	default:
		return ResultNone
	}
}

// FormatRemaining renders a cooldown as HH:MM:SS.
func FormatRemaining(d time.Duration) string {
	d = max(0, d).Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second))
}
