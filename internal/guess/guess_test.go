package guess

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/pawpark/internal/platform/clock"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

// seqInt returns fixed draws, repeating the last one.
type seqInt struct {
	vals []int
	i    int
}

func (r *seqInt) Intn(n int) int {
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v % n
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newGame(draws ...int) (*Game, *progression.Repository, *clock.Manual) {
	repo := progression.NewRepository(storage.NewMemory(), nil)
	clk := clock.NewManual(epoch)
	return New(repo, clk, &seqInt{vals: draws}, nil), repo, clk
}

func TestFirstLoadStartsRound(t *testing.T) {
	g, _, _ := newGame(1, 4)
	st, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if st.Locked || st.AttemptsLeft != Attempts || st.Prize != progression.Beagle {
		t.Errorf("unexpected status %+v", st)
	}
	if st.Pending != ResultNone {
		t.Errorf("fresh round should have no pending result, got %q", st.Pending)
	}
}

func TestWinGrantsSkinAndLocks(t *testing.T) {
	ctx := context.Background()
	g, repo, clk := newGame(1, 4)
	g.Load(ctx)

	p, err := g.Pick(ctx, 4)
	if err != nil {
		t.Fatalf("Pick() failed: %v", err)
	}
	if !p.Hit || p.Result != ResultWin || p.AttemptsLeft != 0 {
		t.Errorf("unexpected pick %+v", p)
	}
	if !p.NextAt.Equal(epoch.Add(Cooldown)) {
		t.Errorf("NextAt = %v, expected %v", p.NextAt, epoch.Add(Cooldown))
	}

	var owns bool
	repo.View(ctx, func(tx *progression.Tx) { owns = tx.OwnsSkin(progression.Beagle, progression.SkinAlt) })
	if !owns {
		t.Error("winning should grant the prize dog's alt skin")
	}

	if _, err := g.Pick(ctx, 0); !errors.Is(err, ErrCooldown) {
		t.Errorf("pick during cooldown error = %v, expected ErrCooldown", err)
	}

	clk.Advance(time.Hour)
	st, _ := g.Load(ctx)
	if !st.Locked || st.Pending != ResultWin {
		t.Errorf("status after win = %+v, expected locked with pending win", st)
	}
	if got := st.Remaining(clk.Now()); got != 23*time.Hour {
		t.Errorf("Remaining = %v, expected 23h", got)
	}

	st, _ = g.Load(ctx)
	if st.Pending != ResultNone {
		t.Errorf("pending result should be shown once, got %q again", st.Pending)
	}
}

func TestTwoMissesLose(t *testing.T) {
	ctx := context.Background()
	g, repo, _ := newGame(0, 4)
	g.Load(ctx)

	p, err := g.Pick(ctx, 0)
	if err != nil {
		t.Fatalf("Pick() failed: %v", err)
	}
	if p.Hit || p.AttemptsLeft != 1 || p.Result != ResultNone {
		t.Errorf("first miss = %+v", p)
	}
	if !p.NextAt.IsZero() {
		t.Error("first miss should not lock")
	}

	p, _ = g.Pick(ctx, 1)
	if p.Result != ResultLose || p.AttemptsLeft != 0 || p.NextAt.IsZero() {
		t.Errorf("second miss = %+v, expected a locked loss", p)
	}

	var owns bool
	repo.View(ctx, func(tx *progression.Tx) { owns = tx.OwnsSkin(progression.Pug, progression.SkinAlt) })
	if owns {
		t.Error("losing must not grant a skin")
	}

	st, _ := g.Load(ctx)
	if st.Pending != ResultLose {
		t.Errorf("Pending = %q, expected lose", st.Pending)
	}
}

func TestReloadKeepsRoundInProgress(t *testing.T) {
	ctx := context.Background()
	g, repo, clk := newGame(2, 7)
	g.Load(ctx)
	g.Pick(ctx, 0)

	// A new game over the same store sees the spent attempt.
	reloaded := New(repo, clk, &seqInt{vals: []int{0}}, nil)
	st, _ := reloaded.Load(ctx)
	if st.AttemptsLeft != 1 || st.Prize != progression.Maltese {
		t.Errorf("status after reload = %+v, expected 1 attempt for %s", st, progression.Maltese)
	}

	// The hidden cell survives too.
	p, _ := reloaded.Pick(ctx, 7)
	if !p.Hit {
		t.Error("hidden cell should not be redrawn on reload")
	}
}

func TestNewRoundAfterCooldown(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGame(1, 4, 3)
	g.Load(ctx)
	g.Pick(ctx, 4)

	clk.Advance(Cooldown)
	st, _ := g.Load(ctx)
	if st.Locked || st.AttemptsLeft != Attempts {
		t.Errorf("status after cooldown = %+v, expected an open round", st)
	}
	if st.Prize != progression.Rottweiler {
		t.Errorf("Prize = %s, expected a fresh draw", st.Prize)
	}
	if st.Pending != ResultNone {
		t.Error("new round clears the pending result")
	}
}

func TestPeekHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGame(1, 4)

	if st := g.Peek(ctx); st.Locked || st.AttemptsLeft != Attempts {
		t.Errorf("Peek() before any round = %+v", st)
	}

	g.Load(ctx)
	g.Pick(ctx, 0)
	if st := g.Peek(ctx); st.AttemptsLeft != 1 || st.Prize != progression.Beagle {
		t.Errorf("Peek() mid-round = %+v", st)
	}

	g.Pick(ctx, 1)
	st := g.Peek(ctx)
	if !st.Locked || st.Pending != ResultLose {
		t.Errorf("Peek() after a loss = %+v", st)
	}
	if again := g.Peek(ctx); again.Pending != ResultLose {
		t.Error("Peek() must not clear the pending result")
	}
	if st, _ := g.Load(ctx); st.Pending != ResultLose {
		t.Error("Load() should still report the pending result after Peek()")
	}

	clk.Advance(Cooldown)
	if st := g.Peek(ctx); st.Locked {
		t.Errorf("Peek() after cooldown = %+v, expected unlocked", st)
	}
}

func TestPickWithoutLoad(t *testing.T) {
	g, _, _ := newGame(0, 5)
	p, err := g.Pick(context.Background(), 5)
	if err != nil {
		t.Fatalf("Pick() failed: %v", err)
	}
	if !p.Hit || p.Prize != progression.Pug {
		t.Errorf("unexpected pick %+v", p)
	}
}

func TestPickBadCell(t *testing.T) {
	g, _, _ := newGame(0)
	for _, cell := range []int{-1, Cells} {
		if _, err := g.Pick(context.Background(), cell); !errors.Is(err, ErrBadCell) {
			t.Errorf("Pick(%d) error = %v, expected ErrBadCell", cell, err)
		}
	}
}

func TestCorruptStateDefaults(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	kv.Set(ctx, progression.KeyGuessNextAt, "soon")
	kv.Set(ctx, progression.KeyGuessDog, "dog-77")
	repo := progression.NewRepository(kv, nil)

	g := New(repo, clock.NewManual(epoch), &seqInt{vals: []int{3}}, nil)
	st, err := g.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if st.Locked || st.AttemptsLeft != Attempts || !progression.Known(st.Prize) {
		t.Errorf("corrupt state should start a clean round, got %+v", st)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Minute, "00:00:00"},
		{time.Hour + 2*time.Minute + 3*time.Second + 900*time.Millisecond, "01:02:03"},
		{Cooldown, "24:00:00"},
	}
	for _, tc := range tests {
		if got := FormatRemaining(tc.d); got != tc.want {
			t.Errorf("FormatRemaining(%v) = %q, expected %q", tc.d, got, tc.want)
		}
	}
}
