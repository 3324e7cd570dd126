package catch

import (
	"context"
	"testing"
	"time"
)

func runLoop(ctx context.Context, l *Loop) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		done <- l.Run(ctx)
	}()
	return done
}

func TestLoopEndsOnThirdStrike(t *testing.T) {
	prog := &fakeProgression{}
	// Every draw spawns a no-dogs sign near the right edge
	s := newTestSession(prog, newSeqRand(0.99))
	s.Place(252)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out Outcome
	select {
	case out = <-runLoop(ctx, NewLoop(s, 20)):
	case <-ctx.Done():
		t.Fatal("loop did not end")
	}

	if out.Reason != ReasonStrikes || out.Strikes != 3 {
		t.Errorf("outcome = %+v, expected to end on three strikes", out)
	}
	if len(prog.commits) != 1 {
		t.Errorf("commits = %v, expected one", prog.commits)
	}
}

func TestLoopStopFreezesSession(t *testing.T) {
	prog := &fakeProgression{}
	s := newTestSession(prog, newSeqRand(0.1))
	l := NewLoop(s, 10)
	done := runLoop(context.Background(), l)

	time.Sleep(50 * time.Millisecond)
	l.Stop()

	var out Outcome
	select {
	case out = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if out.Reason != ReasonClosed {
		t.Errorf("reason = %s, expected closed", out.Reason)
	}

	before := s.Snapshot()
	time.Sleep(30 * time.Millisecond)
	after := s.Snapshot()
	if before.Ticks != after.Ticks || len(before.Objects) != len(after.Objects) {
		t.Error("session changed after Run returned")
	}
	if len(prog.commits) != 1 {
		t.Errorf("commits = %v, expected one", prog.commits)
	}
}

func TestLoopCancelCommits(t *testing.T) {
	prog := &fakeProgression{bones: 3}
	s := newTestSession(prog, newSeqRand(0.1))
	ctx, cancel := context.WithCancel(context.Background())
	done := runLoop(ctx, NewLoop(s, 10))

	cancel()
	select {
	case out := <-done:
		if !out.Committed() || out.Total != 3 {
			t.Errorf("unexpected outcome %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoopAppliesInbox(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.1))
	l := NewLoop(s, 1)
	done := runLoop(context.Background(), l)

	l.Inbox <- PlaceAt{X: 100}
	l.Inbox <- DragStart{}
	l.Inbox <- DragMove{DX: -500}
	time.Sleep(30 * time.Millisecond)
	l.Stop()
	<-done

	if s.PlayerX() != 8 {
		t.Errorf("PlayerX = %g, expected 8", s.PlayerX())
	}
}

func TestLoopOnTickRunsOnLoopGoroutine(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.1))
	l := NewLoop(s, 10)
	ticks := 0
	l.OnTick = func(*Session, StepResult) { ticks++ }
	done := runLoop(context.Background(), l)

	time.Sleep(40 * time.Millisecond)
	l.Stop()
	<-done

	if ticks == 0 {
		t.Error("OnTick never ran")
	}
}
