package catch

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/progression"
)

func TestMountPicksFromRoster(t *testing.T) {
	prog := &fakeProgression{
		roster:   []progression.PetID{progression.Pug, progression.Maltese},
		equipped: map[progression.PetID]progression.Skin{progression.Maltese: progression.SkinAlt},
	}
	s := newTestSession(prog, newSeqRand(0.6))

	if s.Pet() != progression.Maltese {
		t.Errorf("Pet() = %s, expected %s", s.Pet(), progression.Maltese)
	}
	if s.Skin() != progression.SkinAlt {
		t.Errorf("Skin() = %s, expected alt", s.Skin())
	}
	if s.State() != StateIdle {
		t.Errorf("new session state = %s, expected idle", s.State())
	}
}

func TestMountFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		roster   []progression.PetID
		equipped map[progression.PetID]progression.Skin
		wantPet  progression.PetID
		wantSkin progression.Skin
	}{
		{"empty roster", nil, nil, progression.Pug, progression.SkinBase},
		{"unknown pet", []progression.PetID{"dog-9"}, nil, progression.Pug, progression.SkinBase},
		{"bad skin", []progression.PetID{progression.Beagle},
			map[progression.PetID]progression.Skin{progression.Beagle: "gold"},
			progression.Beagle, progression.SkinBase},
		{"draw at upper bound", []progression.PetID{progression.Pug, progression.Rottweiler}, nil,
			progression.Rottweiler, progression.SkinBase},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog := &fakeProgression{roster: tc.roster, equipped: tc.equipped}
			s := newTestSession(prog, newSeqRand(0.9999999))
			if s.Pet() != tc.wantPet || s.Skin() != tc.wantSkin {
				t.Errorf("mounted %s/%s, expected %s/%s", s.Pet(), s.Skin(), tc.wantPet, tc.wantSkin)
			}
		})
	}
}

func TestMountReadsRepositoryDefaults(t *testing.T) {
	repo, kv := newRepo()
	kv.Set(context.Background(), progression.KeyUnlocked, "not json")

	s := newTestSession(repo, newSeqRand(0.5))
	if s.Pet() != progression.DefaultPet {
		t.Errorf("corrupt roster should mount %s, got %s", progression.DefaultPet, s.Pet())
	}
}

func TestTicksIgnoredUntilStarted(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.1))

	if s.SpawnTick() {
		t.Error("idle session should not spawn")
	}
	if res, ended := s.SimTick(context.Background()); ended || res != (StepResult{}) {
		t.Error("idle session should not simulate")
	}
	if len(s.Snapshot().Objects) != 0 {
		t.Error("idle session has objects")
	}
}

func TestSpawnTickAddsObjects(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.40))
	s.Start()

	for i := 0; i < 30; i++ {
		if !s.SpawnTick() {
			t.Fatalf("spawn %d suppressed on a measured field", i)
		}
	}
	snap := s.Snapshot()
	if len(snap.Objects) != 18 {
		t.Errorf("live objects = %d, expected cap of 18", len(snap.Objects))
	}
	for _, o := range snap.Objects {
		if o.Kind != KindBone {
			t.Fatalf("draw 0.40 spawned %s", o.Kind)
		}
	}
}

func TestThirdStrikeEndsOnce(t *testing.T) {
	ctx := context.Background()
	prog := &fakeProgression{bones: 10}
	s := newTestSession(prog, newSeqRand(0.1))
	s.Start()

	s.collected = 4
	s.strikes = 2
	s.objects = []Object{onPlayer(s, KindTrash)}

	_, ended := s.SimTick(ctx)
	if !ended {
		t.Fatal("third strike should end the session")
	}
	if s.State() != StateEnded {
		t.Fatalf("state = %s, expected ended", s.State())
	}
	if len(prog.commits) != 1 || prog.commits[0] != 4 {
		t.Errorf("commits = %v, expected exactly [4]", prog.commits)
	}

	out, ok := s.Outcome()
	if !ok {
		t.Fatal("Outcome() should be available after the end")
	}
	if out.Collected != 4 || out.Strikes != 3 || out.Total != 14 || out.Reason != ReasonStrikes {
		t.Errorf("unexpected outcome %+v", out)
	}
	if !out.Committed() {
		t.Errorf("commit should have succeeded: %v", out.CommitErr)
	}
}

func TestTwoHazardsInOneTickEndOnce(t *testing.T) {
	prog := &fakeProgression{}
	s := newTestSession(prog, newSeqRand(0.1))
	s.Start()
	s.strikes = 2
	s.objects = []Object{onPlayer(s, KindTrash), onPlayer(s, KindNoDogs), onPlayer(s, KindBone)}

	_, ended := s.SimTick(context.Background())
	if !ended {
		t.Fatal("expected the session to end")
	}
	snap := s.Snapshot()
	if snap.Strikes != 3 {
		t.Errorf("strikes = %d, expected cap of 3", snap.Strikes)
	}
	if snap.Collected != 1 {
		t.Errorf("bone caught in the final tick should count, collected = %d", snap.Collected)
	}
	if len(prog.commits) != 1 {
		t.Errorf("commit ran %d times, expected once", len(prog.commits))
	}
}

func TestNothingMutatesAfterEnd(t *testing.T) {
	ctx := context.Background()
	prog := &fakeProgression{}
	s := newTestSession(prog, newSeqRand(0.1))
	s.Start()
	s.SpawnTick()
	s.SpawnTick()
	s.Close(ctx)

	before := s.Snapshot()
	for i := 0; i < 50; i++ {
		s.SpawnTick()
		s.SimTick(ctx)
		s.Begin()
		s.Move(100)
		s.Nudge(-40)
	}
	after := s.Snapshot()

	if len(after.Objects) != len(before.Objects) || after.Ticks != before.Ticks {
		t.Errorf("objects or ticks changed after end: %d/%d -> %d/%d",
			len(before.Objects), before.Ticks, len(after.Objects), after.Ticks)
	}
	if after.Collected != before.Collected || after.Strikes != before.Strikes {
		t.Error("score changed after end")
	}
	if after.PlayerX != before.PlayerX {
		t.Error("dog moved after end")
	}
	if len(prog.commits) != 1 {
		t.Errorf("commits = %v, expected one", prog.commits)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	prog := &fakeProgression{}
	s := newTestSession(prog, newSeqRand(0.1))
	s.Start()
	s.collected = 2

	first := s.Close(ctx)
	second := s.Close(ctx)
	if first != second {
		t.Errorf("second Close returned %+v, expected %+v", second, first)
	}
	if first.Reason != ReasonClosed {
		t.Errorf("reason = %s, expected closed", first.Reason)
	}
	if len(prog.commits) != 1 {
		t.Errorf("commits = %v, expected one", prog.commits)
	}
}

func TestCloseWhileIdleDoesNotCommit(t *testing.T) {
	prog := &fakeProgression{bones: 7}
	s := newTestSession(prog, newSeqRand(0.1))

	out := s.Close(context.Background())
	if len(prog.commits) != 0 {
		t.Errorf("idle close committed %v", prog.commits)
	}
	if out.Total != 7 || s.State() != StateEnded {
		t.Errorf("unexpected idle close outcome %+v in state %s", out, s.State())
	}
}

func TestCommitsAreAdditive(t *testing.T) {
	ctx := context.Background()
	repo, kv := newRepo()
	kv.Set(ctx, progression.KeyBones, "5")

	s := newTestSession(repo, newSeqRand(0.1))
	s.Start()
	s.collected = 3
	s.Close(ctx)

	s.Restart()
	s.collected = 4
	out := s.Close(ctx)

	if out.Total != 12 {
		t.Errorf("Total = %d, expected 5+3+4", out.Total)
	}
	if v, _, _ := kv.Get(ctx, progression.KeyBones); v != "12" {
		t.Errorf("stored total = %q, expected \"12\"", v)
	}
}

func TestCommitFromAbsentCurrency(t *testing.T) {
	ctx := context.Background()
	repo, kv := newRepo()
	s := newTestSession(repo, newSeqRand(0.1))

	if s.Snapshot().Total != 0 {
		t.Fatalf("absent currency should read 0, got %d", s.Snapshot().Total)
	}
	s.Start()
	s.collected = 12
	s.Close(ctx)

	if v, _, _ := kv.Get(ctx, progression.KeyBones); v != "12" {
		t.Errorf("stored total = %q, expected \"12\"", v)
	}
}

func TestCommitFailureKeepsTotal(t *testing.T) {
	ctx := context.Background()
	prog := &fakeProgression{bones: 20, addErr: errStorageDown}
	s := newTestSession(prog, newSeqRand(0.1))
	s.Start()
	s.collected = 6

	out := s.Close(ctx)
	if out.Committed() || !errors.Is(out.CommitErr, errStorageDown) {
		t.Errorf("CommitErr = %v, expected storage error", out.CommitErr)
	}
	if out.Collected != 6 {
		t.Errorf("outcome should still show collected bones, got %d", out.Collected)
	}
	if out.Total != 20 || s.Snapshot().Total != 20 {
		t.Errorf("in-memory total advanced on failure: %d", out.Total)
	}

	// The player may still restart
	if !s.Restart() || s.State() != StateRunning {
		t.Error("restart after failed commit should run again")
	}
}

func TestRestartResetsAndKeepsPet(t *testing.T) {
	ctx := context.Background()
	prog := &fakeProgression{roster: []progression.PetID{progression.Pug, progression.Beagle}}
	s := newTestSession(prog, newSeqRand(0.7, 0.1))
	pet := s.Pet()

	s.Start()
	if s.Restart() {
		t.Error("restart while running should do nothing")
	}
	s.SpawnTick()
	s.collected = 5
	s.strikes = 1
	s.Close(ctx)

	if !s.Restart() {
		t.Fatal("restart after end should run")
	}
	snap := s.Snapshot()
	if snap.Collected != 0 || snap.Strikes != 0 || len(snap.Objects) != 0 {
		t.Errorf("restart did not reset: %+v", snap)
	}
	if snap.Pet != pet {
		t.Errorf("restart changed pet from %s to %s", pet, snap.Pet)
	}
	if !s.SpawnTick() {
		t.Error("restarted session should spawn again")
	}
}

func TestRecorderReceivesCommittedRuns(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	s := NewSession(ctx, &fakeProgression{}, refGeometry(), Options{
		Rand:       newSeqRand(0.1),
		Recorder:   rec,
		PlayerName: "alice",
	})

	s.Start()
	s.collected = 9
	s.Close(ctx)
	s.Restart()
	s.collected = 4
	out := s.Close(ctx)

	if len(rec.records) != 2 {
		t.Fatalf("records = %d, expected 2", len(rec.records))
	}
	if rec.records[0].Player != "alice" || rec.records[0].PetID != string(progression.Pug) {
		t.Errorf("unexpected record %+v", rec.records[0])
	}
	if out.Best != 9 {
		t.Errorf("Best = %d, expected 9", out.Best)
	}
}

func TestRecorderSkippedOnFailedCommit(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	s := NewSession(ctx, &fakeProgression{addErr: errStorageDown}, refGeometry(), Options{
		Rand:     newSeqRand(0.1),
		Recorder: rec,
	})
	s.Start()
	s.Close(ctx)

	if len(rec.records) != 0 {
		t.Errorf("failed commit should not be recorded, got %d", len(rec.records))
	}
}

func TestResizeCentersOnFirstMeasurement(t *testing.T) {
	cfg := config.DefaultCatchConfig()
	s := NewSession(context.Background(), &fakeProgression{}, NewGeometry(cfg, 0, 0), Options{Rand: newSeqRand(0.1)})
	s.Start()

	if s.SpawnTick() {
		t.Error("unmeasured field should not spawn")
	}

	s.Resize(refGeometry())
	if s.PlayerX() != 130 {
		t.Errorf("PlayerX = %g, expected centered 130", s.PlayerX())
	}
	s.Place(250)
	s.Resize(NewGeometry(cfg, 300, 844))
	if s.PlayerX() > s.Geometry().MaxX() {
		t.Errorf("PlayerX = %g beyond MaxX %g after shrink", s.PlayerX(), s.Geometry().MaxX())
	}
	if !s.SpawnTick() {
		t.Error("measured field should spawn")
	}
}

func TestHardDifficultySpeedsUpSpawns(t *testing.T) {
	cfg := config.DefaultCatchConfig()
	config.ApplyCatchPreset(&cfg, config.DifficultyHard)

	s := NewSession(context.Background(), &fakeProgression{}, refGeometry(), Options{
		Rand:       newSeqRand(0.1, 0.1, 0),
		Difficulty: config.NewDifficultyManager(cfg.Difficulty),
	})
	s.Start()
	s.SpawnTick()

	obj := s.Snapshot().Objects[0]
	if obj.Speed < 2.3*1.3-1e-9 || obj.Speed > 2.3*1.3+1e-9 {
		t.Errorf("Speed = %g, expected %g", obj.Speed, 2.3*1.3)
	}
}
