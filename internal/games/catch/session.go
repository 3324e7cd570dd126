package catch

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Reason records why a session ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonStrikes
	ReasonClosed
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonStrikes:
		return "strikes"
	case ReasonClosed:
		return "closed"
	default:
		return "none"
	}
}

// Progression is the durable state a session reads at mount and commits to
// at the end. *progression.Repository implements it.
type Progression interface {
	Bones(ctx context.Context) int
	AddBones(ctx context.Context, v int) (int, error)
	Unlocked(ctx context.Context) []progression.PetID
	Equipped(ctx context.Context) map[progression.PetID]progression.Skin
}

// Recorder keeps the history of committed sessions. *storage.Store
// implements it.
type Recorder interface {
	SaveSession(ctx context.Context, rec storage.SessionRecord) (int64, error)
	BestSession(ctx context.Context, player string) (int, error)
}

// Outcome is what the player sees when a session ends.
type Outcome struct {
	Collected int
	Strikes   int
	Total     int // bones total after the commit; unchanged when it failed
	Best      int // best recorded session, 0 without a recorder
	Reason    Reason
	CommitErr error
}

// Committed reports whether the collected bones were saved.
func (o Outcome) Committed() bool {
	return o.CommitErr == nil
}

// Options configures a session. Zero values pick sensible defaults.
type Options struct {
	Rand       Rand
	NewID      func() string
	Difficulty *config.DifficultyManager
	Recorder   Recorder
	Logger     *log.Logger
	PlayerName string
}

// Snapshot is a copy of the session for rendering.
type Snapshot struct {
	State     State
	Collected int
	Strikes   int
	Total     int
	Ticks     uint64
	PlayerX   float64
	Pet       progression.PetID
	Skin      progression.Skin
	Objects   []Object
}

// Session is one mount of the catch game: a fixed dog and any number of
// runs. It is not safe for concurrent use; hosts deliver spawn ticks,
// simulation ticks and input from a single goroutine.
type Session struct {
	prog       Progression
	recorder   Recorder
	logger     *log.Logger
	rng        Rand
	spawner    *Spawner
	difficulty *config.DifficultyManager
	name       string

	geo    Geometry
	player Player
	pet    progression.PetID
	skin   progression.Skin

	state     State
	objects   []Object
	collected int
	strikes   int
	ticks     uint64
	total     int
	runs      int
	outcome   Outcome
}

// NewSession mounts a session: it picks the dog from the unlocked roster and
// resolves its skin. The session starts Idle.
func NewSession(ctx context.Context, prog Progression, geo Geometry, opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Difficulty == nil {
		opts.Difficulty = config.NewDifficultyManager(config.DefaultCatchConfig().Difficulty)
	}

	s := &Session{
		prog:       prog,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
		rng:        opts.Rand,
		spawner:    NewSpawner(opts.Rand, opts.NewID),
		difficulty: opts.Difficulty,
		name:       opts.PlayerName,
		geo:        geo,
		player:     NewPlayer(geo),
	}
	s.pet, s.skin = s.pickPet(ctx)
	s.total = prog.Bones(ctx)
	s.logger.Debug("session mounted", "pet", s.pet, "skin", s.skin, "total", s.total)
	return s
}

func (s *Session) pickPet(ctx context.Context) (progression.PetID, progression.Skin) {
	pet := progression.DefaultPet
	if roster := s.prog.Unlocked(ctx); len(roster) > 0 {
		i := int(s.rng.Float64() * float64(len(roster)))
		pet = roster[min(i, len(roster)-1)]
	}
	if !progression.Known(pet) {
		pet = progression.DefaultPet
	}

	skin := s.prog.Equipped(ctx)[pet]
	if !progression.ValidSkin(skin) {
		skin = progression.SkinBase
	}
	return pet, skin
}

// Start begins a run from Idle or Ended. It resets the score, strikes and
// live objects. Starting a running session does nothing.
func (s *Session) Start() {
	if s.state == StateRunning {
		return
	}
	s.state = StateRunning
	s.objects = nil
	s.collected = 0
	s.strikes = 0
	s.ticks = 0
	s.outcome = Outcome{}
	s.runs++
	s.logger.Debug("session started", "run", s.runs, "pet", s.pet)
}

// Restart begins a new run with the same dog. It only acts on an ended
// session and reports whether it did.
func (s *Session) Restart() bool {
	if s.state != StateEnded {
		return false
	}
	s.Start()
	return true
}

// SpawnTick runs the spawn process once. It reports whether an object was
// added; outside a running session it does nothing.
func (s *Session) SpawnTick() bool {
	if s.state != StateRunning {
		return false
	}
	obj, ok := s.spawner.Next(s.geo, s.difficulty.SpeedFactor(s.collected))
	if !ok {
		return false
	}
	s.objects = admit(s.objects, obj, s.geo.MaxLive)
	return true
}

// SimTick runs the simulation process once. When the tick takes strikes to
// the limit the session ends and commits before SimTick returns; ended
// reports that transition. Outside a running session it does nothing.
func (s *Session) SimTick(ctx context.Context) (res StepResult, ended bool) {
	if s.state != StateRunning {
		return StepResult{}, false
	}

	s.objects, res = Step(s.objects, s.player.Bounds(s.geo), s.geo)
	s.ticks++
	s.collected += res.Caught

	if res.Struck > 0 {
		s.strikes = min(s.strikes+res.Struck, s.geo.MaxStrikes)
		if s.strikes >= s.geo.MaxStrikes {
			s.end(ctx, ReasonStrikes)
			return res, true
		}
	}
	return res, false
}

// Close ends the session on behalf of the player. A running session commits
// what it collected; an ended session returns its existing outcome.
func (s *Session) Close(ctx context.Context) Outcome {
	switch s.state {
	case StateRunning:
		s.end(ctx, ReasonClosed)
	case StateIdle:
		s.state = StateEnded
		s.outcome = Outcome{Total: s.total, Reason: ReasonClosed}
	}
	return s.outcome
}

// end is the single transition into Ended.
func (s *Session) end(ctx context.Context, reason Reason) {
	s.state = StateEnded
	out := Outcome{
		Collected: s.collected,
		Strikes:   s.strikes,
		Total:     s.total,
		Reason:    reason,
	}

	total, err := s.prog.AddBones(ctx, s.collected)
	if err != nil {
		out.CommitErr = err
		s.logger.Warn("could not save bones", "collected", s.collected, "error", err)
	} else {
		s.total = total
		out.Total = total
		out.Best = s.record(ctx)
	}

	s.outcome = out
	s.logger.Info("session ended",
		"reason", reason,
		"collected", out.Collected,
		"strikes", out.Strikes,
		"total", out.Total,
		"ticks", s.ticks,
	)
}

// record appends the run to the history and returns the best run.
// History is best effort: failures are logged, never surfaced.
func (s *Session) record(ctx context.Context) int {
	if s.recorder == nil {
		return 0
	}
	_, err := s.recorder.SaveSession(ctx, storage.SessionRecord{
		Player:    s.name,
		PetID:     string(s.pet),
		Collected: s.collected,
		Strikes:   s.strikes,
	})
	if err != nil {
		s.logger.Warn("could not record session", "error", err)
	}
	best, err := s.recorder.BestSession(ctx, s.name)
	if err != nil {
		s.logger.Warn("could not read best session", "error", err)
		return s.collected
	}
	return max(best, s.collected)
}

// Begin starts a drag gesture.
func (s *Session) Begin() {
	if s.state == StateEnded {
		return
	}
	s.player.Begin()
}

// Move applies the cumulative drag delta since Begin.
func (s *Session) Move(dx float64) {
	if s.state == StateEnded {
		return
	}
	s.player.Move(dx, s.geo)
}

// Nudge moves the dog by dx as one gesture (keyboard control).
func (s *Session) Nudge(dx float64) {
	if s.state == StateEnded {
		return
	}
	s.player.Nudge(dx, s.geo)
}

// Place moves the dog to an absolute position.
func (s *Session) Place(x float64) {
	if s.state == StateEnded {
		return
	}
	s.player.Place(x, s.geo)
}

// Resize lays the session out on a newly measured field. The first
// measurement centers the dog; later ones re-clamp it.
func (s *Session) Resize(geo Geometry) {
	first := !s.geo.Measured()
	s.geo = geo
	if first {
		s.player = NewPlayer(geo)
		return
	}
	s.player.Resize(geo)
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Pet returns the dog chosen at mount.
func (s *Session) Pet() progression.PetID {
	return s.pet
}

// Skin returns the dog's skin.
func (s *Session) Skin() progression.Skin {
	return s.skin
}

// Geometry returns the current layout.
func (s *Session) Geometry() Geometry {
	return s.geo
}

// PlayerX returns the dog's position.
func (s *Session) PlayerX() float64 {
	return s.player.X()
}

// Outcome returns the result of the last run once it has ended.
func (s *Session) Outcome() (Outcome, bool) {
	return s.outcome, s.state == StateEnded
}

// Snapshot copies the session for rendering.
func (s *Session) Snapshot() Snapshot {
	objs := make([]Object, len(s.objects))
	copy(objs, s.objects)
	return Snapshot{
		State:     s.state,
		Collected: s.collected,
		Strikes:   s.strikes,
		Total:     s.total,
		Ticks:     s.ticks,
		PlayerX:   s.player.X(),
		Pet:       s.pet,
		Skin:      s.skin,
		Objects:   objs,
	}
}
