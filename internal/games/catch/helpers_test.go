package catch

import (
	"context"
	"errors"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

var errStorageDown = errors.New("storage down")

// seqRand returns a fixed sequence of draws, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func newSeqRand(vals ...float64) *seqRand {
	return &seqRand{vals: vals}
}

func (r *seqRand) Float64() float64 {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v
}

// fakeProgression records commits and can fail them.
type fakeProgression struct {
	bones    int
	roster   []progression.PetID
	equipped map[progression.PetID]progression.Skin
	addErr   error
	commits  []int
}

func (f *fakeProgression) Bones(context.Context) int { return f.bones }

func (f *fakeProgression) AddBones(_ context.Context, v int) (int, error) {
	f.commits = append(f.commits, v)
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.bones += v
	return f.bones, nil
}

func (f *fakeProgression) Unlocked(context.Context) []progression.PetID { return f.roster }

func (f *fakeProgression) Equipped(context.Context) map[progression.PetID]progression.Skin {
	return f.equipped
}

// fakeRecorder keeps session records in memory.
type fakeRecorder struct {
	records []storage.SessionRecord
}

func (f *fakeRecorder) SaveSession(_ context.Context, rec storage.SessionRecord) (int64, error) {
	f.records = append(f.records, rec)
	return int64(len(f.records)), nil
}

func (f *fakeRecorder) BestSession(_ context.Context, player string) (int, error) {
	best := 0
	for _, r := range f.records {
		if r.Player == player && r.Collected > best {
			best = r.Collected
		}
	}
	return best, nil
}

// refGeometry is the 390x844 portrait field at scale 1.
func refGeometry() Geometry {
	return NewGeometry(config.DefaultCatchConfig(), 390, 844)
}

func newTestSession(prog Progression, rng Rand) *Session {
	n := 0
	return NewSession(context.Background(), prog, refGeometry(), Options{
		Rand: rng,
		NewID: func() string {
			n++
			return string(rune('a' + n%26))
		},
	})
}

// onPlayer returns an object of kind k that overlaps the dog after one tick.
func onPlayer(s *Session, k Kind) Object {
	geo := s.Geometry()
	return Object{ID: k.String(), Kind: k, X: s.PlayerX(), Y: geo.PlayerY, Speed: 1}
}

func newRepo() (*progression.Repository, *storage.Memory) {
	kv := storage.NewMemory()
	return progression.NewRepository(kv, nil), kv
}
