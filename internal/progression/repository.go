package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pawpark/internal/storage"
)

// ErrInsufficientBones is returned when a purchase costs more than the balance.
var ErrInsufficientBones = errors.New("progression: not enough bones")

// Progress is a consistent read of the durable state.
type Progress struct {
	Bones      int
	Unlocked   []PetID
	Equipped   map[PetID]Skin
	OwnedSkins map[PetID][]Skin
	Food       int
	Water      int
}

// Repository is the single typed access path to durable progression.
// All reads and writes go through Update or View, which serialize on one
// mutex so read-modify-write sequences on a key never lose updates.
type Repository struct {
	kv     storage.KV
	logger *log.Logger
	mu     sync.Mutex
}

// NewRepository wraps kv. A nil logger discards output.
func NewRepository(kv storage.KV, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repository{kv: kv, logger: logger}
}

// Update runs fn with exclusive access to the store.
// The KV has no transactions: writes made before fn fails stay written.
func (r *Repository) Update(ctx context.Context, fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&Tx{ctx: ctx, repo: r})
}

// View runs fn with exclusive access for reading.
func (r *Repository) View(ctx context.Context, fn func(tx *Tx)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&Tx{ctx: ctx, repo: r})
}

// Snapshot reads every durable value with defaults applied.
func (r *Repository) Snapshot(ctx context.Context) Progress {
	var p Progress
	r.View(ctx, func(tx *Tx) {
		p = Progress{
			Bones:      tx.Bones(),
			Unlocked:   tx.Unlocked(),
			Equipped:   tx.Equipped(),
			OwnedSkins: tx.OwnedSkins(),
			Food:       tx.Supply(Food),
			Water:      tx.Supply(Water),
		}
	})
	return p
}

// Bones returns the current balance.
func (r *Repository) Bones(ctx context.Context) int {
	var n int
	r.View(ctx, func(tx *Tx) { n = tx.Bones() })
	return n
}

// AddBones adds v to the stored balance and returns the new total.
// On failure the stored balance is unchanged and the returned total is 0.
func (r *Repository) AddBones(ctx context.Context, v int) (int, error) {
	var total int
	err := r.Update(ctx, func(tx *Tx) error {
		next := tx.Bones() + v
		if next < 0 {
			next = 0
		}
		if err := tx.SetBones(next); err != nil {
			return err
		}
		total = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SpendBones subtracts cost from the balance and returns the new total.
// Returns ErrInsufficientBones without writing when the balance is short.
func (r *Repository) SpendBones(ctx context.Context, cost int) (int, error) {
	var total int
	err := r.Update(ctx, func(tx *Tx) error {
		next, err := tx.Spend(cost)
		total = next
		return err
	})
	return total, err
}

// Unlocked returns the unlocked roster in catalog order.
func (r *Repository) Unlocked(ctx context.Context) []PetID {
	var ids []PetID
	r.View(ctx, func(tx *Tx) { ids = tx.Unlocked() })
	return ids
}

// Equipped returns the equipped skin for every known dog.
func (r *Repository) Equipped(ctx context.Context) map[PetID]Skin {
	var m map[PetID]Skin
	r.View(ctx, func(tx *Tx) { m = tx.Equipped() })
	return m
}

// Tx is the view of the store handed to Update and View callbacks.
// It must not be retained after the callback returns.
type Tx struct {
	ctx  context.Context
	repo *Repository
}

// Bones returns the stored balance, 0 when absent or malformed.
func (tx *Tx) Bones() int {
	n := tx.Int(KeyBones, 0)
	if n < 0 {
		return 0
	}
	return n
}

// SetBones persists the balance.
func (tx *Tx) SetBones(n int) error {
	return tx.SetInt(KeyBones, n)
}

// Spend subtracts cost from the balance.
func (tx *Tx) Spend(cost int) (int, error) {
	balance := tx.Bones()
	if cost > balance {
		return balance, ErrInsufficientBones
	}
	next := balance - cost
	if err := tx.SetBones(next); err != nil {
		return balance, err
	}
	return next, nil
}

// Unlocked returns the unlocked roster in catalog order.
// Unknown ids are dropped and the default dog is always present.
func (tx *Tx) Unlocked() []PetID {
	var stored []PetID
	tx.decode(KeyUnlocked, &stored)

	set := map[PetID]bool{DefaultPet: true}
	for _, id := range stored {
		set[id] = true
	}

	ids := make([]PetID, 0, len(Catalog))
	for _, p := range Catalog {
		if set[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// IsUnlocked reports whether id is in the roster.
func (tx *Tx) IsUnlocked(id PetID) bool {
	for _, u := range tx.Unlocked() {
		if u == id {
			return true
		}
	}
	return false
}

// SetUnlocked persists the roster.
func (tx *Tx) SetUnlocked(ids []PetID) error {
	return tx.encode(KeyUnlocked, ids)
}

// Equipped returns an entry for every catalog dog, SkinBase when the stored
// value is missing or not a known skin.
func (tx *Tx) Equipped() map[PetID]Skin {
	var stored map[PetID]Skin
	tx.decode(KeyEquipped, &stored)

	m := make(map[PetID]Skin, len(Catalog))
	for _, p := range Catalog {
		m[p.ID] = SkinBase
		if s, ok := stored[p.ID]; ok && ValidSkin(s) {
			m[p.ID] = s
		}
	}
	return m
}

// SetEquipped persists the equipped map.
func (tx *Tx) SetEquipped(m map[PetID]Skin) error {
	return tx.encode(KeyEquipped, m)
}

// OwnedSkins returns the owned skins for every catalog dog. SkinBase is
// always owned.
func (tx *Tx) OwnedSkins() map[PetID][]Skin {
	var stored map[PetID][]Skin
	tx.decode(KeyOwnedSkins, &stored)

	m := make(map[PetID][]Skin, len(Catalog))
	for _, p := range Catalog {
		skins := []Skin{SkinBase}
		for _, s := range stored[p.ID] {
			if s == SkinAlt {
				skins = append(skins, SkinAlt)
				break
			}
		}
		m[p.ID] = skins
	}
	return m
}

// OwnsSkin reports whether id owns skin.
func (tx *Tx) OwnsSkin(id PetID, skin Skin) bool {
	for _, s := range tx.OwnedSkins()[id] {
		if s == skin {
			return true
		}
	}
	return false
}

// SetOwnedSkins persists the owned skins.
func (tx *Tx) SetOwnedSkins(m map[PetID][]Skin) error {
	return tx.encode(KeyOwnedSkins, m)
}

// Supply returns the stock of s, DefaultSupply when absent or malformed.
func (tx *Tx) Supply(s Supply) int {
	n := tx.Int(s.key(), DefaultSupply)
	if n < 0 {
		return 0
	}
	return n
}

// SetSupply persists the stock of s.
func (tx *Tx) SetSupply(s Supply, n int) error {
	return tx.SetInt(s.key(), n)
}

// String returns the raw value of key. Read failures read as absent.
func (tx *Tx) String(key string) (string, bool) {
	v, ok, err := tx.repo.kv.Get(tx.ctx, key)
	if err != nil {
		tx.repo.logger.Debug("read failed, using default", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// SetString stores a raw value.
func (tx *Tx) SetString(key, value string) error {
	if err := tx.repo.kv.Set(tx.ctx, key, value); err != nil {
		return fmt.Errorf("progression: save %s: %w", key, err)
	}
	return nil
}

// Int returns the integer stored under key, or def.
func (tx *Tx) Int(key string, def int) int {
	v, ok := tx.String(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		tx.repo.logger.Debug("malformed integer, using default", "key", key, "value", v)
		return def
	}
	return n
}

// Int64 returns the 64-bit integer stored under key, or def.
func (tx *Tx) Int64(key string, def int64) int64 {
	v, ok := tx.String(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		tx.repo.logger.Debug("malformed integer, using default", "key", key, "value", v)
		return def
	}
	return n
}

// SetInt stores an integer in decimal.
func (tx *Tx) SetInt(key string, n int) error {
	return tx.SetString(key, strconv.Itoa(n))
}

// SetInt64 stores a 64-bit integer in decimal.
func (tx *Tx) SetInt64(key string, n int64) error {
	return tx.SetString(key, strconv.FormatInt(n, 10))
}

// Remove deletes key.
func (tx *Tx) Remove(key string) error {
	if err := tx.repo.kv.Remove(tx.ctx, key); err != nil {
		return fmt.Errorf("progression: remove %s: %w", key, err)
	}
	return nil
}

// decode unmarshals the JSON under key into dst, leaving dst untouched when
// the value is absent or malformed.
func (tx *Tx) decode(key string, dst any) {
	v, ok := tx.String(key)
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		tx.repo.logger.Debug("malformed JSON, using default", "key", key, "error", err)
	}
}

func (tx *Tx) encode(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("progression: encode %s: %w", key, err)
	}
	return tx.SetString(key, string(data))
}
