package storage

import (
	"context"
	"sync"
)

// KV is the device-local key/value persistence the progression layer is
// built on. Reads report absence with ok=false; every call may fail.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Memory is an in-process KV. It backs tests and is the fallback when the
// database cannot be opened, so the game keeps working without persistence.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements KV.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove implements KV.
func (m *Memory) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Namespace prefixes every key with a fixed namespace, giving each SSH user
// an independent progression inside one shared database.
type Namespace struct {
	kv     KV
	prefix string
}

// NewNamespace wraps kv so that all keys live under name.
func NewNamespace(kv KV, name string) *Namespace {
	return &Namespace{kv: kv, prefix: name + "/"}
}

// Get implements KV.
func (n *Namespace) Get(ctx context.Context, key string) (string, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

// Set implements KV.
func (n *Namespace) Set(ctx context.Context, key, value string) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

// Remove implements KV.
func (n *Namespace) Remove(ctx context.Context, key string) error {
	return n.kv.Remove(ctx, n.prefix+key)
}

var (
	_ KV = (*Memory)(nil)
	_ KV = (*Namespace)(nil)
	_ KV = (*Store)(nil)
)
