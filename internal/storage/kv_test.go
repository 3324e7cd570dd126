package storage

import (
	"context"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	m.Set(ctx, "k", "v")
	if v, ok, _ := m.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get() = %q %v, expected v", v, ok)
	}
	m.Remove(ctx, "k")
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("key should be gone after Remove()")
	}
}

func TestMemoryHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	if err := m.Set(ctx, "k", "v"); err == nil {
		t.Error("Set() with cancelled context should fail")
	}
	if _, _, err := m.Get(ctx, "k"); err == nil {
		t.Error("Get() with cancelled context should fail")
	}
}

func TestNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	shared := NewMemory()
	alice := NewNamespace(shared, "alice")
	bob := NewNamespace(shared, "bob")

	alice.Set(ctx, "total_bones", "5")
	bob.Set(ctx, "total_bones", "9")

	if v, _, _ := alice.Get(ctx, "total_bones"); v != "5" {
		t.Errorf("alice sees %q, expected 5", v)
	}
	if v, _, _ := bob.Get(ctx, "total_bones"); v != "9" {
		t.Errorf("bob sees %q, expected 9", v)
	}
	if v, ok, _ := shared.Get(ctx, "alice/total_bones"); !ok || v != "5" {
		t.Errorf("expected prefixed key in backing store, got %q %v", v, ok)
	}

	alice.Remove(ctx, "total_bones")
	if _, ok, _ := bob.Get(ctx, "total_bones"); !ok {
		t.Error("removing alice's key must not touch bob's")
	}
}
