package poll

import (
	"sort"
	"testing"

	"livepoll/pkg/types"
)

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	p := registry.Register("h1", "alice-id", "Alice")
	if p.Presenter {
		t.Error("Alice should not be the presenter")
	}

	teacher := registry.Register("h2", "teacher-id", types.PresenterName)
	if !teacher.Presenter {
		t.Error("display name Teacher should mark the presenter")
	}

	if registry.Count() != 2 {
		t.Errorf("expected 2 connections, got %d", registry.Count())
	}
}

func TestRegistry_RegisterOverwritesSameHandle(t *testing.T) {
	registry := NewRegistry()

	registry.Register("h1", "alice-id", "Alice")
	registry.Register("h1", "bob-id", "Bob")

	if registry.Count() != 1 {
		t.Fatalf("re-registration should overwrite, got %d entries", registry.Count())
	}
	p, ok := registry.Get("h1")
	if !ok || p.ID != "bob-id" {
		t.Errorf("expected bob-id registered for h1, got %+v", p)
	}
}

func TestRegistry_RemoveIdempotent(t *testing.T) {
	registry := NewRegistry()
	registry.Register("h1", "alice-id", "Alice")

	p, ok := registry.Remove("h1")
	if !ok || p.ID != "alice-id" {
		t.Fatalf("expected to remove alice, got %+v ok=%t", p, ok)
	}

	// Removing an absent handle is a no-op, not an error.
	if _, ok := registry.Remove("h1"); ok {
		t.Error("second remove should report absence")
	}
	if _, ok := registry.Remove("never-existed"); ok {
		t.Error("removing unknown handle should report absence")
	}
}

func TestRegistry_LiveRespondentIDs(t *testing.T) {
	registry := NewRegistry()
	registry.Register("h1", "teacher-id", types.PresenterName)
	registry.Register("h2", "alice-id", "Alice")
	registry.Register("h3", "bob-id", "Bob")

	ids := registry.LiveRespondentIDs()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "alice-id" || ids[1] != "bob-id" {
		t.Errorf("expected [alice-id bob-id], got %v", ids)
	}
}

func TestRegistry_LiveRespondentIDs_DuplicateIdentity(t *testing.T) {
	registry := NewRegistry()
	// Same identity in two tabs: the registry tracks connections, so
	// both appear. Deduplication is the oracle's job.
	registry.Register("h1", "alice-id", "Alice")
	registry.Register("h2", "alice-id", "Alice")

	if ids := registry.LiveRespondentIDs(); len(ids) != 2 {
		t.Errorf("expected one entry per connection, got %v", ids)
	}
}
