package method

import (
	"math/rand"
	"testing"
)

func TestRegistryRegisterAndNew(t *testing.T) {
	r := NewRegistry()
	r.Register("RandomOpti", NewRandomOpti)

	if !r.Has("RandomOpti") {
		t.Fatalf("expected Has to report true for registered name")
	}
	if r.Has("Unknown") {
		t.Fatalf("expected Has to report false for unregistered name")
	}

	m, err := r.New("RandomOpti", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatalf("expected a non-nil Method")
	}
}

func TestRegistryNewUnknownName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.New("Missing", rand.New(rand.NewSource(1))); err == nil {
		t.Fatalf("expected error for unknown method name")
	}
}

func TestRegistryReRegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register("X", func(rng *rand.Rand) Method {
		called = true
		return NewRandomOpti(rng)
	})
	r.Register("X", NewRandomOpti)
	if _, err := r.New("X", rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected the second Register to overwrite the first factory")
	}
}
