package interner_test

import (
	"sync"
	"testing"

	"github.com/mago-go/phrix/internal/interner"
)

func TestInternAssignsStableIDs(t *testing.T) {
	in := interner.New()
	a := in.Intern("foo")
	b := in.Intern("bar")
	aAgain := in.Intern("foo")

	if a != aAgain {
		t.Fatalf("expected repeated Intern(\"foo\") to return the same id, got %v and %v", a, aAgain)
	}
	if a == b {
		t.Fatalf("expected distinct strings to get distinct ids")
	}
}

func TestInternIDsNeverZero(t *testing.T) {
	in := interner.New()
	id := in.Intern("anything")
	if id == 0 {
		t.Fatalf("expected Intern to never return the zero SymbolID")
	}
}

func TestLookupRoundTrips(t *testing.T) {
	in := interner.New()
	id := in.Intern("hello")
	if got := in.Lookup(id); got != "hello" {
		t.Fatalf("Lookup(%v) = %q, want %q", id, got, "hello")
	}
}

func TestLookupPanicsOnInvalidID(t *testing.T) {
	in := interner.New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Lookup to panic on an unseen SymbolID")
		}
	}()
	in.Lookup(interner.SymbolID(999))
}

func TestLenCountsDistinctStrings(t *testing.T) {
	in := interner.New()
	in.Intern("a")
	in.Intern("b")
	in.Intern("a")
	if got := in.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestConcurrentInternAndLookup(t *testing.T) {
	in := interner.New()
	var wg sync.WaitGroup
	ids := make([]interner.SymbolID, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = in.Intern("shared")
		}(i)
	}
	wg.Wait()

	first := ids[0]
	for _, id := range ids {
		if id != first {
			t.Fatalf("expected every concurrent Intern of the same string to agree on one id")
		}
	}
	if got := in.Lookup(first); got != "shared" {
		t.Fatalf("Lookup(%v) = %q, want %q", first, got, "shared")
	}
}
