// Package interner implements the append-only string interner shared
// by the parser, the AST, and the lint engine, so identifiers compare
// by a cheap integer id instead of by string.
package interner

import "sync"

// SymbolID is an opaque, comparable, Ord-stable (within one process)
// handle to an interned string. The zero value never names a real
// string; Intern always returns IDs starting at 1.
type SymbolID uint32

// Interner maps strings to SymbolIDs and back. It is append-only:
// once assigned, a string's SymbolID never changes and is never
// reused. Lookup is safe to call concurrently with other readers and
// with concurrent Intern calls, so it may be shared read-only by
// several file pipelines running in parallel.
type Interner struct {
	mu      sync.RWMutex
	strings []string
	ids     map[string]SymbolID
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{
		ids: make(map[string]SymbolID),
	}
}

// Intern returns the SymbolID for s, assigning a new one if s has not
// been seen before.
func (in *Interner) Intern(s string) SymbolID {
	in.mu.RLock()
	if id, ok := in.ids[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[s]; ok {
		return id
	}
	in.strings = append(in.strings, s)
	id := SymbolID(len(in.strings))
	in.ids[s] = id
	return id
}

// Lookup resolves id back to its text. It panics if id was never
// produced by Intern on this Interner, which would indicate a bug in
// the caller rather than a recoverable runtime condition.
func (in *Interner) Lookup(id SymbolID) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == 0 || int(id) > len(in.strings) {
		panic("interner: invalid SymbolID")
	}
	return in.strings[id-1]
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}
