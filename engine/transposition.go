package engine

import (
	"unsafe"

	gm "gosling/goslingmg"
)

// Bound types for transposition entries. An upper bound means the stored
// score failed low (real score <= stored), a lower bound means it failed
// high (real score >= stored), exact means it came from a full window.
const (
	BoundNone = iota
	BoundUpper
	BoundLower
	BoundExact
)

const (
	DefaultHashSizeMB = 256
	MinHashSizeMB     = 1
	MaxHashSizeMB     = 4096
)

// TTEntry is one slot of the table. The key disambiguates: the table is
// indexed by key % len with no chaining, so a probe only trusts the entry
// when the stored key matches.
type TTEntry struct {
	Key   uint64
	Move  gm.Move
	Eval  int16
	Depth uint8
	Bound uint8
}

// TransTable is a fixed-size, single-probe, always-overwrite transposition
// table. It is cleared only on initialization and resize, never between
// searches, so results learned on one move carry over to the next.
type TransTable struct {
	entries []TTEntry
	sizeMB  int
}

// SetSize records the table size in MB for the next Initialize call.
func (t *TransTable) SetSize(sizeMB int) {
	sizeMB = clamp(sizeMB, MinHashSizeMB, MaxHashSizeMB)
	if sizeMB != t.sizeMB {
		t.sizeMB = sizeMB
		t.entries = nil
	}
}

// Initialize allocates the table if it is not already allocated at the
// configured size. Returns the number of entries, or 0 if nothing changed.
// If the allocation panics, the panic is recovered and the table falls back
// to the minimum size. An out-of-memory failure of the Go runtime is fatal
// and is not caught here.
func (t *TransTable) Initialize() (numEntries uint64) {
	if t.entries != nil {
		return 0
	}
	if t.sizeMB == 0 {
		t.sizeMB = DefaultHashSizeMB
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	count := uint64(t.sizeMB) * 1024 * 1024 / entrySize
	if count == 0 {
		count = 1
	}
	func() {
		defer func() {
			if recover() != nil {
				count = uint64(MinHashSizeMB) * 1024 * 1024 / entrySize
				t.entries = make([]TTEntry, count)
			}
		}()
		t.entries = make([]TTEntry, count)
	}()
	return uint64(len(t.entries))
}

// Clear zeroes every entry.
func (t *TransTable) Clear() {
	for i := range t.entries {
		t.entries[i] = TTEntry{}
	}
}

// Store writes the best move and score found for the position. Collisions
// always overwrite; the simplest policy that is still correct, since the
// key check on probe rejects entries that belong to other positions.
func (t *TransTable) Store(key uint64, move gm.Move, eval int, depth int, bound uint8) {
	if len(t.entries) == 0 {
		return
	}
	index := key % uint64(len(t.entries))
	t.entries[index] = TTEntry{
		Key:   key,
		Move:  move,
		Eval:  int16(eval),
		Depth: uint8(depth),
		Bound: bound,
	}
}

// Probe looks up the position. The stored best move is returned whenever
// the keys match (it seeds move ordering even when the score is not
// usable). The score is usable only when the stored depth covers the
// requested depth and the stored bound permits a cutoff at this window:
// exact always, a lower bound when it reaches beta, an upper bound when it
// stays at or below alpha.
func (t *TransTable) Probe(key uint64, depth, alpha, beta int) (move gm.Move, eval int, usable bool) {
	move = gm.MoveNone
	if len(t.entries) == 0 {
		return move, 0, false
	}
	entry := &t.entries[key%uint64(len(t.entries))]
	if entry.Key != key || entry.Bound == BoundNone {
		return move, 0, false
	}
	move = entry.Move
	if int(entry.Depth) < depth {
		return move, 0, false
	}
	stored := int(entry.Eval)
	switch entry.Bound {
	case BoundExact:
		return move, stored, true
	case BoundLower:
		if stored >= beta {
			return move, stored, true
		}
	case BoundUpper:
		if stored <= alpha {
			return move, stored, true
		}
	}
	return move, 0, false
}

// ProbeMove returns just the stored best move for the position, or
// MoveNone. Used to walk out the principal variation.
func (t *TransTable) ProbeMove(key uint64) gm.Move {
	if len(t.entries) == 0 {
		return gm.MoveNone
	}
	entry := &t.entries[key%uint64(len(t.entries))]
	if entry.Key != key || entry.Bound == BoundNone {
		return gm.MoveNone
	}
	return entry.Move
}
