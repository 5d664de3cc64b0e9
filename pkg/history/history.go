// Package history implements bounded linear undo/redo over graph
// snapshots.
//
// A Store keeps two stacks: past (undoable states, newest last) and
// future (redoable states, next-up first). Every push captures an
// independent deep copy of the graph, so later mutation of the live
// canvas never leaks into a stored entry. Pushing a new state discards
// the entire future stack - the standard linear-undo simplification with
// no branching redo.
//
// Each canvas instance constructs its own Store; there is no package
// state. Store is not safe for concurrent use without external
// synchronization, which matches the single-threaded editing model it
// serves.
package history

import (
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
)

// DefaultMaxSize is the snapshot cap applied when New is given a
// non-positive size.
const DefaultMaxSize = 50

// Snapshot is one recorded graph state. Nodes and Edges are deep copies
// owned exclusively by the store (and by the caller once returned from
// Undo/Redo).
type Snapshot struct {
	Nodes     []canvas.Node
	Edges     []canvas.Edge
	Timestamp time.Time
}

// Store is a bounded two-sided snapshot stack. Use New to create one.
type Store struct {
	past    []Snapshot
	future  []Snapshot
	maxSize int

	now func() time.Time // test hook
}

// New creates a store that retains at most maxSize entries per stack.
// Sizes below one fall back to DefaultMaxSize.
func New(maxSize int) *Store {
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}
	return &Store{maxSize: maxSize, now: time.Now}
}

// Push records a deep copy of the given graph as the newest undoable
// state, evicting the oldest entry once the cap is exceeded. Any redo
// history is cleared unconditionally: a new action invalidates forward
// states.
//
// Call Push only with complete, user-visible states - never mid-drag.
func (s *Store) Push(nodes []canvas.Node, edges []canvas.Edge) {
	s.past = append(s.past, Snapshot{
		Nodes:     canvas.CloneNodes(nodes),
		Edges:     canvas.CloneEdges(edges),
		Timestamp: s.now(),
	})
	if len(s.past) > s.maxSize {
		s.past = s.past[len(s.past)-s.maxSize:]
	}
	s.future = s.future[:0]
}

// Undo pops the most recent past state, moves it to the front of the
// future stack, and returns it. Returns a zero snapshot and false when
// there is nothing to undo; the store is unchanged in that case.
func (s *Store) Undo() (Snapshot, bool) {
	if len(s.past) == 0 {
		return Snapshot{}, false
	}
	last := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]

	s.future = append([]Snapshot{last}, s.future...)
	if len(s.future) > s.maxSize {
		s.future = s.future[:s.maxSize]
	}
	return last, true
}

// Redo pops the earliest future state, moves it back onto the past
// stack, and returns it. Returns a zero snapshot and false when there is
// nothing to redo; the store is unchanged in that case.
func (s *Store) Redo() (Snapshot, bool) {
	if len(s.future) == 0 {
		return Snapshot{}, false
	}
	next := s.future[0]
	s.future = s.future[1:]

	s.past = append(s.past, next)
	if len(s.past) > s.maxSize {
		s.past = s.past[len(s.past)-s.maxSize:]
	}
	return next, true
}

// CanUndo reports whether an undoable state exists.
func (s *Store) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether a redoable state exists.
func (s *Store) CanRedo() bool { return len(s.future) > 0 }

// Len returns the number of undoable states currently retained.
func (s *Store) Len() int { return len(s.past) }

// Clear empties both stacks.
func (s *Store) Clear() {
	s.past = nil
	s.future = nil
}
