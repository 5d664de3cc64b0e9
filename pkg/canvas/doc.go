// Package canvas defines the workflow graph data model shared by every
// FlowCanvas component: positioned, typed nodes and the directed edges
// connecting them.
//
// The types here are plain data. The rendering layer mutates node and edge
// slices directly; the layout engine, history store, and export pipeline
// all consume them by value and never call back into the UI.
//
// # Serialization
//
// Graph is the canonical serialization pair. The JSON format is designed
// for round-trip fidelity: import → transform → export → re-import
// produces identical results. Unknown keys inside a node's data object are
// preserved verbatim across the round trip.
//
// # Ownership
//
// None of the types are safe for concurrent use without external
// synchronization. Deep copies (Clone, CloneNodes, CloneEdges) are the
// building block for history snapshots: a clone shares no mutable state
// with its source.
package canvas
