package canvas

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Status reflects the last known execution state a node is displayed with.
// FlowCanvas never runs workflows itself; the value is display metadata
// supplied by whatever system does.
type Status string

// Node display statuses.
const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
	StatusWarning   Status = "warning"
)

// Position is a top-left coordinate on the canvas. Both components are
// always set; a node never has a partially defined position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned, typed vertex in the workflow graph.
//
// ID must be unique within a graph. Type is a registry key and may name a
// type that was never registered - rendering falls back to defaults for
// unknown types rather than rejecting the node.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// NodeData carries the display payload of a node. Beyond the named fields,
// arbitrary keys are preserved in Extra for round-trip fidelity with
// documents produced by other tools.
type NodeData struct {
	Label      string         `json:"-"`
	NodeType   string         `json:"-"`
	Status     Status         `json:"-"`
	Properties map[string]any `json:"-"`
	Extra      map[string]any `json:"-"`
}

// Edge is a directed connection between two nodes, optionally bound to
// specific ports (handles) on either end.
//
// Source and Target should reference node IDs present in the accompanying
// node set, but this is not enforced: callers may hold dangling edges
// mid-edit, and the layout engine silently ignores them.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// Graph is the canonical serialization pair for a workflow canvas.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewNode creates a node of the given type at pos with a fresh unique ID.
// The data label defaults to label and NodeType mirrors typ, matching what
// a palette drop produces in the editing UI.
func NewNode(typ, label string, pos Position) Node {
	return Node{
		ID:       uuid.NewString(),
		Type:     typ,
		Position: pos,
		Data: NodeData{
			Label:    label,
			NodeType: typ,
			Status:   StatusIdle,
		},
	}
}

// Clone returns a deep copy of the node. The copy shares no maps with the
// original, so mutating one never affects the other.
func (n Node) Clone() Node {
	out := n
	out.Data = n.Data.clone()
	return out
}

// Clone returns a copy of the edge. Edges hold no reference types, so this
// is a plain value copy; the method exists for symmetry with Node.Clone.
func (e Edge) Clone() Edge { return e }

// CloneNodes deep-copies a node slice. Returns an empty slice for nil
// input so snapshot consumers never see nil.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges copies an edge slice. Returns an empty slice for nil input.
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

func (d NodeData) clone() NodeData {
	out := d
	out.Properties = copyMap(d.Properties)
	out.Extra = copyMap(d.Extra)
	return out
}

// copyMap deep-copies a JSON-shaped map: nested map[string]any and []any
// values are cloned recursively so no container is shared with the input.
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copySlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		return copySlice(v)
	default:
		return v
	}
}

// Keys with dedicated NodeData fields; everything else round-trips
// through Extra.
const (
	dataKeyLabel      = "label"
	dataKeyNodeType   = "nodeType"
	dataKeyStatus     = "status"
	dataKeyProperties = "properties"
)

// MarshalJSON flattens the named fields and Extra into a single object.
// Named fields win over colliding Extra keys.
func (d NodeData) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(d.Extra)+4)
	for k, v := range d.Extra {
		obj[k] = v
	}
	if d.Label != "" {
		obj[dataKeyLabel] = d.Label
	}
	if d.NodeType != "" {
		obj[dataKeyNodeType] = d.NodeType
	}
	if d.Status != "" {
		obj[dataKeyStatus] = string(d.Status)
	}
	if d.Properties != nil {
		obj[dataKeyProperties] = d.Properties
	}
	return json.Marshal(obj)
}

// UnmarshalJSON pulls the named fields out of the object and stashes any
// remaining keys in Extra.
func (d *NodeData) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*d = NodeData{}
	if v, ok := obj[dataKeyLabel].(string); ok {
		d.Label = v
		delete(obj, dataKeyLabel)
	}
	if v, ok := obj[dataKeyNodeType].(string); ok {
		d.NodeType = v
		delete(obj, dataKeyNodeType)
	}
	if v, ok := obj[dataKeyStatus].(string); ok {
		d.Status = Status(v)
		delete(obj, dataKeyStatus)
	}
	if v, ok := obj[dataKeyProperties].(map[string]any); ok {
		d.Properties = v
		delete(obj, dataKeyProperties)
	}
	if len(obj) > 0 {
		d.Extra = obj
	}
	return nil
}
