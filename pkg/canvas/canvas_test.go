package canvas

import (
	"encoding/json"
	"testing"
)

func TestNewNode(t *testing.T) {
	n := NewNode("task", "Send email", Position{X: 10, Y: 20})

	if n.ID == "" {
		t.Fatal("expected generated ID")
	}
	if n.Type != "task" {
		t.Errorf("Type = %q, want %q", n.Type, "task")
	}
	if n.Data.Label != "Send email" {
		t.Errorf("Label = %q, want %q", n.Data.Label, "Send email")
	}
	if n.Data.NodeType != "task" {
		t.Errorf("NodeType = %q, want %q", n.Data.NodeType, "task")
	}
	if n.Data.Status != StatusIdle {
		t.Errorf("Status = %q, want %q", n.Data.Status, StatusIdle)
	}
	if n.Position.X != 10 || n.Position.Y != 20 {
		t.Errorf("Position = %+v, want {10 20}", n.Position)
	}
}

func TestNewNodeUniqueIDs(t *testing.T) {
	a := NewNode("task", "a", Position{})
	b := NewNode("task", "b", Position{})
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both %q", a.ID)
	}
}

func TestNodeCloneIndependence(t *testing.T) {
	orig := Node{
		ID:   "n1",
		Type: "task",
		Data: NodeData{
			Label:      "original",
			Properties: map[string]any{"retries": 3},
			Extra:      map[string]any{"custom": "x"},
		},
	}

	clone := orig.Clone()
	clone.Data.Label = "changed"
	clone.Data.Properties["retries"] = 5
	clone.Data.Extra["custom"] = "y"

	if orig.Data.Label != "original" {
		t.Errorf("clone mutation leaked into original label: %q", orig.Data.Label)
	}
	if orig.Data.Properties["retries"] != 3 {
		t.Errorf("clone mutation leaked into original properties: %v", orig.Data.Properties["retries"])
	}
	if orig.Data.Extra["custom"] != "x" {
		t.Errorf("clone mutation leaked into original extra: %v", orig.Data.Extra["custom"])
	}
}

func TestNodeCloneNestedIndependence(t *testing.T) {
	orig := Node{
		ID: "n1",
		Data: NodeData{
			Properties: map[string]any{
				"config":  map[string]any{"retries": 1},
				"headers": []any{map[string]any{"key": "Accept"}},
			},
			Extra: map[string]any{"ui": map[string]any{"collapsed": false}},
		},
	}

	clone := orig.Clone()
	clone.Data.Properties["config"].(map[string]any)["retries"] = 99
	clone.Data.Properties["headers"].([]any)[0].(map[string]any)["key"] = "X-Test"
	clone.Data.Extra["ui"].(map[string]any)["collapsed"] = true

	if got := orig.Data.Properties["config"].(map[string]any)["retries"]; got != 1 {
		t.Errorf("nested property shared with clone: retries = %v, want 1", got)
	}
	if got := orig.Data.Properties["headers"].([]any)[0].(map[string]any)["key"]; got != "Accept" {
		t.Errorf("nested slice element shared with clone: key = %v, want Accept", got)
	}
	if got := orig.Data.Extra["ui"].(map[string]any)["collapsed"]; got != false {
		t.Errorf("nested extra shared with clone: collapsed = %v, want false", got)
	}
}

func TestCloneNodesNilInput(t *testing.T) {
	out := CloneNodes(nil)
	if out == nil {
		t.Fatal("expected non-nil slice for nil input")
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestCloneEdgesNilInput(t *testing.T) {
	out := CloneEdges(nil)
	if out == nil {
		t.Fatal("expected non-nil slice for nil input")
	}
}

func TestNodeDataJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data NodeData
	}{
		{
			name: "named fields only",
			data: NodeData{Label: "Start", NodeType: "start", Status: StatusCompleted},
		},
		{
			name: "with properties",
			data: NodeData{Label: "Fetch", Properties: map[string]any{"url": "https://example.com"}},
		},
		{
			name: "with extra keys",
			data: NodeData{Label: "Task", Extra: map[string]any{"collapsed": true, "notes": "check later"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.data)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got NodeData
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Label != tt.data.Label {
				t.Errorf("Label = %q, want %q", got.Label, tt.data.Label)
			}
			if got.Status != tt.data.Status {
				t.Errorf("Status = %q, want %q", got.Status, tt.data.Status)
			}
			for k, want := range tt.data.Extra {
				if got.Extra[k] != want {
					t.Errorf("Extra[%q] = %v, want %v", k, got.Extra[k], want)
				}
			}
			for k, want := range tt.data.Properties {
				if got.Properties[k] != want {
					t.Errorf("Properties[%q] = %v, want %v", k, got.Properties[k], want)
				}
			}
		})
	}
}

func TestNodeDataUnknownKeysPreserved(t *testing.T) {
	raw := []byte(`{"label":"Task","nodeType":"task","pinned":true,"color":"#ff0000"}`)

	var d NodeData
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Label != "Task" {
		t.Errorf("Label = %q, want %q", d.Label, "Task")
	}
	if d.Extra["pinned"] != true {
		t.Errorf("Extra[pinned] = %v, want true", d.Extra["pinned"])
	}
	if d.Extra["color"] != "#ff0000" {
		t.Errorf("Extra[color] = %v, want #ff0000", d.Extra["color"])
	}
	if _, ok := d.Extra["label"]; ok {
		t.Error("named key leaked into Extra")
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(out, &obj); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if obj["pinned"] != true {
		t.Errorf("round-trip lost extra key: %v", obj)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "n1", Type: "start", Position: Position{X: 0, Y: 0}, Data: NodeData{Label: "Start"}},
			{ID: "n2", Type: "end", Position: Position{X: 0, Y: 180}, Data: NodeData{Label: "End"}},
		},
		Edges: []Edge{
			{ID: "e1", Source: "n1", Target: "n2", SourceHandle: "out"},
		},
	}

	raw, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalGraph(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges, want 2, 1", len(got.Nodes), len(got.Edges))
	}
	if got.Edges[0].SourceHandle != "out" {
		t.Errorf("SourceHandle = %q, want %q", got.Edges[0].SourceHandle, "out")
	}
}

func TestEdgeOmitsEmptyHandles(t *testing.T) {
	raw, err := json.Marshal(Edge{ID: "e1", Source: "a", Target: "b"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := obj["sourceHandle"]; ok {
		t.Error("empty sourceHandle serialized")
	}
	if _, ok := obj["label"]; ok {
		t.Error("empty label serialized")
	}
}

func TestNodeIndex(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	idx := NodeIndex(nodes)
	if len(idx) != 3 {
		t.Fatalf("len = %d, want 3", len(idx))
	}
	if idx["b"] != 1 {
		t.Errorf("idx[b] = %d, want 1", idx["b"])
	}
}

func TestNodeByID(t *testing.T) {
	nodes := []Node{{ID: "a", Type: "start"}, {ID: "b", Type: "end"}}

	n, ok := NodeByID(nodes, "b")
	if !ok {
		t.Fatal("expected to find node b")
	}
	if n.Type != "end" {
		t.Errorf("Type = %q, want %q", n.Type, "end")
	}

	if _, ok := NodeByID(nodes, "missing"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestWriteReadGraphFile(t *testing.T) {
	path := t.TempDir() + "/graph.json"
	g := Graph{Nodes: []Node{{ID: "n1", Type: "task"}}}

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "n1" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(t.TempDir() + "/absent.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
