package registry

import (
	"strings"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	r := New()
	if err := r.Register(Definition{Type: "task", Label: "Task"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	def, ok := r.Get("task")
	if !ok {
		t.Fatal("expected registered type")
	}
	if def.Label != "Task" {
		t.Errorf("Label = %q, want %q", def.Label, "Task")
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("expected miss for unregistered type")
	}
}

func TestRegisterRequiresType(t *testing.T) {
	r := New()
	if err := r.Register(Definition{Label: "no key"}); err == nil {
		t.Error("expected error for empty type key")
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := New()
	if err := r.Register(Definition{Type: "task", Label: "First"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(Definition{Type: "task", Label: "Second"}); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	def, _ := r.Get("task")
	if def.Label != "Second" {
		t.Errorf("Label = %q, want %q", def.Label, "Second")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestUnregister(t *testing.T) {
	r := New()
	_ = r.Register(Definition{Type: "task", Label: "Task"})

	r.Unregister("task")
	if _, ok := r.Get("task"); ok {
		t.Error("type still present after unregister")
	}
	if len(r.All()) != 0 {
		t.Errorf("All() = %d entries, want 0", len(r.All()))
	}

	// Absent type is a no-op, not a panic or error.
	r.Unregister("task")
}

func TestAllPreservesRegistrationOrder(t *testing.T) {
	r := New()
	for _, typ := range []string{"zeta", "alpha", "mid"} {
		_ = r.Register(Definition{Type: typ, Label: typ})
	}

	all := r.All()
	want := []string{"zeta", "alpha", "mid"}
	for i, def := range all {
		if def.Type != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, def.Type, want[i])
		}
	}
}

func TestByCategory(t *testing.T) {
	r := New()
	_ = r.Register(Definition{Type: "start", Label: "Start", Category: "control"})
	_ = r.Register(Definition{Type: "task", Label: "Task", Category: "action"})
	_ = r.Register(Definition{Type: "end", Label: "End", Category: "control"})

	control := r.ByCategory("control")
	if len(control) != 2 {
		t.Fatalf("got %d control types, want 2", len(control))
	}
	if control[0].Type != "start" || control[1].Type != "end" {
		t.Errorf("unexpected order: %q, %q", control[0].Type, control[1].Type)
	}
}

func TestSearch(t *testing.T) {
	r := New()
	_ = r.Register(Definition{Type: "start", Label: "Start Node", Tags: []string{"entry"}})
	_ = r.Register(Definition{Type: "webhook", Label: "Webhook", Description: "HTTP trigger", Tags: []string{"http", "trigger"}})
	_ = r.Register(Definition{Type: "script", Label: "Script", Description: "run custom code"})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by type", "web", []string{"webhook"}},
		{"by label", "start", []string{"start"}},
		{"by description", "custom code", []string{"script"}},
		{"by tag", "trigger", []string{"webhook"}},
		{"case insensitive", "START", []string{"start"}},
		{"whitespace trimmed", "  script  ", []string{"script"}},
		{"empty matches everything", "", []string{"start", "webhook", "script"}},
		{"blank matches everything", "   ", []string{"start", "webhook", "script"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Search(tt.query)
			if got == nil {
				t.Fatal("Search returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, def := range got {
				if def.Type != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, def.Type, tt.want[i])
				}
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	src := `
[[types]]
type = "email"
label = "Send Email"
category = "action"
tags = ["notify"]

  [types.ports]
  input = true
  output = true

  [[types.properties]]
  key = "to"
  label = "Recipient"
  type = "string"
  required = true
`

	r := New()
	if err := r.LoadCatalog(strings.NewReader(src)); err != nil {
		t.Fatalf("load: %v", err)
	}

	def, ok := r.Get("email")
	if !ok {
		t.Fatal("catalog type not registered")
	}
	if def.Label != "Send Email" {
		t.Errorf("Label = %q, want %q", def.Label, "Send Email")
	}
	if !def.Ports.Input || !def.Ports.Output {
		t.Errorf("Ports = %+v, want input and output", def.Ports)
	}
	if len(def.Properties) != 1 || !def.Properties[0].Required {
		t.Errorf("Properties = %+v", def.Properties)
	}
}

func TestLoadCatalogRejectsMalformed(t *testing.T) {
	r := New()
	if err := r.LoadCatalog(strings.NewReader("not [valid toml")); err == nil {
		t.Error("expected error for malformed catalog")
	}
}

func TestBuiltin(t *testing.T) {
	r := Builtin()
	if r.Len() == 0 {
		t.Fatal("builtin registry is empty")
	}

	for _, typ := range []string{"start", "end", "task", "decision", "parallel", "delay", "webhook", "script"} {
		if _, ok := r.Get(typ); !ok {
			t.Errorf("builtin type %q missing", typ)
		}
	}

	start, _ := r.Get("start")
	if start.Ports.Input {
		t.Error("start node should not accept input")
	}
	end, _ := r.Get("end")
	if end.Ports.Output {
		t.Error("end node should not produce output")
	}
	decision, _ := r.Get("decision")
	if !decision.Ports.MultipleOutputs {
		t.Error("decision node should have multiple outputs")
	}
}

func TestBuiltinIsolated(t *testing.T) {
	a := Builtin()
	b := Builtin()

	a.Unregister("task")
	if _, ok := b.Get("task"); !ok {
		t.Error("mutating one builtin registry affected another")
	}
}
