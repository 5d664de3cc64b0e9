// Package registry catalogs node-type definitions for the workflow canvas.
//
// A Registry maps a type key (e.g. "start", "webhook") to the visual and
// behavioral definition the rendering layer needs: label, icon, color,
// ports, and configurable properties. Each canvas instance constructs and
// owns its own Registry; there is no process-wide catalog, so independent
// canvases never share type state.
//
// Definitions can be registered programmatically or loaded from TOML
// catalog files (see LoadCatalog). Builtin returns a registry pre-loaded
// with the standard workflow types.
//
// Registry is not safe for concurrent use without external
// synchronization.
package registry

import (
	"strings"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// Ports describes the connection points a node type exposes.
type Ports struct {
	Input           bool     `json:"input" toml:"input"`
	Output          bool     `json:"output" toml:"output"`
	MultipleOutputs bool     `json:"multipleOutputs,omitempty" toml:"multiple_outputs"`
	OutputLabels    []string `json:"outputLabels,omitempty" toml:"output_labels"`
}

// Property is a user-configurable field on a node type.
type Property struct {
	Key      string `json:"key" toml:"key"`
	Label    string `json:"label" toml:"label"`
	Type     string `json:"type" toml:"type"`
	Required bool   `json:"required,omitempty" toml:"required"`
}

// Definition is the full description of a node type. Type is the unique
// registry key; everything else is display and editing metadata.
type Definition struct {
	Type        string     `json:"type" toml:"type"`
	Label       string     `json:"label" toml:"label"`
	Description string     `json:"description,omitempty" toml:"description"`
	Category    string     `json:"category,omitempty" toml:"category"`
	Icon        string     `json:"icon,omitempty" toml:"icon"`
	Color       string     `json:"color,omitempty" toml:"color"`
	Ports       Ports      `json:"ports" toml:"ports"`
	Properties  []Property `json:"properties,omitempty" toml:"properties"`
	Tags        []string   `json:"tags,omitempty" toml:"tags"`
}

// Registry holds node-type definitions keyed by type. The zero value is
// not usable - use New.
type Registry struct {
	defs  map[string]Definition
	order []string // registration order for stable All()
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register inserts def, overwriting any existing definition with the same
// Type (last write wins, no versioning). The only validation is a
// non-empty type key.
func (r *Registry) Register(def Definition) error {
	if def.Type == "" {
		return errors.New(errors.ErrCodeInvalidInput, "node type definition requires a type key")
	}
	if _, exists := r.defs[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	r.defs[def.Type] = def
	return nil
}

// Unregister removes the definition for typ. Removing an absent type is a
// no-op, not an error.
func (r *Registry) Unregister(typ string) {
	if _, exists := r.defs[typ]; !exists {
		return
	}
	delete(r.defs, typ)
	for i, t := range r.order {
		if t == typ {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the definition for typ and true, or a zero definition and
// false when unregistered. Lookup misses are never errors.
func (r *Registry) Get(typ string) (Definition, bool) {
	def, ok := r.defs[typ]
	return def, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for _, typ := range r.order {
		out = append(out, r.defs[typ])
	}
	return out
}

// ByCategory returns the definitions whose Category exactly matches
// category, in registration order.
func (r *Registry) ByCategory(category string) []Definition {
	var out []Definition
	for _, def := range r.All() {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Search returns definitions matching query as a case-insensitive
// substring of label, description, type, or any tag. An empty or
// whitespace-only query matches everything; a query matching nothing
// returns an empty list.
func (r *Registry) Search(query string) []Definition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.All()
	}

	out := []Definition{}
	for _, def := range r.All() {
		if matches(def, q) {
			out = append(out, def)
		}
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }

func matches(def Definition, q string) bool {
	if strings.Contains(strings.ToLower(def.Label), q) ||
		strings.Contains(strings.ToLower(def.Description), q) ||
		strings.Contains(strings.ToLower(def.Type), q) {
		return true
	}
	for _, tag := range def.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
