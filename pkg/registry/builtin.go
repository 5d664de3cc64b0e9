package registry

import (
	"bytes"
	_ "embed"
	"fmt"
)

// The builtin catalog ships inside the binary so the CLI and API work
// without any configuration files.

//go:embed catalog.toml
var builtinCatalog []byte

// Builtin returns a new registry pre-loaded with the standard workflow
// node types (start, end, task, decision, parallel, delay, webhook,
// script). Panics only if the embedded catalog is corrupt, which a build
// with an intact source tree cannot produce.
func Builtin() *Registry {
	r := New()
	if err := r.LoadCatalog(bytes.NewReader(builtinCatalog)); err != nil {
		panic(fmt.Sprintf("registry: embedded catalog: %v", err))
	}
	return r
}
