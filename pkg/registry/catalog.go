package registry

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// catalogFile mirrors the TOML catalog document:
//
//	[[types]]
//	type = "start"
//	label = "Start"
//	category = "flow"
//	color = "#22c55e"
//	tags = ["trigger"]
//	[types.ports]
//	output = true
type catalogFile struct {
	Types []Definition `toml:"types"`
}

// LoadCatalog reads a TOML catalog from r and registers every definition
// it contains. Definitions already present are overwritten, so catalogs
// layer: load the builtin set first, then user catalogs on top.
func (r *Registry) LoadCatalog(src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog")
	}

	var catalog catalogFile
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog")
	}

	for _, def := range catalog.Types {
		if err := r.Register(def); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "register %q", def.Type)
		}
	}
	return nil
}

// LoadCatalogFile loads a TOML catalog from path.
func (r *Registry) LoadCatalogFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open catalog %s", path)
	}
	defer f.Close()
	return r.LoadCatalog(f)
}
