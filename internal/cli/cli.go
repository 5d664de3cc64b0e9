// Package cli implements the flowcanvas command-line interface.
//
// This package provides commands for laying out workflow graphs, exporting
// them to image and document formats, browsing the node-type catalog, and
// serving the canvas API over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - layout: Compute node positions for a workflow graph
//   - export: Write a graph as png, jpeg, svg, or json
//   - types: List, search, or interactively browse node types
//   - serve: Run the canvas HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/buildinfo"
	"github.com/flowcanvas/flowcanvas/pkg/cache"
	"github.com/flowcanvas/flowcanvas/pkg/pipeline"
	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// appName is the application name used for directories and display.
const appName = "flowcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Registry *registry.Registry
}

// New creates a new CLI instance with a logger writing to w and the
// builtin node-type registry.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Registry: registry.Builtin(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "flowcanvas",
		Short:        "FlowCanvas lays out and exports workflow graphs",
		Long:         `FlowCanvas is a CLI tool for working with node-based workflow canvases: it computes automatic layouts, exports graphs as images or documents, and manages the node-type catalog.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNull(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNull(), nil
	}
	return cache.NewFile(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flowcanvas/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadRegistry returns the builtin registry, extended by the catalog file
// at path when one is given. Catalog entries override builtin types.
func (c *CLI) loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return c.Registry, nil
	}
	merged := registry.New()
	for _, def := range c.Registry.All() {
		if err := merged.Register(def); err != nil {
			return nil, err
		}
	}
	if err := merged.LoadCatalogFile(path); err != nil {
		return nil, err
	}
	return merged, nil
}
