// Package pipeline provides the layout → export pipeline for FlowCanvas.
//
// This package wraps the core layout engine and export pipeline behind
// one API used by the CLI and the HTTP server. By centralizing this
// logic, both entry points behave identically: the same caching of
// computed positions, the same observability events, the same defaults.
//
// # Usage
//
// Create a Runner and compute a layout:
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	positioned, hit, err := runner.ComputeLayout(ctx, g, layout.Options{
//	    Algorithm: layout.AlgorithmDagre,
//	})
//
// Export through the same runner:
//
//	path, err := runner.Export(ctx, outDir, export.FormatJSON, nil, positioned, g.Edges, export.Options{})
package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowcanvas/flowcanvas/pkg/cache"
	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/export"
	"github.com/flowcanvas/flowcanvas/pkg/layout"
	"github.com/flowcanvas/flowcanvas/pkg/observability"
)

// Cached layout results stay valid indefinitely (the key covers every
// input), but a TTL keeps the file cache from growing without bound.
const layoutCacheTTL = 30 * 24 * time.Hour

// Runner executes pipeline stages with shared caching and logging.
// Create with NewRunner.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching; a
// nil logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNull()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// ComputeLayout runs the configured layout algorithm over the graph and
// returns the repositioned nodes plus whether the result came from
// cache. Cache lookups key on the full graph content and options, so a
// hit is always correct.
func (r *Runner) ComputeLayout(ctx context.Context, g canvas.Graph, opts layout.Options) ([]canvas.Node, bool, error) {
	key := cache.Key("layout", g, opts)

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		var nodes []canvas.Node
		if err := json.Unmarshal(data, &nodes); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			r.logger.Debug("layout cache hit", "algorithm", opts.Algorithm, "nodes", len(nodes))
			return nodes, true, nil
		}
		// Corrupt entry: drop it and recompute.
		_ = r.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Canvas().OnLayoutStart(ctx, string(opts.Algorithm), len(g.Nodes))
	nodes, err := layout.Layout(ctx, g.Nodes, g.Edges, opts)
	observability.Canvas().OnLayoutComplete(ctx, string(opts.Algorithm), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.logger.Debug("layout computed",
		"algorithm", opts.Algorithm,
		"nodes", len(nodes),
		"duration", time.Since(start).Round(time.Millisecond))

	if data, err := json.Marshal(nodes); err == nil {
		if err := r.cache.Set(ctx, key, data, layoutCacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return nodes, false, nil
}

// Export writes the graph (or captured view) as an artifact in the given
// format under dir, returning the written path. See export.Exporter for
// format semantics.
func (r *Runner) Export(ctx context.Context, dir string, format export.Format, view export.View, nodes []canvas.Node, edges []canvas.Edge, opts export.Options) (string, error) {
	start := time.Now()
	observability.Canvas().OnExportStart(ctx, string(format), len(nodes))
	path, err := export.New(dir).Export(ctx, format, view, nodes, edges, opts)
	observability.Canvas().OnExportComplete(ctx, string(format), time.Since(start), err)
	if err != nil {
		return "", err
	}
	r.logger.Debug("export written",
		"format", format,
		"path", path,
		"duration", time.Since(start).Round(time.Millisecond))
	return path, nil
}
