// Package pkg provides the core libraries for the FlowCanvas workflow canvas.
//
// # Overview
//
// FlowCanvas is the headless core of a node-based workflow editor: it
// owns the graph data model, automatic layout, undo/redo history, and
// the export pipeline, while leaving interactive rendering to the
// embedding UI. The pkg directory is organized into four main areas:
//
//  1. Domain model - graph types and the node-type catalog
//  2. Engine - layout algorithms and viewport fitting
//  3. Output - the export pipeline and the reference renderer
//  4. Infrastructure - caching, observability, and orchestration
//
// # Architecture
//
// The typical data flow through FlowCanvas:
//
//	Workflow graph (JSON)
//	         ↓
//	    [canvas] package (graph model + serialization)
//	         ↓
//	    [layout] package (dagre / elk-layered / elk-force)
//	         ↓
//	    [export] package (png / jpeg / svg / json artifacts)
//
// # Quick Start
//
// Lay out a graph and export it as JSON:
//
//	import (
//	    "context"
//	    "github.com/flowcanvas/flowcanvas/pkg/canvas"
//	    "github.com/flowcanvas/flowcanvas/pkg/export"
//	    "github.com/flowcanvas/flowcanvas/pkg/layout"
//	)
//
//	g, _ := canvas.ReadGraphFile("workflow.json")
//	nodes, _ := layout.Layout(context.Background(), g.Nodes, g.Edges, layout.Options{
//	    Algorithm: layout.AlgorithmDagre,
//	    Direction: layout.DirectionTB,
//	})
//	path, _ := export.New(".").Export(context.Background(), export.FormatJSON, nil, nodes, g.Edges, export.Options{})
//
// # Main Packages
//
// [canvas] - The graph data model: nodes, edges, positions, display
// data, and the JSON serialization pair every other package builds on.
//
// [registry] - The node-type catalog mapping type keys to visual and
// behavioral definitions, loadable from TOML catalog files.
//
// [layout] - Pluggable auto-layout with three algorithms behind one
// entry point: a pure Go layered (dagre-style) engine plus two Graphviz
// delegated engines.
//
// [history] - Bounded linear undo/redo over deep-copied graph snapshots.
//
// [export] - The export pipeline: versioned JSON documents plus raster
// and vector capture through a rendered view handle, and viewport
// fitting.
//
// [render] - A reference implementation of the view handle that draws
// graphs with fogleman/gg and hand-built SVG.
//
// [pipeline] - Orchestration shared by the CLI and the HTTP API:
// layout caching, observability events, and export dispatch.
//
// [cache] - Content-addressed caches (memory, file, null) for derived
// layout results.
//
// [observability] - Pluggable hook interfaces for layout, export, and
// cache events.
//
// [errors] - Structured errors with machine-readable codes shared by
// the CLI and the API.
//
// [canvas]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/canvas
// [registry]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/registry
// [layout]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/layout
// [history]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/history
// [export]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/export
// [render]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/cache
// [observability]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/observability
// [errors]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/errors
package pkg
