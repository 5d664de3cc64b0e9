// Package layout computes node positions for workflow graphs.
//
// Three interchangeable algorithms are provided behind one entry point:
//
//   - AlgorithmDagre: layered (rank/order) layout, pure Go, deterministic
//     for a fixed input graph and options.
//   - AlgorithmElkLayered: layered layout delegated to the Graphviz dot
//     engine. Determinism is not guaranteed by the underlying heuristics.
//   - AlgorithmElkForce: force-directed placement via the Graphviz fdp
//     engine. Direction and rank spacing do not apply; determinism is not
//     guaranteed.
//
// Layout is a non-destructive transform: the returned slice has the same
// length, IDs, types, and data as the input, and only positions change.
// Edges whose endpoints are missing from the node set are silently
// ignored. For spacing purposes every node occupies a fixed virtual
// 180×80 box regardless of its rendered size - a deliberate
// approximation that keeps the engine independent of the rendering
// layer.
package layout

import (
	"context"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// Algorithm selects one of the three layout strategies. The set is
// closed: unknown values are rejected, never silently mapped to a
// default.
type Algorithm string

// Supported layout algorithms.
const (
	AlgorithmDagre      Algorithm = "dagre"
	AlgorithmElkLayered Algorithm = "elk-layered"
	AlgorithmElkForce   Algorithm = "elk-force"
)

// Direction is the primary axis of a layered layout. Ignored by
// AlgorithmElkForce.
type Direction string

// Layout directions.
const (
	DirectionTB Direction = "TB" // top to bottom
	DirectionLR Direction = "LR" // left to right
	DirectionBT Direction = "BT" // bottom to top
	DirectionRL Direction = "RL" // right to left
)

// Virtual node bounding box used for spacing. Independent of rendered
// node size.
const (
	NodeWidth  = 180.0
	NodeHeight = 80.0
)

// Default option values.
const (
	DefaultNodeSpacing = 50.0
	DefaultRankSpacing = 100.0
)

// Options configures a layout run. The zero value selects dagre, TB, and
// the default spacings.
type Options struct {
	Algorithm   Algorithm
	Direction   Direction
	NodeSpacing float64 // gap between nodes within a rank
	RankSpacing float64 // gap between ranks; ignored by elk-force
}

func (o Options) withDefaults() Options {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmDagre
	}
	if o.Direction == "" {
		o.Direction = DirectionTB
	}
	if o.NodeSpacing <= 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.RankSpacing <= 0 {
		o.RankSpacing = DefaultRankSpacing
	}
	return o
}

// engine is the strategy each algorithm implements. It returns center
// coordinates keyed by node ID; nodes absent from the result keep their
// input position.
type engine interface {
	computePositions(ctx context.Context, nodes []canvas.Node, edges []canvas.Edge, opts Options) (map[string]canvas.Position, error)
}

func engineFor(a Algorithm) (engine, error) {
	switch a {
	case AlgorithmDagre:
		return dagreEngine{}, nil
	case AlgorithmElkLayered:
		return graphvizEngine{layout: layeredGraphvizLayout, layered: true}, nil
	case AlgorithmElkForce:
		return graphvizEngine{layout: forceGraphvizLayout}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown layout algorithm: %s", a)
	}
}

func validDirection(d Direction) bool {
	switch d {
	case DirectionTB, DirectionLR, DirectionBT, DirectionRL:
		return true
	}
	return false
}

// Layout recomputes positions for nodes and returns a new slice. The
// input is never mutated: every returned node is a deep copy of its
// counterpart with only Position replaced. An empty node list returns an
// empty slice without invoking the algorithm.
//
// Engine failures propagate wrapped with the algorithm name; the caller
// may retry with a different algorithm.
func Layout(ctx context.Context, nodes []canvas.Node, edges []canvas.Edge, opts Options) ([]canvas.Node, error) {
	opts = opts.withDefaults()

	eng, err := engineFor(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if !validDirection(opts.Direction) {
		return nil, errors.New(errors.ErrCodeInvalidDirection, "unknown layout direction: %s", opts.Direction)
	}
	if len(nodes) == 0 {
		return []canvas.Node{}, nil
	}

	centers, err := eng.computePositions(ctx, nodes, edges, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "%s layout", opts.Algorithm)
	}

	out := make([]canvas.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
		if c, ok := centers[n.ID]; ok {
			// Engines report node centers; the canvas uses top-left.
			out[i].Position = canvas.Position{
				X: c.X - NodeWidth/2,
				Y: c.Y - NodeHeight/2,
			}
		}
	}
	return out, nil
}

// presentEdges filters edges down to those whose endpoints both exist in
// the node index, dropping self-loops. Dangling edges are legal input
// and simply do not participate in layout.
func presentEdges(edges []canvas.Edge, index map[string]int) []canvas.Edge {
	out := make([]canvas.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		if _, ok := index[e.Source]; !ok {
			continue
		}
		if _, ok := index[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
