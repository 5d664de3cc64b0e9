package render

import (
	"context"
	"image"

	"github.com/fogleman/gg"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/export"
	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// Node box drawn on the canvas, matching the layout engine's virtual
// bounding box so rendered output lines up with computed positions.
const (
	nodeWidth    = 180.0
	nodeHeight   = 80.0
	nodeCorner   = 10.0
	nodeStroke   = 2.0
	statusRadius = 5.0
)

// Fallback chrome for nodes whose type is not registered.
const (
	fallbackColor = "#94a3b8"
	nodeFill      = "#ffffff"
	edgeColor     = "#64748b"
	labelColor    = "#1e293b"
	sublabelColor = "#64748b"
)

var statusColors = map[canvas.Status]string{
	canvas.StatusIdle:      "#94a3b8",
	canvas.StatusRunning:   "#3b82f6",
	canvas.StatusCompleted: "#22c55e",
	canvas.StatusError:     "#ef4444",
	canvas.StatusWarning:   "#f59e0b",
}

// CanvasView renders a graph for capture. It implements export.View.
// Node chrome (color, label fallback) is resolved through the registry
// at capture time; unregistered types render with neutral defaults.
//
// CanvasView holds references to the slices it was given - it is a view
// over live canvas state, not a snapshot.
type CanvasView struct {
	nodes    []canvas.Node
	edges    []canvas.Edge
	registry *registry.Registry
}

// NewCanvasView creates a view over the given graph. The registry may be
// nil, in which case every node renders with fallback chrome.
func NewCanvasView(nodes []canvas.Node, edges []canvas.Edge, reg *registry.Registry) *CanvasView {
	return &CanvasView{nodes: nodes, edges: edges, registry: reg}
}

// scene is the capture-time geometry: the fitted viewport plus fast node
// lookup for edge routing.
type scene struct {
	frame export.Frame
	vp    export.Viewport
	index map[string]int
}

func (v *CanvasView) buildScene(f export.Frame) (scene, error) {
	if len(v.nodes) == 0 {
		return scene{}, errors.New(errors.ErrCodeCaptureFailed, "cannot capture an empty canvas view")
	}
	return scene{
		frame: f,
		vp:    export.FitViewport(v.nodes, f.Width, f.Height, f.Padding),
		index: canvas.NodeIndex(v.nodes),
	}, nil
}

// toFrame maps a canvas point into frame coordinates.
func (s scene) toFrame(p canvas.Position) (float64, float64) {
	return p.X*s.vp.Zoom + s.vp.X, p.Y*s.vp.Zoom + s.vp.Y
}

// nodeChrome resolves display color and label for a node.
func (v *CanvasView) nodeChrome(n canvas.Node) (color, label string) {
	color = fallbackColor
	if v.registry != nil {
		if def, ok := v.registry.Get(n.Type); ok && def.Color != "" {
			color = def.Color
		}
	}
	label = n.Data.Label
	if label == "" {
		label = n.Type
	}
	return color, label
}

// CaptureImage rasterizes the view at f.Scale pixels per frame unit.
func (v *CanvasView) CaptureImage(ctx context.Context, f export.Frame) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := v.buildScene(f)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(f.Width*f.Scale), int(f.Height*f.Scale))
	dc.SetHexColor(f.Background)
	dc.Clear()
	dc.Scale(f.Scale, f.Scale)
	dc.Translate(s.vp.X, s.vp.Y)
	dc.Scale(s.vp.Zoom, s.vp.Zoom)

	face, _ := loadFontFace(13 * f.Scale * s.vp.Zoom)
	if face != nil {
		dc.SetFontFace(face)
	}

	for _, e := range v.edges {
		v.drawEdge(dc, s, e)
	}
	for _, n := range v.nodes {
		v.drawNode(dc, n, face != nil)
	}

	return dc.Image(), nil
}

func (v *CanvasView) drawEdge(dc *gg.Context, s scene, e canvas.Edge) {
	si, ok := s.index[e.Source]
	if !ok {
		return
	}
	ti, ok := s.index[e.Target]
	if !ok {
		return
	}
	from, to := edgeAnchors(v.nodes[si].Position, v.nodes[ti].Position)

	dc.SetHexColor(edgeColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()

	ax, ay, bx, by, cx, cy := arrowhead(from, to)
	dc.MoveTo(ax, ay)
	dc.LineTo(bx, by)
	dc.LineTo(cx, cy)
	dc.ClosePath()
	dc.Fill()
}

func (v *CanvasView) drawNode(dc *gg.Context, n canvas.Node, hasFont bool) {
	color, label := v.nodeChrome(n)
	x, y := n.Position.X, n.Position.Y

	dc.SetHexColor(nodeFill)
	dc.DrawRoundedRectangle(x, y, nodeWidth, nodeHeight, nodeCorner)
	dc.Fill()
	dc.SetHexColor(color)
	dc.SetLineWidth(nodeStroke)
	dc.DrawRoundedRectangle(x, y, nodeWidth, nodeHeight, nodeCorner)
	dc.Stroke()

	if sc, ok := statusColors[n.Data.Status]; ok {
		dc.SetHexColor(sc)
		dc.DrawCircle(x+nodeWidth-14, y+14, statusRadius)
		dc.Fill()
	}

	if hasFont {
		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(label, x+nodeWidth/2, y+nodeHeight/2-8, 0.5, 0.5)
		dc.SetHexColor(sublabelColor)
		dc.DrawStringAnchored(n.Type, x+nodeWidth/2, y+nodeHeight/2+12, 0.5, 0.5)
	}
}

// edgeAnchors picks the connector endpoints: bottom-center of the source
// box to top-center of the target box when the target sits below,
// side-centers otherwise.
func edgeAnchors(src, dst canvas.Position) (canvas.Position, canvas.Position) {
	if dst.Y >= src.Y+nodeHeight || src.Y >= dst.Y+nodeHeight {
		from := canvas.Position{X: src.X + nodeWidth/2, Y: src.Y + nodeHeight}
		to := canvas.Position{X: dst.X + nodeWidth/2, Y: dst.Y}
		if src.Y > dst.Y {
			from = canvas.Position{X: src.X + nodeWidth/2, Y: src.Y}
			to = canvas.Position{X: dst.X + nodeWidth/2, Y: dst.Y + nodeHeight}
		}
		return from, to
	}
	from := canvas.Position{X: src.X + nodeWidth, Y: src.Y + nodeHeight/2}
	to := canvas.Position{X: dst.X, Y: dst.Y + nodeHeight/2}
	if src.X > dst.X {
		from = canvas.Position{X: src.X, Y: src.Y + nodeHeight/2}
		to = canvas.Position{X: dst.X + nodeWidth, Y: dst.Y + nodeHeight/2}
	}
	return from, to
}
