package export

import "github.com/flowcanvas/flowcanvas/pkg/canvas"

// Viewport is a pan/zoom transform that maps canvas coordinates into a
// target frame: screen = canvas*Zoom + (X, Y).
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Zoom limits for fitted viewports, matching what the editing UI allows.
const (
	minFitZoom = 0.1
	maxFitZoom = 2.0
)

// Node box the fit calculation assumes, matching the layout engine's
// virtual bounding box.
const (
	fitNodeWidth  = 180.0
	fitNodeHeight = 80.0
)

// FitViewport computes the viewport that fits every node into a
// width×height frame with the given padding on all sides, centered. The
// zoom is clamped to [0.1, 2]. An empty node set yields the identity
// viewport. This utility is independent of any export operation - it
// backs "fit to view" actions.
func FitViewport(nodes []canvas.Node, width, height, padding float64) Viewport {
	if len(nodes) == 0 {
		return Viewport{Zoom: 1}
	}

	minX, minY := nodes[0].Position.X, nodes[0].Position.Y
	maxX, maxY := minX+fitNodeWidth, minY+fitNodeHeight
	for _, n := range nodes[1:] {
		minX = min(minX, n.Position.X)
		minY = min(minY, n.Position.Y)
		maxX = max(maxX, n.Position.X+fitNodeWidth)
		maxY = max(maxY, n.Position.Y+fitNodeHeight)
	}

	boundsW := maxX - minX
	boundsH := maxY - minY
	zoom := min((width-2*padding)/boundsW, (height-2*padding)/boundsH)
	zoom = min(max(zoom, minFitZoom), maxFitZoom)

	centerX := minX + boundsW/2
	centerY := minY + boundsH/2
	return Viewport{
		X:    width/2 - centerX*zoom,
		Y:    height/2 - centerY*zoom,
		Zoom: zoom,
	}
}
