package render

import (
	"math"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
)

const (
	arrowLength = 10.0
	arrowWidth  = 7.0
)

// arrowhead returns the three corners of the triangle marking the edge
// tip at to, oriented along the from→to direction.
func arrowhead(from, to canvas.Position) (ax, ay, bx, by, cx, cy float64) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	baseX := to.X - arrowLength*math.Cos(angle)
	baseY := to.Y - arrowLength*math.Sin(angle)
	perpX := (arrowWidth / 2) * math.Cos(angle+math.Pi/2)
	perpY := (arrowWidth / 2) * math.Sin(angle+math.Pi/2)

	return to.X, to.Y,
		baseX + perpX, baseY + perpY,
		baseX - perpX, baseY - perpY
}
