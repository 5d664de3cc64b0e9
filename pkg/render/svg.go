package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/export"
)

const svgFontFamily = `'Inter', 'Helvetica Neue', Arial, sans-serif`

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// CaptureSVG renders the view as a standalone SVG document. The scene
// matches raster capture exactly; only the medium differs.
func (v *CanvasView) CaptureSVG(ctx context.Context, f export.Frame) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := v.buildScene(f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", svgEscaper.Replace(f.Background))
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f,%.2f) scale(%.4f)" font-family="%s" font-size="13">`+"\n",
		s.vp.X, s.vp.Y, s.vp.Zoom, svgFontFamily)

	for _, e := range v.edges {
		v.renderSVGEdge(&buf, s, e)
	}
	for _, n := range v.nodes {
		v.renderSVGNode(&buf, n)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

func (v *CanvasView) renderSVGEdge(buf *bytes.Buffer, s scene, e canvas.Edge) {
	si, ok := s.index[e.Source]
	if !ok {
		return
	}
	ti, ok := s.index[e.Target]
	if !ok {
		return
	}
	from, to := edgeAnchors(v.nodes[si].Position, v.nodes[ti].Position)

	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
		from.X, from.Y, to.X, to.Y, edgeColor)

	ax, ay, bx, by, cx, cy := arrowhead(from, to)
	fmt.Fprintf(buf, `    <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
		ax, ay, bx, by, cx, cy, edgeColor)

	if e.Label != "" {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" fill="%s" font-size="11">%s</text>`+"\n",
			(from.X+to.X)/2, (from.Y+to.Y)/2-4, sublabelColor, svgEscaper.Replace(e.Label))
	}
}

func (v *CanvasView) renderSVGNode(buf *bytes.Buffer, n canvas.Node) {
	color, label := v.nodeChrome(n)
	x, y := n.Position.X, n.Position.Y

	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.0f" height="%.0f" rx="%.0f" fill="%s" stroke="%s" stroke-width="%.0f"/>`+"\n",
		x, y, nodeWidth, nodeHeight, nodeCorner, nodeFill, svgEscaper.Replace(color), nodeStroke)

	if sc, ok := statusColors[n.Data.Status]; ok {
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.0f" fill="%s"/>`+"\n",
			x+nodeWidth-14, y+14, statusRadius, sc)
	}

	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" fill="%s">%s</text>`+"\n",
		x+nodeWidth/2, y+nodeHeight/2-4, labelColor, svgEscaper.Replace(label))
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" fill="%s" font-size="11">%s</text>`+"\n",
		x+nodeWidth/2, y+nodeHeight/2+16, sublabelColor, svgEscaper.Replace(n.Type))
}
