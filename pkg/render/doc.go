// Package render provides CanvasView, the reference implementation of the
// export.View capture handle.
//
// The real rendering layer lives outside this module; CanvasView stands
// in for it so the CLI and tests can produce raster and vector artifacts
// from a bare graph. It draws the scene the way the editing UI does:
// edges as connector lines with arrowheads, nodes as rounded rectangles
// styled from the node-type registry, with a status indicator and label.
//
// Raster capture draws through fogleman/gg into an image scaled by the
// requested pixel-density multiplier. Vector capture emits the same
// scene as a standalone SVG document.
package render
