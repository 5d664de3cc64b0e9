package export

import (
	"math"
	"testing"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
)

func TestFitViewportEmpty(t *testing.T) {
	vp := FitViewport(nil, 800, 600, 0)
	if vp.Zoom != 1 || vp.X != 0 || vp.Y != 0 {
		t.Errorf("got %+v, want identity viewport", vp)
	}
}

func TestFitViewportSingleNodeCentered(t *testing.T) {
	nodes := []canvas.Node{{Position: canvas.Position{X: 100, Y: 100}}}
	vp := FitViewport(nodes, 800, 600, 0)

	// One node fits at far more than max zoom; the clamp keeps it at 2.
	if vp.Zoom != 2 {
		t.Fatalf("Zoom = %v, want 2", vp.Zoom)
	}

	// The node center must land on the frame center.
	centerX := (100+90)*vp.Zoom + vp.X
	centerY := (100+40)*vp.Zoom + vp.Y
	if math.Abs(centerX-400) > 1e-9 || math.Abs(centerY-300) > 1e-9 {
		t.Errorf("node center maps to (%v, %v), want (400, 300)", centerX, centerY)
	}
}

func TestFitViewportZoomFloor(t *testing.T) {
	// A graph far wider than the frame still never drops below 0.1.
	nodes := []canvas.Node{
		{Position: canvas.Position{X: 0, Y: 0}},
		{Position: canvas.Position{X: 100000, Y: 0}},
	}
	vp := FitViewport(nodes, 800, 600, 0)
	if vp.Zoom != 0.1 {
		t.Errorf("Zoom = %v, want 0.1", vp.Zoom)
	}
}

func TestFitViewportPadding(t *testing.T) {
	nodes := []canvas.Node{
		{Position: canvas.Position{X: 0, Y: 0}},
		{Position: canvas.Position{X: 620, Y: 0}},
	}
	// Bounds are 800x80. Without padding the width fits exactly at zoom 1;
	// padding forces it smaller.
	unpadded := FitViewport(nodes, 800, 600, 0)
	padded := FitViewport(nodes, 800, 600, 100)

	if unpadded.Zoom != 1 {
		t.Fatalf("unpadded Zoom = %v, want 1", unpadded.Zoom)
	}
	if padded.Zoom >= unpadded.Zoom {
		t.Errorf("padding did not shrink zoom: %v >= %v", padded.Zoom, unpadded.Zoom)
	}
	if want := 600.0 / 800.0; math.Abs(padded.Zoom-want) > 1e-9 {
		t.Errorf("padded Zoom = %v, want %v", padded.Zoom, want)
	}
}

func TestFitViewportUsesTightestAxis(t *testing.T) {
	// Tall graph: the height constraint must win.
	nodes := []canvas.Node{
		{Position: canvas.Position{X: 0, Y: 0}},
		{Position: canvas.Position{X: 0, Y: 1120}},
	}
	vp := FitViewport(nodes, 800, 600, 0)
	if want := 0.5; math.Abs(vp.Zoom-want) > 1e-9 {
		t.Errorf("Zoom = %v, want %v", vp.Zoom, want)
	}
}
