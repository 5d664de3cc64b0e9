// Package export serializes workflow graphs to output artifacts.
//
// Four formats are supported: png, jpeg, and svg capture an externally
// supplied rendered view of the canvas; json serializes the graph itself
// to the versioned document schema (see Document) that round-trips
// through Import. The JSON schema deliberately excludes node-type styling
// (icon, color, ports) - it is re-resolved from the registry on import,
// keeping export artifacts decoupled from registry state.
//
// Artifacts render fully in memory before anything touches the
// filesystem, so a failed capture never leaves a partial file behind.
package export

import (
	"bytes"
	"context"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// Format identifies an export output format.
type Format string

// Supported export formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string. Unknown values are a programming
// error on the caller's side and fail immediately, naming the offender.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPNG, FormatJPEG, FormatSVG, FormatJSON:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported export format: %s", s)
	}
}

// DefaultFilename returns the fixed default artifact name for a format
// (workflow.png, workflow.jpeg, workflow.svg, workflow.json).
func DefaultFilename(f Format) string {
	return "workflow." + string(f)
}

// Default option values.
const (
	DefaultWidth   = 1920.0
	DefaultHeight  = 1080.0
	DefaultQuality = 0.92 // jpeg only
	DefaultScale   = 2.0  // pixel-density multiplier for sharpness
)

// Options configures an export run. The zero value selects the 1920×1080
// virtual canvas, white background, 2× raster scale, and the format's
// default filename.
type Options struct {
	Width           float64
	Height          float64
	Quality         float64 // 0-1, meaningful for jpeg
	BackgroundColor string
	Padding         float64
	Scale           float64
	Filename        string         // overrides the per-format default
	Metadata        map[string]any // embedded in json documents
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = DefaultQuality
	}
	if o.BackgroundColor == "" {
		o.BackgroundColor = "#ffffff"
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return o
}

// Frame is the capture request handed to a View: the virtual canvas size,
// padding inside it, background fill, and (for raster capture) the
// pixel-density multiplier.
type Frame struct {
	Width      float64
	Height     float64
	Padding    float64
	Scale      float64
	Background string
}

// View is the handle to the rendered canvas, owned by the rendering
// layer. Raster and vector export capture through it; json export never
// touches it.
type View interface {
	// CaptureImage rasterizes the current view. The returned image is
	// Frame.Scale times larger than the frame in each dimension.
	CaptureImage(ctx context.Context, f Frame) (image.Image, error)

	// CaptureSVG renders the current view as a standalone SVG document.
	CaptureSVG(ctx context.Context, f Frame) ([]byte, error)
}

// Exporter writes export artifacts into a directory. The zero value is
// not usable - use New.
type Exporter struct {
	dir string
}

// New creates an exporter that writes artifacts under dir ("." when
// empty).
func New(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir}
}

// Export serializes the graph (or the captured view) in the given format
// and writes the artifact under the exporter's directory. It returns the
// path of the written file.
//
// Unknown formats fail immediately with no fallback. For png, jpeg, and
// svg a non-nil view is required and capture errors propagate unchanged;
// json ignores the view entirely.
func (x *Exporter) Export(ctx context.Context, format Format, view View, nodes []canvas.Node, edges []canvas.Edge, opts Options) (string, error) {
	opts = opts.withDefaults()

	var (
		artifact []byte
		err      error
	)
	switch format {
	case FormatJSON:
		artifact, err = MarshalDocument(NewDocument(nodes, edges, opts.Metadata))
	case FormatSVG:
		artifact, err = x.captureSVG(ctx, view, opts)
	case FormatPNG, FormatJPEG:
		artifact, err = x.captureRaster(ctx, format, view, opts)
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	name := opts.Filename
	if name == "" {
		name = DefaultFilename(format)
	}
	path := filepath.Join(x.dir, name)
	if err := os.WriteFile(path, artifact, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", path)
	}
	return path, nil
}

func (x *Exporter) frame(opts Options) Frame {
	return Frame{
		Width:      opts.Width,
		Height:     opts.Height,
		Padding:    opts.Padding,
		Scale:      opts.Scale,
		Background: opts.BackgroundColor,
	}
}

func (x *Exporter) captureSVG(ctx context.Context, view View, opts Options) ([]byte, error) {
	if view == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "svg export requires a rendered view")
	}
	svg, err := view.CaptureSVG(ctx, x.frame(opts))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCaptureFailed, err, "capture svg")
	}
	return svg, nil
}

func (x *Exporter) captureRaster(ctx context.Context, format Format, view View, opts Options) ([]byte, error) {
	if view == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s export requires a rendered view", format)
	}
	img, err := view.CaptureImage(ctx, x.frame(opts))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCaptureFailed, err, "capture %s", format)
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case FormatJPEG:
		quality := int(math.Round(opts.Quality * 100))
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}
