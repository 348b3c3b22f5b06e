package kmz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RenderOptions configures drawing output.
type RenderOptions struct {
	// Canvas is the drawing space size. Zero means DefaultCanvas (1000×1000).
	Canvas Canvas

	// PointRadius is the circle radius in drawing units. Zero means 5.
	PointRadius float64

	// FillColor is the circle fill. Empty means "red".
	FillColor string
}

// DefaultRenderOptions returns render options with defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Canvas:      DefaultCanvas(),
		PointRadius: 5,
		FillColor:   "red",
	}
}

// normalized fills in defaults for zero-valued fields.
func (o RenderOptions) normalized() RenderOptions {
	if o.Canvas.Width <= 0 || o.Canvas.Height <= 0 {
		o.Canvas = DefaultCanvas()
	}
	if o.PointRadius <= 0 {
		o.PointRadius = 5
	}
	if o.FillColor == "" {
		o.FillColor = "red"
	}
	return o
}

// RenderSVG serializes projected points as a self-contained SVG document.
//
// The document is a fixed shape: an svg element of the canvas size wrapping one
// circle element per point, in input order, with no external references. Circle
// centers are written with two decimal places.
func RenderSVG(points []ProjectedPoint, opts RenderOptions) []byte {
	opts = opts.normalized()

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		formatLength(opts.Canvas.Width), formatLength(opts.Canvas.Height),
		formatLength(opts.Canvas.Width), formatLength(opts.Canvas.Height))

	for _, p := range points {
		fmt.Fprintf(&sb, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\"/>\n",
			formatCoord(p.X), formatCoord(p.Y), formatLength(opts.PointRadius), opts.FillColor)
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// formatCoord renders a drawing coordinate with two decimal places.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatLength renders a canvas dimension or radius without trailing zeros.
func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// unsafeFilenameChars matches every character that may not appear in an exported
// drawing filename.
var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeLayerName makes a layer name safe for use as a filename.
//
// Every character outside [A-Za-z0-9_-] becomes one underscore. The replacement
// is one-to-one: consecutive disallowed characters become consecutive
// underscores, never collapsed. Distinct layer names can therefore sanitize to
// the same filename; the export accepts that collision and the later entry wins.
//
// Example:
//
//	kmz.SanitizeLayerName("Route #1 (north)") // "Route__1__north_"
func SanitizeLayerName(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
