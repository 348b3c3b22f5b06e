package kmz

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// drawingExt is the file extension of exported drawing entries.
const drawingExt = ".svg"

// Fixed download metadata for exported archives.
const (
	ExportFilename    = "svg_layers.zip"
	ExportContentType = "application/zip"
)

// ExportOptions configures one export run.
type ExportOptions struct {
	// Layers selects layers by name; the export keeps document layer order
	// regardless of selection order. Nil or empty selects every layer.
	// A name that does not exist in the document is an error.
	Layers []string

	// Viewport restricts points to a window. The zero value means the
	// document's DefaultViewport.
	Viewport Bounds

	// Render configures canvas size, point radius and fill color.
	Render RenderOptions
}

// LayerPreview carries one selected layer's visible points in geographic
// coordinates, for callers that draw their own preview.
type LayerPreview struct {
	Name   string
	Points []Point
}

// ExportResult is the bundle produced by one export run.
type ExportResult struct {
	// Archive is the zip container, one drawing entry per selected layer.
	Archive []byte

	// Filename is the fixed suggested download filename.
	Filename string

	// ContentType is the fixed download content type.
	ContentType string

	// Viewport is the window the export was filtered to.
	Viewport Bounds

	// Previews holds each selected layer's visible geographic points, in the
	// same layer order as the archive entries.
	Previews []LayerPreview
}

// Export filters, projects, serializes and packs the selected layers.
//
// Every selected layer produces one SVG entry named after its sanitized layer
// name, including layers whose visible point set is empty. Distinct layer names
// can sanitize to the same entry name; both entries are written and the later
// one wins on extraction, an accepted limitation. The archive is staged in a
// fresh in-memory buffer per call, so concurrent exports share nothing.
//
// Any failure returns a nil result: no partial archive, no partial preview.
//
// Example:
//
//	result, err := kmz.Export(doc, kmz.ExportOptions{
//	    Layers:   []string{"Parks"},
//	    Viewport: viewport,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Archive, 0o644)
func Export(doc *Document, opts ExportOptions) (*ExportResult, error) {
	selected, err := selectLayers(doc, opts.Layers)
	if err != nil {
		return nil, err
	}

	viewport := opts.Viewport
	if viewport == (Bounds{}) {
		viewport = doc.DefaultViewport()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	previews := make([]LayerPreview, 0, len(selected))
	for _, name := range selected {
		points := doc.PointsInViewport(name, viewport)

		projected, err := ProjectAll(points, viewport, opts.Render.normalized().Canvas)
		if err != nil {
			return nil, err
		}

		entry, err := zw.Create(SanitizeLayerName(name) + drawingExt)
		if err != nil {
			return nil, fmt.Errorf("create archive entry for layer %q: %w", name, err)
		}
		if _, err := entry.Write(RenderSVG(projected, opts.Render)); err != nil {
			return nil, fmt.Errorf("write archive entry for layer %q: %w", name, err)
		}

		previews = append(previews, LayerPreview{Name: name, Points: points})
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return &ExportResult{
		Archive:     buf.Bytes(),
		Filename:    ExportFilename,
		ContentType: ExportContentType,
		Viewport:    viewport,
		Previews:    previews,
	}, nil
}

// selectLayers resolves the selection to layer names in document order.
func selectLayers(doc *Document, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return doc.LayerNames(), nil
	}

	wanted := make(map[string]bool, len(requested))
	for _, name := range requested {
		if _, ok := doc.Layer(name); !ok {
			return nil, &ErrUnknownLayer{Name: name}
		}
		wanted[name] = true
	}

	selected := make([]string, 0, len(wanted))
	for _, name := range doc.LayerNames() {
		if wanted[name] {
			selected = append(selected, name)
		}
	}
	return selected, nil
}
