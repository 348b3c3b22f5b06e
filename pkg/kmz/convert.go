package kmz

// ConvertOptions configures the one-call pipeline from archive bytes to export.
//
// The zero value is usable: zoom falls back to DefaultZoom, the center to the
// data's bounding-box midpoint, the selection to every layer, and rendering to
// the default canvas. Use DefaultConvertOptions for the explicit defaults,
// including coordinate validation during parsing.
type ConvertOptions struct {
	// Parse configures the parsing step.
	Parse ParseOptions

	// Zoom is the viewport zoom level, MinZoom..MaxZoom. Zero means DefaultZoom.
	Zoom int

	// Center is the pan position. Nil means the midpoint of the global bounds.
	// Centers outside the data bounds are clamped onto them, matching the
	// pan-slider constraint of interactive callers.
	Center *Point

	// Layers selects layers by name. Nil means all.
	Layers []string

	// Render configures canvas size, point radius and fill color.
	Render RenderOptions
}

// DefaultConvertOptions returns convert options with defaults.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		Parse:  DefaultParseOptions(),
		Zoom:   DefaultZoom,
		Render: DefaultRenderOptions(),
	}
}

// Convert runs the whole pipeline on a KMZ archive: extract, parse, viewport,
// filter, project, serialize, pack.
//
// Example:
//
//	result, err := kmz.Convert(archiveBytes, kmz.DefaultConvertOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d layers exported into %s\n", len(result.Previews), result.Filename)
func Convert(archive []byte, opts ConvertOptions) (*ExportResult, error) {
	doc, err := NewParser().ParseWithOptions(archive, opts.Parse)
	if err != nil {
		return nil, err
	}
	return ConvertDocument(doc, opts)
}

// ConvertDocument runs the viewport, filter and export steps on an already
// parsed document. Callers holding a document across several interactions (an
// interactive preview changing zoom or pan) use this to skip re-parsing.
func ConvertDocument(doc *Document, opts ConvertOptions) (*ExportResult, error) {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = DefaultZoom
	}

	center := doc.Bounds().Center()
	if opts.Center != nil {
		center = doc.Bounds().Clamp(*opts.Center)
	}

	viewport, err := ViewportAround(center, zoom)
	if err != nil {
		return nil, err
	}

	return Export(doc, ExportOptions{
		Layers:   opts.Layers,
		Viewport: viewport,
		Render:   opts.Render,
	})
}
