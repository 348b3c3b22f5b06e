// Package kmz converts KMZ map exports into per-layer SVG scatter drawings.
//
// A KMZ archive is a zip container holding one KML map description. The document
// groups point placemarks under named folders; each folder becomes a layer. This
// package parses the archive, filters each layer's points to a zoom/pan viewport,
// projects the survivors into a fixed-size drawing space, and bundles one SVG per
// layer into a downloadable zip.
//
// # Basic Usage
//
//	parser := kmz.NewParser()
//	doc, err := parser.Parse(archiveBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Map: %s with %d layers\n", doc.Title(), len(doc.Layers()))
//
// # Viewport Workflow
//
// The typical interactive workflow computes a viewport from zoom and pan input,
// then filters and exports only the visible points:
//
//	// 1. Compute the viewport (zoom 1..20, half-extent 1/zoom degrees)
//	viewport, err := kmz.ViewportAround(kmz.Point{Lon: -71.05, Lat: 42.35}, 12)
//
//	// 2. Filter a layer to the viewport (strictly inside, boundary excluded)
//	visible := doc.PointsInViewport("Parks", viewport)
//
//	// 3. Export every selected layer as SVG circles bundled in a zip
//	result, err := kmz.Export(doc, kmz.ExportOptions{Viewport: viewport})
//	os.WriteFile(result.Filename, result.Archive, 0o644)
//
// # Projection
//
// Points are mapped linearly from the viewport onto the drawing canvas with the
// vertical axis flipped, since drawing Y grows downward while latitude grows
// northward. The default canvas is 1000x1000 with radius-5 red circles; both are
// adjustable through RenderOptions.
//
// # Error Handling
//
// Pipeline failures are typed and terminal: no partial archive or preview is ever
// produced. Match them with errors.As:
//
//	_, err := parser.Parse(archive)
//	var noData *kmz.ErrNoData
//	if errors.As(err, &noData) {
//	    // archive parsed but contained no points
//	}
package kmz
