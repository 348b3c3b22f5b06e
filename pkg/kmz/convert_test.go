package kmz

import (
	"errors"
	"strings"
	"testing"
)

// TestConvertDefaults tests the zero-options pipeline end to end
func TestConvertDefaults(t *testing.T) {
	result, err := Convert(fixtureArchive(t), ConvertOptions{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	entries := readArchiveEntries(t, result.Archive)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, expected one per layer", len(entries))
	}
	if result.Filename != ExportFilename || result.ContentType != ExportContentType {
		t.Errorf("got %q/%q, expected the fixed download metadata", result.Filename, result.ContentType)
	}

	// Zero zoom means the default window around the bounding-box midpoint.
	center := result.Viewport.Center()
	if center != (Point{Lon: 10.25, Lat: 20.25}) {
		t.Errorf("got center %v, expected the bounding-box midpoint", center)
	}
}

// TestConvertZoom tests that a wide zoom brings every point into view
func TestConvertZoom(t *testing.T) {
	result, err := Convert(fixtureArchive(t), ConvertOptions{Zoom: MinZoom})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	entries := readArchiveEntries(t, result.Archive)
	if n := strings.Count(entries[0].data, "<circle"); n != 2 {
		t.Errorf("Parks drawing has %d circles at minimum zoom, expected 2", n)
	}
}

// TestConvertCenterClamped tests that an out-of-bounds center is pulled onto the data
func TestConvertCenterClamped(t *testing.T) {
	result, err := Convert(fixtureArchive(t), ConvertOptions{
		Zoom:   MaxZoom,
		Center: &Point{Lon: -170, Lat: -80},
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	// The requested center clamps to the bounds corner (10.0, 20.0), so the
	// tight window lands on the first Parks point instead of empty ocean.
	center := result.Viewport.Center()
	if center != (Point{Lon: 10.0, Lat: 20.0}) {
		t.Errorf("got center %v, expected the clamped corner", center)
	}

	entries := readArchiveEntries(t, result.Archive)
	if n := strings.Count(entries[0].data, "<circle"); n != 1 {
		t.Errorf("Parks drawing has %d circles, expected the point under the center", n)
	}
	if strings.Contains(entries[1].data, "<circle") {
		t.Error("route drawing should be empty this far from its point")
	}
}

// TestConvertLayerSelection tests selection pass-through and unknown names
func TestConvertLayerSelection(t *testing.T) {
	result, err := Convert(fixtureArchive(t), ConvertOptions{
		Zoom:   MinZoom,
		Layers: []string{"Parks"},
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	entries := readArchiveEntries(t, result.Archive)
	if len(entries) != 1 || entries[0].name != "Parks.svg" {
		t.Errorf("got %v, expected only the selected layer", entries)
	}

	_, err = Convert(fixtureArchive(t), ConvertOptions{Layers: []string{"Rivers"}})
	if err == nil || !strings.Contains(err.Error(), "unknown layer") {
		t.Errorf("got %v, expected an unknown-layer error", err)
	}
}

// TestConvertInvalidZoom tests zoom validation through the facade
func TestConvertInvalidZoom(t *testing.T) {
	_, err := Convert(fixtureArchive(t), ConvertOptions{Zoom: 25})
	if err == nil {
		t.Fatal("expected an error for out-of-range zoom")
	}

	var zoomErr *ErrInvalidZoom
	if !errors.As(err, &zoomErr) {
		t.Fatalf("expected ErrInvalidZoom, got %T", err)
	}
}

// TestConvertParseFailure tests that parse errors surface unchanged
func TestConvertParseFailure(t *testing.T) {
	archive := buildKMZ(t, []zipEntry{{name: "readme.txt", data: "no map here"}})

	_, err := Convert(archive, ConvertOptions{})
	if err == nil {
		t.Fatal("expected an error for an archive without a map description")
	}

	var noKML *ErrNoMapDescription
	if !errors.As(err, &noKML) {
		t.Fatalf("expected ErrNoMapDescription, got %T", err)
	}
}

// TestConvertDocumentReuse tests repeated conversion of one parsed document
func TestConvertDocumentReuse(t *testing.T) {
	doc := fixtureDocument(t)
	before := doc.PointCount()

	wide, err := ConvertDocument(doc, ConvertOptions{Zoom: MinZoom})
	if err != nil {
		t.Fatalf("ConvertDocument() error: %v", err)
	}
	tight, err := ConvertDocument(doc, ConvertOptions{Zoom: MaxZoom})
	if err != nil {
		t.Fatalf("ConvertDocument() error: %v", err)
	}

	wideCircles := strings.Count(readArchiveEntries(t, wide.Archive)[0].data, "<circle")
	tightCircles := strings.Count(readArchiveEntries(t, tight.Archive)[0].data, "<circle")
	if wideCircles <= tightCircles {
		t.Errorf("wide window drew %d circles, tight %d; zooming in must not add points",
			wideCircles, tightCircles)
	}

	if doc.PointCount() != before {
		t.Error("conversion must not mutate the document")
	}
}
