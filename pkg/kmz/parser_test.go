package kmz

import (
	"errors"
	"testing"
)

// TestParseArchive tests the full extract-and-parse path
func TestParseArchive(t *testing.T) {
	doc := fixtureDocument(t)

	if doc.Title() != "City Map" {
		t.Errorf("got title %q, expected %q", doc.Title(), "City Map")
	}
	if doc.Description() != "Exported walking map" {
		t.Errorf("got description %q, expected %q", doc.Description(), "Exported walking map")
	}

	if doc.LayerCount() != 2 {
		t.Fatalf("got %d layers, expected 2 (empty folder omitted)", doc.LayerCount())
	}
	names := doc.LayerNames()
	if names[0] != "Parks" || names[1] != "Route #1 (north)" {
		t.Errorf("got layer order %v, expected document order", names)
	}
	if _, ok := doc.Layer("Trails"); ok {
		t.Error("empty folder Trails must not appear as a layer")
	}

	parks, ok := doc.Layer("Parks")
	if !ok {
		t.Fatal("layer Parks missing")
	}
	if parks.PointCount() != 2 {
		t.Fatalf("got %d points, expected 2", parks.PointCount())
	}
	if parks.Points()[0] != (Point{Lon: 10.0, Lat: 20.0}) {
		t.Errorf("got %v, expected altitude stripped to (10.0, 20.0)", parks.Points()[0])
	}

	if doc.PointCount() != 3 {
		t.Errorf("PointCount() = %d, expected 3", doc.PointCount())
	}
}

// TestParseBounds tests global bounding box accumulation across layers
func TestParseBounds(t *testing.T) {
	doc := fixtureDocument(t)

	bounds := doc.Bounds()
	expected := Bounds{MinLon: 10.0, MaxLon: 10.5, MinLat: 20.0, MaxLat: 20.5}
	if bounds != expected {
		t.Errorf("got %+v, expected %+v", bounds, expected)
	}

	center := bounds.Center()
	if center != (Point{Lon: 10.25, Lat: 20.25}) {
		t.Errorf("got center %v, expected the bbox midpoint", center)
	}
}

// TestParseKML tests parsing a bare map description without an archive
func TestParseKML(t *testing.T) {
	doc, err := NewParser().ParseKML([]byte(fixtureKML))
	if err != nil {
		t.Fatalf("ParseKML() error = %v", err)
	}
	if doc.LayerCount() != 2 {
		t.Errorf("got %d layers, expected 2", doc.LayerCount())
	}
}

// TestParseErrorKinds tests that parse failures surface as public error types
func TestParseErrorKinds(t *testing.T) {
	t.Run("no map description", func(t *testing.T) {
		archive := buildKMZ(t, []zipEntry{{name: "readme.txt", data: "x"}})
		_, err := NewParser().Parse(archive)
		var notFound *ErrNoMapDescription
		if !errors.As(err, &notFound) {
			t.Fatalf("got %v, expected *ErrNoMapDescription", err)
		}
	})

	t.Run("no data", func(t *testing.T) {
		archive := buildKMZ(t, []zipEntry{{
			name: "doc.kml",
			data: `<kml><Document><Folder><name>Empty</name></Folder></Document></kml>`,
		}})
		_, err := NewParser().Parse(archive)
		var noData *ErrNoData
		if !errors.As(err, &noData) {
			t.Fatalf("got %v, expected *ErrNoData", err)
		}
		if noData.Folders != 1 {
			t.Errorf("got %d folders, expected 1", noData.Folders)
		}
	})

	t.Run("malformed coordinate", func(t *testing.T) {
		archive := buildKMZ(t, []zipEntry{{
			name: "doc.kml",
			data: `<kml><Folder><name>Bad</name>
				<Placemark><Point><coordinates>10.0</coordinates></Point></Placemark>
			</Folder></kml>`,
		}})
		_, err := NewParser().Parse(archive)
		var malformed *ErrMalformedCoordinate
		if !errors.As(err, &malformed) {
			t.Fatalf("got %v, expected *ErrMalformedCoordinate", err)
		}
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		archive := buildKMZ(t, []zipEntry{{
			name: "doc.kml",
			data: `<kml><Folder><name>Offshore</name>
				<Placemark><Point><coordinates>200.0,10.0</coordinates></Point></Placemark>
			</Folder></kml>`,
		}})
		_, err := NewParser().Parse(archive)
		var invalid *ErrInvalidCoordinate
		if !errors.As(err, &invalid) {
			t.Fatalf("got %v, expected *ErrInvalidCoordinate", err)
		}
		if invalid.Lon != 200.0 {
			t.Errorf("got lon %f, expected 200.0", invalid.Lon)
		}
	})
}

// TestParseWithOptions tests option pass-through to the parsing step
func TestParseWithOptions(t *testing.T) {
	archive := buildKMZ(t, []zipEntry{{
		name: "doc.kml",
		data: `<kml>
			<Folder><Placemark><Point><coordinates>200.0,10.0</coordinates></Point></Placemark></Folder>
		</kml>`,
	}})

	opts := DefaultParseOptions()
	opts.ValidateCoordinates = false
	opts.FallbackLayerName = "Imported"

	doc, err := NewParser().ParseWithOptions(archive, opts)
	if err != nil {
		t.Fatalf("ParseWithOptions() error = %v", err)
	}

	layer, ok := doc.Layer("Imported")
	if !ok {
		t.Fatalf("got layers %v, expected fallback name Imported", doc.LayerNames())
	}
	if layer.Points()[0].Lon != 200.0 {
		t.Error("validation off must pass the raw longitude through")
	}
}
