package kmz

import (
	"archive/zip"
	"bytes"
	"testing"
)

// buildKMZ assembles an in-memory zip archive from entry names to contents.
func buildKMZ(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			t.Fatalf("create fixture entry %s: %v", entry.name, err)
		}
		if _, err := w.Write([]byte(entry.data)); err != nil {
			t.Fatalf("write fixture entry %s: %v", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close fixture archive: %v", err)
	}
	return buf.Bytes()
}

type zipEntry struct {
	name string
	data string
}

const fixtureKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>City Map</name>
    <description>Exported walking map</description>
    <Folder>
      <name>Parks</name>
      <Placemark><Point><coordinates>10.0,20.0,0</coordinates></Point></Placemark>
      <Placemark><Point><coordinates>10.5,20.5,0</coordinates></Point></Placemark>
    </Folder>
    <Folder>
      <name>Trails</name>
    </Folder>
    <Folder>
      <name>Route #1 (north)</name>
      <Placemark><Point><coordinates>10.2,20.2,0</coordinates></Point></Placemark>
    </Folder>
  </Document>
</kml>`

// fixtureArchive returns a KMZ archive holding fixtureKML as doc.kml.
func fixtureArchive(t *testing.T) []byte {
	t.Helper()
	return buildKMZ(t, []zipEntry{{name: "doc.kml", data: fixtureKML}})
}

// fixtureDocument parses fixtureArchive with defaults.
func fixtureDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := NewParser().Parse(fixtureArchive(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}
