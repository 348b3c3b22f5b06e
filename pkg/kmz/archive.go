package kmz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// mapDescriptionExt marks the map description entry inside a KMZ archive.
const mapDescriptionExt = ".kml"

// ExtractKML locates and returns the map description inside a KMZ archive.
//
// The archive is read fully in memory; KMZ exports are small. Entries are scanned
// in container order and the first one with a .kml extension (any case) wins, a
// deterministic tie-break when an archive carries several. An archive without any
// qualifying entry fails with *ErrNoMapDescription.
//
// Example:
//
//	document, err := kmz.ExtractKML(archiveBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ExtractKML(archive []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	for _, entry := range reader.File {
		if !strings.EqualFold(filepath.Ext(entry.Name), mapDescriptionExt) {
			continue
		}
		return readArchiveEntry(entry)
	}

	return nil, &ErrNoMapDescription{Entries: len(reader.File)}
}

// readArchiveEntry decompresses a single archive entry.
func readArchiveEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open archive entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read archive entry %s: %w", entry.Name, err)
	}
	return data, nil
}
