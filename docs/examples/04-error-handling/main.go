package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// describeFailure turns a pipeline error into a short human explanation.
func describeFailure(err error) string {
	var noKML *kmz.ErrNoMapDescription
	if errors.As(err, &noKML) {
		return fmt.Sprintf("archive has no map description (%d entries checked)", noKML.Entries)
	}

	var malformed *kmz.ErrMalformedCoordinate
	if errors.As(err, &malformed) {
		return fmt.Sprintf("bad coordinate %q: %s", malformed.Payload, malformed.Reason)
	}

	var invalid *kmz.ErrInvalidCoordinate
	if errors.As(err, &invalid) {
		return fmt.Sprintf("coordinate out of range: %.4f,%.4f", invalid.Lon, invalid.Lat)
	}

	var noData *kmz.ErrNoData
	if errors.As(err, &noData) {
		return fmt.Sprintf("no coordinates in any of %d folders", noData.Folders)
	}

	return err.Error()
}

func main() {
	archive, err := os.ReadFile("city-map.kmz")
	if err != nil {
		log.Fatal(err)
	}

	doc, err := kmz.NewParser().Parse(archive)
	if err != nil {
		log.Fatalf("parse failed: %s", describeFailure(err))
	}
	fmt.Printf("Parsed %q: %d layers\n", doc.Title(), doc.LayerCount())

	// Out-of-range zoom fails with a typed error
	_, err = kmz.ViewportAround(doc.Bounds().Center(), 99)
	var invalidZoom *kmz.ErrInvalidZoom
	if errors.As(err, &invalidZoom) {
		fmt.Printf("Expected error: zoom %d out of range\n", invalidZoom.Zoom)
	}

	// Unknown layer selections fail before anything is written
	_, err = kmz.Export(doc, kmz.ExportOptions{Layers: []string{"Nope"}})
	var unknown *kmz.ErrUnknownLayer
	if errors.As(err, &unknown) {
		fmt.Printf("Expected error: layer %q not in document\n", unknown.Name)
	}
}
