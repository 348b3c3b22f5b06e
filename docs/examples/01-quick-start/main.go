package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

func main() {
	// Read the KMZ archive
	archive, err := os.ReadFile("city-map.kmz")
	if err != nil {
		log.Fatal(err)
	}

	// Parse it
	parser := kmz.NewParser()
	doc, err := parser.Parse(archive)
	if err != nil {
		log.Fatal(err)
	}

	// Print document info
	fmt.Printf("Title: %s\n", doc.Title())
	fmt.Printf("Layers: %d\n", doc.LayerCount())
	fmt.Printf("Points: %d\n", doc.PointCount())

	// Get the data bounds
	bounds := doc.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinLon, bounds.MinLat,
		bounds.MaxLon, bounds.MaxLat)

	for _, layer := range doc.Layers() {
		fmt.Printf("  %s: %d points\n", layer.Name(), layer.PointCount())
	}
}
