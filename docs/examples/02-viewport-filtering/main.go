package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

func main() {
	// Parse the archive
	archive, err := os.ReadFile("city-map.kmz")
	if err != nil {
		log.Fatal(err)
	}
	doc, err := kmz.NewParser().Parse(archive)
	if err != nil {
		log.Fatal(err)
	}

	// A zoom 12 window centered on downtown
	viewport, err := kmz.ViewportAround(kmz.Point{Lon: -71.06, Lat: 42.36}, 12)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Viewport: %.4f° x %.4f°\n", viewport.Width(), viewport.Height())

	// Query the R-tree index for visible points (O(log n))
	for _, layer := range doc.Layers() {
		visible := doc.PointsInViewport(layer.Name(), viewport)
		fmt.Printf("  %s: %d of %d points visible\n",
			layer.Name(), len(visible), layer.PointCount())
	}

	// The default viewport centers on the dataset midpoint at zoom 5
	fallback := doc.DefaultViewport()
	fmt.Printf("Default center: %.4f,%.4f\n",
		fallback.Center().Lon, fallback.Center().Lat)
}
