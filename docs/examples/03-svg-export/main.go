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

	// Export two layers on a wide canvas with small blue markers
	result, err := kmz.Export(doc, kmz.ExportOptions{
		Layers:   []string{"Parks", "Schools"},
		Viewport: doc.DefaultViewport(),
		Render: kmz.RenderOptions{
			Canvas:      kmz.Canvas{Width: 1920, Height: 1080},
			PointRadius: 3,
			FillColor:   "#3366cc",
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// Write the archive under its suggested name
	if err := os.WriteFile(result.Filename, result.Archive, 0o644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", result.Filename, len(result.Archive))
	for _, preview := range result.Previews {
		fmt.Printf("  %s.svg: %d visible points\n",
			kmz.SanitizeLayerName(preview.Name), len(preview.Points))
	}
}
