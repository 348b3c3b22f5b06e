package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

func main() {
	paths := []string{"north.kmz", "south.kmz", "east.kmz", "west.kmz"}

	// One shared option set; each worker stages its own buffers
	opts := kmz.DefaultConvertOptions()
	opts.Zoom = 8

	outputs, errs := kmz.ConvertFilesParallel(paths, opts, kmz.BatchOptions{
		Parallel:   true,
		Workers:    4,
		SkipErrors: true,
		Progress: func(done, total int) {
			fmt.Printf("\rConverting: %d/%d", done, total)
		},
		ErrorLog: os.Stderr,
	})
	fmt.Println()

	// Write each archive next to its input
	for _, output := range outputs {
		target := strings.TrimSuffix(output.Input, ".kmz") + "_" + output.Result.Filename
		if err := os.WriteFile(target, output.Result.Archive, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %s: %d drawings\n", target, len(output.Result.Previews))
	}

	if len(errs) > 0 {
		fmt.Printf("%d of %d archives failed\n", len(errs), len(paths))
	}
}
