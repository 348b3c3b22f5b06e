package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/kmz2svg/internal/config"
	"github.com/beetlebugorg/kmz2svg/internal/logging"
	"github.com/beetlebugorg/kmz2svg/internal/server"
	"github.com/beetlebugorg/kmz2svg/internal/tui"
	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "kmz2svg",
	Short: "Convert KMZ map exports into layered SVG drawings",
	Long: `kmz2svg extracts the KML map description from a KMZ archive, groups its
placemarks into named layers, filters them to a zoom/pan viewport and packs
one SVG drawing per layer into a zip archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.kmz...>",
	Short: "Convert one or more KMZ archives to SVG layer zips",
	Long: `Convert runs the whole pipeline on each input archive and writes the
resulting zip next to it (or to --out). Multiple inputs are converted with a
worker pool.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var infoCmd = &cobra.Command{
	Use:   "info <input.kmz>",
	Short: "Inspect a KMZ archive: title, layers, point counts, bounds",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var previewCmd = &cobra.Command{
	Use:   "preview <input.kmz>",
	Short: "Interactive terminal preview with pan, zoom and layer toggles",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var (
	zoom       int
	lat        float64
	lon        float64
	layers     []string
	canvasW    float64
	canvasH    float64
	radius     float64
	fillColor  string
	outPath    string
	parallel   bool
	workers    int
	skipErrors bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	convertCmd.Flags().IntVarP(&zoom, "zoom", "z", kmz.DefaultZoom, "Viewport zoom level (1-20)")
	convertCmd.Flags().Float64Var(&lat, "lat", 0, "Pan center latitude (default: data midpoint)")
	convertCmd.Flags().Float64Var(&lon, "lon", 0, "Pan center longitude (default: data midpoint)")
	convertCmd.Flags().StringSliceVarP(&layers, "layers", "l", nil, "Layers to export (default: all)")
	convertCmd.Flags().Float64Var(&canvasW, "width", 1000, "Canvas width in drawing units")
	convertCmd.Flags().Float64Var(&canvasH, "height", 1000, "Canvas height in drawing units")
	convertCmd.Flags().Float64Var(&radius, "radius", 5, "Point circle radius")
	convertCmd.Flags().StringVar(&fillColor, "fill", "red", "Point fill color")
	convertCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (single input) or directory (multiple inputs)")
	convertCmd.Flags().BoolVar(&parallel, "parallel", true, "Convert multiple archives concurrently")
	convertCmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of conversion workers")
	convertCmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "Keep converting when an archive fails")

	previewCmd.Flags().IntVarP(&zoom, "zoom", "z", kmz.DefaultZoom, "Starting zoom level (1-20)")
	previewCmd.Flags().StringVarP(&outPath, "out", "o", "", "Archive path the export key writes to")

	rootCmd.AddCommand(convertCmd, infoCmd, previewCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// centerFromFlags reads the pan position, requiring --lat and --lon as a pair.
func centerFromFlags(cmd *cobra.Command) (*kmz.Point, error) {
	latSet := cmd.Flags().Changed("lat")
	lonSet := cmd.Flags().Changed("lon")
	if latSet != lonSet {
		return nil, fmt.Errorf("--lat and --lon must be provided together")
	}
	if !latSet {
		return nil, nil
	}
	return &kmz.Point{Lon: lon, Lat: lat}, nil
}

// defaultOutputPath derives <input>_svg_layers.zip next to the input file.
func defaultOutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_" + kmz.ExportFilename
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger := logging.Setup(logLevel, logFormat)

	center, err := centerFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := kmz.ConvertOptions{
		Parse:  kmz.DefaultParseOptions(),
		Zoom:   zoom,
		Center: center,
		Layers: layers,
		Render: kmz.RenderOptions{
			Canvas:      kmz.Canvas{Width: canvasW, Height: canvasH},
			PointRadius: radius,
			FillColor:   fillColor,
		},
	}

	if len(args) == 1 {
		return convertOne(logger, args[0], opts)
	}
	return convertBatch(logger, args, opts)
}

func convertOne(logger *slog.Logger, path string, opts kmz.ConvertOptions) error {
	output, err := kmz.ConvertFile(path, opts)
	if err != nil {
		return err
	}

	target := outPath
	if target == "" {
		target = defaultOutputPath(path)
	}
	if err := os.WriteFile(target, output.Result.Archive, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	logger.Info("archive converted",
		slog.String("input", path),
		slog.String("output", target),
		slog.Int("layers", len(output.Result.Previews)))
	return nil
}

func convertBatch(logger *slog.Logger, paths []string, opts kmz.ConvertOptions) error {
	outputs, errs := kmz.ConvertFilesParallel(paths, opts, kmz.BatchOptions{
		Parallel:   parallel,
		Workers:    workers,
		SkipErrors: skipErrors,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rConverting: %d/%d", done, total)
		},
		ErrorLog: os.Stderr,
	})
	fmt.Fprintln(os.Stderr)

	for _, output := range outputs {
		target := defaultOutputPath(output.Input)
		if outPath != "" {
			target = filepath.Join(outPath, filepath.Base(target))
		}
		if err := os.WriteFile(target, output.Result.Archive, 0o644); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		logger.Info("archive converted",
			slog.String("input", output.Input),
			slog.String("output", target),
			slog.Int("layers", len(output.Result.Previews)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d archives failed", len(errs), len(paths))
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	archive, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	doc, err := kmz.NewParser().Parse(archive)
	if err != nil {
		return err
	}

	if doc.Title() != "" {
		fmt.Printf("Title:       %s\n", doc.Title())
	}
	if doc.Description() != "" {
		fmt.Printf("Description: %s\n", doc.Description())
	}

	bounds := doc.Bounds()
	center := bounds.Center()
	fmt.Printf("Layers:      %d\n", doc.LayerCount())
	fmt.Printf("Points:      %d\n", doc.PointCount())
	fmt.Printf("Bounds:      %.6f,%.6f to %.6f,%.6f\n", bounds.MinLon, bounds.MinLat, bounds.MaxLon, bounds.MaxLat)
	fmt.Printf("Center:      %.6f,%.6f (default zoom %d)\n", center.Lon, center.Lat, kmz.DefaultZoom)
	fmt.Println()
	for _, layer := range doc.Layers() {
		fmt.Printf("  %-32s %d points\n", layer.Name(), layer.PointCount())
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	archive, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	doc, err := kmz.NewParser().Parse(archive)
	if err != nil {
		return err
	}

	return tui.Run(doc, tui.Options{
		Zoom:   zoom,
		Output: outPath,
		Render: kmz.DefaultRenderOptions(),
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	app := server.New(&server.Dependencies{
		Config: cfg,
		Logger: logger,
		Parser: kmz.NewParser(),
	})

	go func() {
		addr := cfg.Server.Address()
		logger.Info("server starting", slog.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Error("listen failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received, draining connections", slog.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.Any("error", err))
		return err
	}

	logger.Info("server stopped")
	return nil
}
