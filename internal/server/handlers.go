package server

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"uptime": time.Since(startedAt).String(),
		})
	}
}

// boundsResponse is the JSON form of a geographic bounding box.
type boundsResponse struct {
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
}

func newBoundsResponse(b kmz.Bounds) boundsResponse {
	return boundsResponse{MinLon: b.MinLon, MaxLon: b.MaxLon, MinLat: b.MinLat, MaxLat: b.MaxLat}
}

// pointResponse is the JSON form of a geographic position.
type pointResponse struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// layerResponse describes one layer of an inspected archive.
type layerResponse struct {
	Name       string `json:"name"`
	PointCount int    `json:"point_count"`
	Filename   string `json:"filename"`
}

// inspectResponse summarizes an uploaded archive without converting it. Center
// and DefaultZoom seed the caller's zoom and pan controls.
type inspectResponse struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	LayerCount  int             `json:"layer_count"`
	PointCount  int             `json:"point_count"`
	Bounds      boundsResponse  `json:"bounds"`
	Center      pointResponse   `json:"center"`
	DefaultZoom int             `json:"default_zoom"`
	Layers      []layerResponse `json:"layers"`
}

// InspectHandler parses an uploaded archive and reports its layers.
func InspectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		archive, err := readArchiveUpload(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		doc, err := deps.Parser.Parse(archive)
		if err != nil {
			return mapPipelineError(c, err)
		}

		layers := make([]layerResponse, 0, doc.LayerCount())
		for _, layer := range doc.Layers() {
			layers = append(layers, layerResponse{
				Name:       layer.Name(),
				PointCount: layer.PointCount(),
				Filename:   kmz.SanitizeLayerName(layer.Name()) + ".svg",
			})
		}

		center := doc.Bounds().Center()
		return c.JSON(inspectResponse{
			Title:       doc.Title(),
			Description: doc.Description(),
			LayerCount:  doc.LayerCount(),
			PointCount:  doc.PointCount(),
			Bounds:      newBoundsResponse(doc.Bounds()),
			Center:      pointResponse{Lon: center.Lon, Lat: center.Lat},
			DefaultZoom: kmz.DefaultZoom,
			Layers:      layers,
		})
	}
}

// PreviewHandler returns the visible points of an archive as GeoJSON.
func PreviewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		archive, err := readArchiveUpload(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		opts, err := parseConvertOptions(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		result, err := kmz.Convert(archive, opts)
		if err != nil {
			return mapPipelineError(c, err)
		}

		return c.JSON(fiber.Map{
			"viewport": newBoundsResponse(result.Viewport),
			"points":   buildFeatureCollection(result.Previews, result.Viewport),
		})
	}
}

// ConvertHandler converts an uploaded archive and streams back the drawing
// bundle.
func ConvertHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		archive, err := readArchiveUpload(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		opts, err := parseConvertOptions(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		result, err := kmz.Convert(archive, opts)
		if err != nil {
			return mapPipelineError(c, err)
		}

		c.Set(fiber.HeaderContentType, result.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
		return c.Send(result.Archive)
	}
}

// readArchiveUpload reads the uploaded archive from the "archive" form file.
func readArchiveUpload(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("archive")
	if err != nil {
		return nil, errors.New("archive file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	archive, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return archive, nil
}

// parseConvertOptions builds conversion options from the request's form
// fields: zoom, lat, lon and repeated layers values. The configured render
// settings fill in canvas size, point radius and fill color.
func parseConvertOptions(c *fiber.Ctx, deps *Dependencies) (kmz.ConvertOptions, error) {
	opts := kmz.ConvertOptions{
		Parse:  kmz.DefaultParseOptions(),
		Render: deps.Config.Render.Options(),
	}

	if zoomStr := c.FormValue("zoom"); zoomStr != "" {
		zoom, err := strconv.Atoi(zoomStr)
		if err != nil {
			return opts, errors.New("zoom must be an integer")
		}
		opts.Zoom = zoom
	}

	latStr, lonStr := c.FormValue("lat"), c.FormValue("lon")
	if (latStr == "") != (lonStr == "") {
		return opts, errors.New("lat and lon must be provided together")
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return opts, errors.New("lat must be a number")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return opts, errors.New("lon must be a number")
		}
		opts.Center = &kmz.Point{Lon: lon, Lat: lat}
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		opts.Layers = form.Value["layers"]
	}

	return opts, nil
}
