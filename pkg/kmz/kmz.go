package kmz

import (
	"errors"

	"github.com/beetlebugorg/kmz2svg/internal/kml"
)

// Parser parses KMZ map exports.
//
// Create a parser with NewParser and use Parse for KMZ archives or ParseKML for a
// bare map description.
type Parser interface {
	// Parse reads a KMZ archive and returns the parsed document.
	//
	// The archive must contain at least one .kml entry; the first in container
	// order is used. Parsing failures are typed, see the Err* types.
	Parse(archive []byte) (*Document, error)

	// ParseWithOptions parses a KMZ archive with custom options.
	ParseWithOptions(archive []byte, opts ParseOptions) (*Document, error)

	// ParseKML reads a bare KML map description, skipping archive extraction.
	ParseKML(document []byte) (*Document, error)

	// ParseKMLWithOptions parses a bare map description with custom options.
	ParseKMLWithOptions(document []byte, opts ParseOptions) (*Document, error)
}

// NewParser creates a new KMZ parser with default settings.
//
// Example:
//
//	parser := kmz.NewParser()
//	doc, err := parser.Parse(archiveBytes)
func NewParser() Parser {
	return &parserWrapper{
		internal: kml.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts types
type parserWrapper struct {
	internal kml.Parser
}

func (p *parserWrapper) Parse(archive []byte) (*Document, error) {
	return p.ParseWithOptions(archive, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(archive []byte, opts ParseOptions) (*Document, error) {
	document, err := ExtractKML(archive)
	if err != nil {
		return nil, err
	}
	return p.ParseKMLWithOptions(document, opts)
}

func (p *parserWrapper) ParseKML(document []byte) (*Document, error) {
	return p.ParseKMLWithOptions(document, DefaultParseOptions())
}

func (p *parserWrapper) ParseKMLWithOptions(document []byte, opts ParseOptions) (*Document, error) {
	internalOpts := kml.ParseOptions{
		ValidateCoordinates: opts.ValidateCoordinates,
		FallbackLayerName:   opts.FallbackLayerName,
	}
	internalDoc, err := p.internal.ParseWithOptions(document, internalOpts)
	if err != nil {
		return nil, convertParseError(err)
	}
	return convertDocument(internalDoc), nil
}

// convertParseError maps internal parser errors onto their public counterparts.
func convertParseError(err error) error {
	var malformed *kml.ErrMalformedCoordinate
	if errors.As(err, &malformed) {
		return &ErrMalformedCoordinate{Payload: malformed.Payload, Reason: malformed.Reason}
	}

	var invalid *kml.ErrInvalidCoordinate
	if errors.As(err, &invalid) {
		return &ErrInvalidCoordinate{Lat: invalid.Lat, Lon: invalid.Lon}
	}

	var noData *kml.ErrNoData
	if errors.As(err, &noData) {
		return &ErrNoData{Folders: noData.Folders}
	}

	return err
}

// Point is a geographic coordinate pair in decimal degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Layer is a named, ordered group of points sourced from one folder of the map
// description.
//
// Point order is insertion order from the document; it carries no meaning beyond
// render order. Fields are private, access them via Name and Points.
type Layer struct {
	name   string
	points []Point
}

// Name returns the layer's display name.
func (l *Layer) Name() string {
	return l.name
}

// Points returns the layer's points in insertion order.
func (l *Layer) Points() []Point {
	return l.points
}

// PointCount returns the number of points in the layer.
func (l *Layer) PointCount() int {
	return len(l.points)
}

// Document represents a parsed map description.
//
// A document carries the layer set, optional title and description metadata, the
// global bounding box of every point, and a spatial index for viewport queries.
// Documents are read-only after parsing; parse a new archive instead of mutating.
type Document struct {
	title        string
	description  string
	layers       []Layer
	bounds       Bounds
	spatialIndex *spatialIndex
}

// Title returns the map description's document name, or "".
func (d *Document) Title() string { return d.title }

// Description returns the map description's document description, or "".
func (d *Document) Description() string { return d.description }

// Layers returns all layers in document order.
//
// Layer names are unique; a folder name repeated in the source replaced the
// earlier layer's points during parsing.
func (d *Document) Layers() []Layer {
	return d.layers
}

// LayerNames returns the layer names in document order.
func (d *Document) LayerNames() []string {
	names := make([]string, len(d.layers))
	for i := range d.layers {
		names[i] = d.layers[i].name
	}
	return names
}

// Layer returns the named layer and whether it exists.
func (d *Document) Layer(name string) (Layer, bool) {
	for i := range d.layers {
		if d.layers[i].name == name {
			return d.layers[i], true
		}
	}
	return Layer{}, false
}

// LayerCount returns the number of layers.
func (d *Document) LayerCount() int {
	return len(d.layers)
}

// PointCount returns the total number of points across all layers.
func (d *Document) PointCount() int {
	total := 0
	for i := range d.layers {
		total += len(d.layers[i].points)
	}
	return total
}

// Bounds returns the bounding box of every point across all layers.
//
// When all points share one longitude or latitude the box collapses on that axis
// (min equals max); callers deriving pan ranges must treat that as a fixed valid
// position, not an error.
func (d *Document) Bounds() Bounds {
	return d.bounds
}

// DefaultViewport returns the initial viewport: DefaultZoom around the midpoint
// of the global bounds.
func (d *Document) DefaultViewport() Bounds {
	return viewportAround(d.bounds.Center(), DefaultZoom)
}

// PointsInViewport returns the named layer's points strictly inside the viewport,
// in layer insertion order.
//
// The open-rectangle policy excludes points exactly on a viewport edge. Unknown
// layer names yield an empty result.
//
// Example:
//
//	viewport, _ := kmz.ViewportAround(kmz.Point{Lon: 10, Lat: 20}, 8)
//	visible := doc.PointsInViewport("Parks", viewport)
func (d *Document) PointsInViewport(layer string, viewport Bounds) []Point {
	if d.spatialIndex == nil || d.spatialIndex.rtree == nil {
		// No spatial index, fall back to a linear scan.
		return d.pointsInViewportLinear(layer, viewport)
	}
	return d.spatialIndex.search(layer, viewport)
}

// pointsInViewportLinear filters one layer without the index.
func (d *Document) pointsInViewportLinear(layer string, viewport Bounds) []Point {
	l, ok := d.Layer(layer)
	if !ok {
		return nil
	}

	result := make([]Point, 0, len(l.points))
	for _, p := range l.points {
		if viewport.ContainsStrict(p.Lon, p.Lat) {
			result = append(result, p)
		}
	}
	return result
}

// convertDocument converts the internal document to the public API form and
// builds the spatial index.
func convertDocument(internal *kml.Document) *Document {
	layers := make([]Layer, len(internal.Layers))
	for i, l := range internal.Layers {
		points := make([]Point, len(l.Points))
		for j, p := range l.Points {
			points[j] = Point{Lon: p.Lon, Lat: p.Lat}
		}
		layers[i] = Layer{name: l.Name, points: points}
	}

	doc := &Document{
		title:       internal.Title,
		description: internal.Description,
		layers:      layers,
	}
	doc.spatialIndex, doc.bounds = buildSpatialIndex(layers)

	return doc
}
