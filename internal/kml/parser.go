package kml

// DefaultFallbackLayerName is assigned to folders that carry no display name.
const DefaultFallbackLayerName = "Unnamed"

// Point is a parsed geographic coordinate pair.
type Point struct {
	Lon float64
	Lat float64
}

// Layer is a named, ordered group of points sourced from one folder.
type Layer struct {
	Name   string
	Points []Point
}

// Document is the parsed form of one map description.
type Document struct {
	Title       string
	Description string
	Layers      []Layer
}

// PointCount returns the total number of points across all layers.
func (d *Document) PointCount() int {
	total := 0
	for _, layer := range d.Layers {
		total += len(layer.Points)
	}
	return total
}

// Parser parses KML map descriptions into layered point sets.
//
// A KML document groups placemarks under named Folder elements. Each folder becomes
// one layer; a folder's points are every Point geometry in its entire subtree, in
// document order. Folders nest, and a nested folder's points count for both the
// nested layer and every enclosing one.
type Parser interface {
	// Parse reads a KML document and returns the extracted layers
	Parse(data []byte) (*Document, error)

	// ParseWithOptions parses with custom options
	ParseWithOptions(data []byte, opts ParseOptions) (*Document, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// ValidateCoordinates: if true, reject latitudes outside ±90 and
	// longitudes outside ±180.
	// Default: true
	ValidateCoordinates bool

	// FallbackLayerName names folders that have no display name.
	// Empty means DefaultFallbackLayerName.
	FallbackLayerName string
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateCoordinates: true,
		FallbackLayerName:   DefaultFallbackLayerName,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new KML parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse reads a KML document and returns the extracted layers
func (p *defaultParser) Parse(data []byte) (*Document, error) {
	return p.ParseWithOptions(data, DefaultParseOptions())
}

// ParseWithOptions parses with custom options
func (p *defaultParser) ParseWithOptions(data []byte, opts ParseOptions) (*Document, error) {
	root, err := buildTree(data)
	if err != nil {
		return nil, err
	}

	fallback := opts.FallbackLayerName
	if fallback == "" {
		fallback = DefaultFallbackLayerName
	}

	doc := &Document{}
	if docNode := root.firstDescendant("Document"); docNode != nil {
		doc.Title = docNode.childText("name")
		doc.Description = docNode.childText("description")
	}

	folders := root.descendants("Folder")
	for _, folder := range folders {
		name := folder.childText("name")
		if name == "" {
			name = fallback
		}

		points, err := collectPoints(folder, opts)
		if err != nil {
			return nil, err
		}

		// Folders yielding no points are not retained as layers.
		if len(points) == 0 {
			continue
		}

		doc.setLayer(name, points)
	}

	if len(doc.Layers) == 0 {
		return nil, &ErrNoData{Folders: len(folders)}
	}

	return doc, nil
}

// collectPoints gathers every Point geometry in the folder's subtree, in document
// order. Line and polygon geometries are skipped; only points carry into layers.
func collectPoints(folder *node, opts ParseOptions) ([]Point, error) {
	var points []Point
	for _, geom := range folder.descendants("Point") {
		payload := ""
		for _, child := range geom.children {
			if child.name == "coordinates" {
				payload = child.text
				break
			}
		}

		point, err := parseCoordinate(payload)
		if err != nil {
			return nil, err
		}

		if opts.ValidateCoordinates {
			if err := ValidateCoordinate(point.Lat, point.Lon); err != nil {
				return nil, err
			}
		}

		points = append(points, point)
	}
	return points, nil
}

// setLayer inserts or replaces a layer. Layer names are unique keys: a repeated
// folder name replaces the earlier layer's points while keeping its position in
// layer order.
func (d *Document) setLayer(name string, points []Point) {
	for i := range d.Layers {
		if d.Layers[i].Name == name {
			d.Layers[i].Points = points
			return
		}
	}
	d.Layers = append(d.Layers, Layer{Name: name, Points: points})
}

// LayerNames returns the layer names in layer order.
func (d *Document) LayerNames() []string {
	names := make([]string, len(d.Layers))
	for i, layer := range d.Layers {
		names[i] = layer.Name
	}
	return names
}

// Layer returns the named layer, or nil when absent.
func (d *Document) Layer(name string) *Layer {
	for i := range d.Layers {
		if d.Layers[i].Name == name {
			return &d.Layers[i]
		}
	}
	return nil
}
