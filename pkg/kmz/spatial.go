package kmz

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Bounds represents a geographic bounding box in WGS-84 coordinates.
//
// Coordinates are in decimal degrees. The zero value is a degenerate empty box.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// Contains returns true if the point (lon, lat) is within the bounds, edges included.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// ContainsStrict returns true if the point (lon, lat) is strictly inside the open
// rectangle. Points exactly on an edge are excluded; viewport filtering uses this
// policy on every bound.
func (b Bounds) ContainsStrict(lon, lat float64) bool {
	return lon > b.MinLon && lon < b.MaxLon &&
		lat > b.MinLat && lat < b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// Width returns the longitudinal extent in degrees.
func (b Bounds) Width() float64 {
	return b.MaxLon - b.MinLon
}

// Height returns the latitudinal extent in degrees.
func (b Bounds) Height() float64 {
	return b.MaxLat - b.MinLat
}

// Center returns the midpoint of the bounds.
//
// For bounds collapsed to a single line or point (all data sharing one longitude
// or latitude) the midpoint is still well defined and equals the collapsed value.
func (b Bounds) Center() Point {
	return Point{
		Lon: (b.MinLon + b.MaxLon) / 2,
		Lat: (b.MinLat + b.MaxLat) / 2,
	}
}

// Clamp returns the point moved to the nearest position inside the bounds.
// Points already inside are returned unchanged.
func (b Bounds) Clamp(p Point) Point {
	if p.Lon < b.MinLon {
		p.Lon = b.MinLon
	}
	if p.Lon > b.MaxLon {
		p.Lon = b.MaxLon
	}
	if p.Lat < b.MinLat {
		p.Lat = b.MinLat
	}
	if p.Lat > b.MaxLat {
		p.Lat = b.MaxLat
	}
	return p
}

// spatialIndex provides O(log n) viewport queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedPoint wraps one layer point for R-tree storage.
type indexedPoint struct {
	layer string
	seq   int // insertion position within its layer
	point Point
}

// Bounds implements the rtreego.Spatial interface.
func (p *indexedPoint) Bounds() rtreego.Rect {
	// R-tree rects need non-zero dimensions; pad the point with a small epsilon
	// (~11 meters at the equator). Exactness comes from the strict post-filter.
	const epsilon = 0.0001
	rect, _ := rtreego.NewRect(
		rtreego.Point{p.point.Lon, p.point.Lat},
		[]float64{epsilon, epsilon},
	)
	return rect
}

// buildSpatialIndex indexes every point of every layer and returns the index along
// with the global bounding box of the data.
func buildSpatialIndex(layers []Layer) (*spatialIndex, Bounds) {
	var bounds Bounds
	first := true

	// R-tree (2D, min=25 children, max=50 children)
	rtree := rtreego.NewTree(2, 25, 50)
	indexed := 0

	for _, layer := range layers {
		for seq, point := range layer.points {
			rtree.Insert(&indexedPoint{
				layer: layer.name,
				seq:   seq,
				point: point,
			})
			indexed++

			if first {
				bounds = Bounds{
					MinLon: point.Lon, MaxLon: point.Lon,
					MinLat: point.Lat, MaxLat: point.Lat,
				}
				first = false
				continue
			}
			if point.Lon < bounds.MinLon {
				bounds.MinLon = point.Lon
			}
			if point.Lon > bounds.MaxLon {
				bounds.MaxLon = point.Lon
			}
			if point.Lat < bounds.MinLat {
				bounds.MinLat = point.Lat
			}
			if point.Lat > bounds.MaxLat {
				bounds.MaxLat = point.Lat
			}
		}
	}

	if indexed == 0 {
		return nil, Bounds{}
	}
	return &spatialIndex{rtree: rtree}, bounds
}

// search returns the named layer's points strictly inside the viewport, in layer
// insertion order.
func (idx *spatialIndex) search(layer string, viewport Bounds) []Point {
	queryRect, err := rtreego.NewRect(
		rtreego.Point{viewport.MinLon, viewport.MinLat},
		[]float64{viewport.Width(), viewport.Height()},
	)
	if err != nil {
		return nil
	}

	// Candidates are a superset: the R-tree intersects padded rects inclusively.
	// The strict open-rectangle check below is the real boundary policy.
	candidates := idx.rtree.SearchIntersect(queryRect)

	matched := make([]*indexedPoint, 0, len(candidates))
	for _, spatial := range candidates {
		entry := spatial.(*indexedPoint)
		if entry.layer != layer {
			continue
		}
		if !viewport.ContainsStrict(entry.point.Lon, entry.point.Lat) {
			continue
		}
		matched = append(matched, entry)
	}

	// SearchIntersect returns tree order; restore insertion order.
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	points := make([]Point, len(matched))
	for i, entry := range matched {
		points[i] = entry.point
	}
	return points
}
