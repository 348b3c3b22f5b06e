package kmz

// Zoom bounds for viewport computation.
//
// Zoom maps inversely to window size: the viewport half-extent is 1/zoom degrees,
// so zoom 1 shows a 2°×2° window and zoom 20 a 0.1°×0.1° window.
const (
	MinZoom     = 1
	MaxZoom     = 20
	DefaultZoom = 5
)

// HalfExtent returns the viewport half-extent in degrees for a zoom level.
func HalfExtent(zoom int) float64 {
	return 1.0 / float64(zoom)
}

// ViewportAround computes the viewport centered on a pan position.
//
// The window spans [lon-half, lon+half] × [lat-half, lat+half] with half = 1/zoom.
// Zoom must lie within [MinZoom, MaxZoom]; anything else fails with
// *ErrInvalidZoom. A valid zoom always yields a positive extent, so the resulting
// viewport satisfies min < max on both axes.
//
// Example:
//
//	viewport, err := kmz.ViewportAround(kmz.Point{Lon: -71.05, Lat: 42.35}, 12)
func ViewportAround(center Point, zoom int) (Bounds, error) {
	if zoom < MinZoom || zoom > MaxZoom {
		return Bounds{}, &ErrInvalidZoom{Zoom: zoom}
	}
	return viewportAround(center, zoom), nil
}

// viewportAround derives the window for a zoom already known to be valid.
func viewportAround(center Point, zoom int) Bounds {
	half := HalfExtent(zoom)
	return Bounds{
		MinLon: center.Lon - half,
		MaxLon: center.Lon + half,
		MinLat: center.Lat - half,
		MaxLat: center.Lat + half,
	}
}
