package server

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// buildFeatureCollection turns per-layer visible points into one GeoJSON
// feature collection. Each point becomes a Point feature tagged with its layer
// name; the collection bounding box is the viewport.
func buildFeatureCollection(previews []kmz.LayerPreview, viewport kmz.Bounds) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.BBox = geojson.BBox{viewport.MinLon, viewport.MinLat, viewport.MaxLon, viewport.MaxLat}

	for _, preview := range previews {
		for i, p := range preview.Points {
			feature := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
			feature.Properties["layer"] = preview.Name
			feature.Properties["seq"] = i
			fc.Append(feature)
		}
	}

	return fc
}
