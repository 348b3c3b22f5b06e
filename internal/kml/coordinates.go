package kml

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCoordinate parses one coordinate payload into a point.
//
// KML encodes a point as "lon,lat" or "lon,lat,alt". Fields beyond the first two are
// ignored. Some producers pad fields with whitespace or wrap the payload in newlines;
// both are tolerated. Fewer than two fields, or a non-numeric longitude or latitude,
// is a malformed coordinate and aborts the parse.
func parseCoordinate(payload string) (Point, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return Point{}, &ErrMalformedCoordinate{Payload: payload, Reason: "empty coordinates element"}
	}

	fields := strings.Split(trimmed, ",")
	if len(fields) < 2 {
		return Point{}, &ErrMalformedCoordinate{
			Payload: payload,
			Reason:  fmt.Sprintf("need at least 2 comma-separated fields, got %d", len(fields)),
		}
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Point{}, &ErrMalformedCoordinate{
			Payload: payload,
			Reason:  fmt.Sprintf("longitude %q is not a number", strings.TrimSpace(fields[0])),
		}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Point{}, &ErrMalformedCoordinate{
			Payload: payload,
			Reason:  fmt.Sprintf("latitude %q is not a number", strings.TrimSpace(fields[1])),
		}
	}

	return Point{Lon: lon, Lat: lat}, nil
}
