package kml

import (
	"fmt"
)

// ErrMalformedCoordinate indicates a coordinate payload that cannot yield a point
type ErrMalformedCoordinate struct {
	Payload string
	Reason  string
}

func (e *ErrMalformedCoordinate) Error() string {
	return fmt.Sprintf("malformed coordinate %q: %s", e.Payload, e.Reason)
}

// ErrInvalidCoordinate indicates coordinate out of valid geographic bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrNoData indicates a document that parsed cleanly but contains no points at all
type ErrNoData struct {
	Folders int
}

func (e *ErrNoData) Error() string {
	return fmt.Sprintf("no coordinates found (searched %d folders)", e.Folders)
}
