package kmz

import (
	"fmt"
)

// ErrNoMapDescription indicates an archive without any map description entry
type ErrNoMapDescription struct {
	Entries int
}

func (e *ErrNoMapDescription) Error() string {
	return fmt.Sprintf("no map description found (archive has %d entries)", e.Entries)
}

// ErrNoData indicates a document that parsed cleanly but contains no points at all
type ErrNoData struct {
	Folders int
}

func (e *ErrNoData) Error() string {
	return fmt.Sprintf("no coordinates found (searched %d folders)", e.Folders)
}

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

// ErrUnknownLayer indicates a selection naming a layer the document does not have
type ErrUnknownLayer struct {
	Name string
}

func (e *ErrUnknownLayer) Error() string {
	return fmt.Sprintf("unknown layer %q", e.Name)
}

// ErrInvalidZoom indicates a zoom level outside the supported range
type ErrInvalidZoom struct {
	Zoom int
}

func (e *ErrInvalidZoom) Error() string {
	return fmt.Sprintf("invalid zoom %d: must be between %d and %d", e.Zoom, MinZoom, MaxZoom)
}

// ErrDegenerateViewport indicates a zero-area viewport reaching the projection step
type ErrDegenerateViewport struct {
	Viewport Bounds
}

func (e *ErrDegenerateViewport) Error() string {
	return fmt.Sprintf("degenerate viewport: %+v has zero width or height", e.Viewport)
}
