package kmz

// Canvas is the drawing space points are projected onto.
type Canvas struct {
	Width  float64
	Height float64
}

// DefaultCanvas returns the standard 1000×1000 drawing space.
func DefaultCanvas() Canvas {
	return Canvas{Width: 1000, Height: 1000}
}

// ProjectedPoint is a point in drawing coordinates.
//
// Both coordinates lie within [0, size] for points inside the viewport; values
// exactly on the canvas edge can occur through floating rounding and are valid.
type ProjectedPoint struct {
	X float64
	Y float64
}

// Project maps a geographic point inside the viewport onto the canvas.
//
// The mapping is linear on both axes with the vertical axis flipped: drawing Y
// grows downward while latitude grows northward, so the viewport's MinLat lands
// at y=Height and MaxLat at y=0.
//
//	x = (lon - minLon) / (maxLon - minLon) * width
//	y = height - (lat - minLat) / (maxLat - minLat) * height
//
// A viewport with zero width or height cannot be projected and fails with
// *ErrDegenerateViewport.
func Project(p Point, viewport Bounds, canvas Canvas) (ProjectedPoint, error) {
	if viewport.Width() <= 0 || viewport.Height() <= 0 {
		return ProjectedPoint{}, &ErrDegenerateViewport{Viewport: viewport}
	}

	return ProjectedPoint{
		X: (p.Lon - viewport.MinLon) / viewport.Width() * canvas.Width,
		Y: canvas.Height - (p.Lat-viewport.MinLat)/viewport.Height()*canvas.Height,
	}, nil
}

// ProjectAll maps a filtered point slice onto the canvas, preserving order: the
// i-th input point becomes the i-th projected point.
func ProjectAll(points []Point, viewport Bounds, canvas Canvas) ([]ProjectedPoint, error) {
	if viewport.Width() <= 0 || viewport.Height() <= 0 {
		return nil, &ErrDegenerateViewport{Viewport: viewport}
	}

	projected := make([]ProjectedPoint, len(points))
	for i, p := range points {
		pp, err := Project(p, viewport, canvas)
		if err != nil {
			return nil, err
		}
		projected[i] = pp
	}
	return projected, nil
}
