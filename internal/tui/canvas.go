package tui

import (
	"strings"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// canvas rasterizes geographic points onto a braille microgrid, two dots wide
// and four dots tall per terminal cell.
type canvas struct {
	w, h  int       // size in cells
	cells [][]uint8 // per-cell braille dot mask
}

func newCanvas(w, h int) *canvas {
	cells := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]uint8, w)
	}
	return &canvas{w: w, h: h, cells: cells}
}

// mark sets one dot at microgrid coordinates. Out-of-range coordinates are
// ignored.
func (c *canvas) mark(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, dx := mx/2, mx%2
	cy, dy := my/4, my%4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.cells[cy][cx] |= brailleDot(dx, dy)
}

// brailleDot returns the mask bit for a dot position within one cell. The bit
// layout follows the Unicode braille block: dots 1-3 and 7 fill the left
// column, dots 4-6 and 8 the right.
func brailleDot(dx, dy int) uint8 {
	if dx == 0 {
		switch dy {
		case 0:
			return 0x01
		case 1:
			return 0x02
		case 2:
			return 0x04
		default:
			return 0x40
		}
	}
	switch dy {
	case 0:
		return 0x08
	case 1:
		return 0x10
	case 2:
		return 0x20
	default:
		return 0x80
	}
}

// String renders the grid as h lines of w runes, empty cells as spaces.
func (c *canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			mask := c.cells[y][x]
			if mask == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(rune(0x2800 + int(mask)))
			}
		}
	}
	return sb.String()
}

// microPosition maps a geographic point into the microgrid of a w×h cell
// canvas spanning the viewport. North is up, so the latitude axis flips.
func microPosition(p kmz.Point, viewport kmz.Bounds, w, h int) (int, int, bool) {
	if viewport.Width() <= 0 || viewport.Height() <= 0 {
		return 0, 0, false
	}
	nx := (p.Lon - viewport.MinLon) / viewport.Width()
	ny := (p.Lat - viewport.MinLat) / viewport.Height()
	mx := int(nx * float64(w*2-1))
	my := int((1 - ny) * float64(h*4-1))
	return mx, my, true
}
