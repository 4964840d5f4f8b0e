// Package shape generates polygon vertex lists for the separator glyphs a
// bar renders between colored segments.
//
// All coordinates are pixel offsets relative to the bar's top-left corner.
// Generation is deterministic and translation-equivariant in x: shifting the
// left edge shifts every vertex by the same amount and nothing else.
package shape

// Style selects the separator silhouette.
type Style uint8

const (
	// Powerline is a triangular wedge spanning the full bar height.
	Powerline Style = iota
	// Octagon cuts the two corners at 45 degrees.
	Octagon
)

// Fill selects between a solid glyph and a thin outline.
type Fill uint8

const (
	Full Fill = iota
	Outline
)

// Direction mirrors the glyph horizontally.
type Direction uint8

const (
	Left Direction = iota
	Right
)

// Point is one polygon vertex.
type Point struct {
	X uint32
	Y uint32
}

// Polygon is a closed vertex sequence, wound for server-side filling.
type Polygon []Point

// Width returns the horizontal cell width of a separator. It depends only on
// style and bar height, never on fill or direction.
func Width(style Style, height uint32) uint32 {
	if style == Octagon {
		return height/4 + 1
	}
	return (height + 1) / 2
}

// Polys returns the polygons of a separator glyph with its left edge at xl.
// Powerline yields one polygon when filled and two outline strokes
// otherwise; Octagon yields one polygon filled and three strokes otherwise.
func Polys(xl, height uint32, style Style, fill Fill, direction Direction) []Polygon {
	if style == Octagon {
		return octagon(xl, height, fill, direction)
	}
	return powerline(xl, height, fill, direction)
}

// powerline builds the wedge polygons. The diagonal's vertical split uses
// truncating h/2 with the spare unit of odd heights going to the upper half;
// that keeps the stroke width identical at top and bottom for both parities.
func powerline(xl, h uint32, fill Fill, direction Direction) []Polygon {
	h2 := h / 2
	xr := xl + (h+1)/2
	yt := uint32(0)
	yb := h

	switch {
	case direction == Left && fill == Full:
		return []Polygon{{
			{xl, yt + h2},
			{xl, yb - h2 - 1},
			{xr, yb},
			{xr, yt},
			{xr - 1, yt},
		}}
	case direction == Right && fill == Full:
		return []Polygon{{
			{xl, yb},
			{xr, yb - h2 - 1},
			{xr, yt + h2},
			{xl + 1, yt},
			{xl, yt},
		}}
	case direction == Left:
		return []Polygon{
			{{xl, yt + h2}, {xl, yt + h2 + 1}, {xr, yt}, {xr - 1, yt}},
			{{xl, yb - h2 - 1}, {xr, yb}, {xr, yb - 1}, {xl + 1, yb - h2 - 1}},
		}
	default: // Right outline
		return []Polygon{
			{{xl, yt}, {xr, yt + h2 + 1}, {xr, yt + h2}, {xl + 1, yt}},
			{{xl, yb}, {xr, yb - h2 - 1}, {xr - 1, yb - h2 - 1}, {xl, yb - 1}},
		}
	}
}

// octagon builds the corner-cut polygons. The cut depth is a truncating h/4:
// for odd heights this lands on the pixel row just above the midline, which
// is what keeps the cuts symmetric on screen.
func octagon(xl, h uint32, fill Fill, direction Direction) []Polygon {
	h4 := h / 4
	xr := xl + h4 + 1
	yt := uint32(0)
	yb := h

	if direction == Right {
		if fill == Full {
			return []Polygon{{
				{xl, yb},
				{xr, yb - h4 - 1},
				{xr, yt + h4},
				{xl + 1, yt},
				{xl, yt},
			}}
		}
		return []Polygon{
			{{xl, yt}, {xr, yt + h4 + 1}, {xr, yt + h4}, {xl + 1, yt}},
			{{xr - 1, yt + h4}, {xr - 1, yb - h4}, {xr, yb - h4}, {xr, yt + h4}},
			{{xl, yb}, {xr, yb - h4 - 1}, {xr - 1, yb - h4 - 1}, {xl, yb - 1}},
		}
	}

	if fill == Full {
		return []Polygon{{
			{xl, yt + h4},
			{xl, yb - h4 - 1},
			{xr, yb},
			{xr, yt},
			{xr - 1, yt},
		}}
	}
	return []Polygon{
		{{xl, yt + h4}, {xl, yt + h4 + 1}, {xr, yt}, {xr - 1, yt}},
		{{xl, yt + h4}, {xl, yb - h4}, {xl + 1, yb - h4}, {xl + 1, yt + h4}},
		{{xl, yb - h4 - 1}, {xr, yb}, {xr, yb - 1}, {xl + 1, yb - h4 - 1}},
	}
}
