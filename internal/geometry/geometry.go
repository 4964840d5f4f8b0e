// Package geometry resolves raw display output rectangles into the ordered
// list of monitor regions a bar occupies.
package geometry

import "sort"

// Rect is a display region in device pixels. Width and height are always
// positive for rects describing an active output.
type Rect struct {
	X uint32
	Y uint32
	W uint32
	H uint32
}

// Inside reports whether r is fully contained in other. A rect is inside
// itself.
func (r Rect) Inside(other Rect) bool {
	return r.X >= other.X &&
		r.X+r.W <= other.X+other.W &&
		r.Y >= other.Y &&
		r.Y+r.H <= other.Y+other.H
}

// Less orders rects left to right, then top to bottom. The secondary key is
// the bottom edge so that stacked outputs at the same x come out in visual
// order.
func Less(a, b Rect) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y+a.H < b.Y+b.H
}

// ResolveMonitors filters raw output rectangles down to the maximal ones and
// sorts them. A rect fully contained in another is dropped; this handles
// mirrored outputs that report the same physical area at overlapping virtual
// positions. Exact duplicates keep their first occurrence so a fully
// mirrored pair still yields one monitor. An empty input yields an empty
// result.
func ResolveMonitors(rects []Rect) []Rect {
	maximal := make([]Rect, 0, len(rects))
	for i, rect := range rects {
		contained := false
		for j, other := range rects {
			if i == j {
				continue
			}
			if rect == other && j > i {
				continue
			}
			if rect.Inside(other) {
				contained = true
				break
			}
		}
		if !contained {
			maximal = append(maximal, rect)
		}
	}

	sort.SliceStable(maximal, func(i, j int) bool {
		return Less(maximal[i], maximal[j])
	})
	return maximal
}
