package status

import (
	"github.com/1broseidon/saftbar/internal/render"
	"github.com/1broseidon/saftbar/internal/shape"
)

// Segment is one collected status value ready for layout.
type Segment struct {
	Name string
	Text string
}

// Collect gathers every producer's current value. A failing producer
// renders as "n/a" instead of aborting the frame; its error is returned
// alongside for logging.
func Collect(producers []Producer) ([]Segment, []error) {
	segments := make([]Segment, 0, len(producers))
	var errs []error
	for _, p := range producers {
		value, err := p.Collect()
		if err != nil {
			errs = append(errs, err)
			value = "n/a"
		}
		segments = append(segments, Segment{Name: p.Name(), Text: value})
	}
	return segments, errs
}

// Builder assembles segments into content runs with separator glyphs
// between them. Segment backgrounds alternate between the accent color and
// the default background so adjacent segments stay distinguishable.
type Builder struct {
	Style  shape.Style
	Fill   shape.Fill
	Fg     render.RGBA
	Bg     render.RGBA
	Accent render.RGBA
}

// Items builds the run for one alignment. Left-aligned runs point their
// separators right and close with a trailing wedge into the bar background;
// right-aligned runs mirror that with a leading wedge; centered runs keep
// separators between segments only.
func (b Builder) Items(align render.Alignment, segments []Segment) []render.ContentItem {
	if len(segments) == 0 {
		return nil
	}

	backgrounds := make([]render.RGBA, len(segments))
	for i := range segments {
		if i%2 == 0 {
			backgrounds[i] = b.Accent
		} else {
			backgrounds[i] = b.Bg
		}
	}

	var items []render.ContentItem

	if align == render.AlignRight {
		items = append(items, render.Separator(b.Style, b.Fill, shape.Left, backgrounds[0], b.Bg))
	}

	for i, segment := range segments {
		items = append(items, render.Text(" "+segment.Text+" ", b.Fg, backgrounds[i]))
		if i+1 < len(segments) {
			dir := shape.Right
			if align == render.AlignRight {
				dir = shape.Left
			}
			items = append(items, render.Separator(b.Style, b.Fill, dir, separatorFg(align, backgrounds, i), separatorBg(align, backgrounds, i)))
		}
	}

	if align == render.AlignLeft {
		items = append(items, render.Separator(b.Style, b.Fill, shape.Right, backgrounds[len(segments)-1], b.Bg))
	}

	return items
}

// separatorFg picks the wedge color between segment i and i+1. A wedge is
// drawn in the color of the segment it points away from, over the other
// segment's background.
func separatorFg(align render.Alignment, backgrounds []render.RGBA, i int) render.RGBA {
	if align == render.AlignRight {
		return backgrounds[i+1]
	}
	return backgrounds[i]
}

func separatorBg(align render.Alignment, backgrounds []render.RGBA, i int) render.RGBA {
	if align == render.AlignRight {
		return backgrounds[i]
	}
	return backgrounds[i+1]
}
