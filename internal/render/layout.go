package render

// itemWidths measures every item up front. Widths are fixed for the whole
// pass; the cursor advances by exactly these amounts.
func itemWidths(items []ContentItem, height uint32, text TextRenderer) []uint32 {
	widths := make([]uint32, len(items))
	for i, item := range items {
		widths[i] = ItemWidth(item, height, text)
	}
	return widths
}

func sum(widths []uint32) uint32 {
	var total uint32
	for _, w := range widths {
		total += w
	}
	return total
}

// startOffset computes the cursor position of the first item. Callers must
// keep the total content width within the monitor width; for Center and
// Right a wider run underflows and is not clamped here.
func startOffset(align Alignment, monitorWidth, total uint32) uint32 {
	switch align {
	case AlignCenter:
		return (monitorWidth - total) / 2
	case AlignRight:
		return monitorWidth - total
	default:
		return 0
	}
}

// ensureColors registers every color the pass will fill with. Backgrounds
// are filled for all items; separator foregrounds are filled as polygons.
// Running this before any draw call is what lets the draw loop use the
// panicking cache getter.
func ensureColors(cache *ColorCache, items []ContentItem) error {
	for _, item := range items {
		if err := cache.Ensure(item.Bg); err != nil {
			return err
		}
		if item.Kind == KindSeparator {
			if err := cache.Ensure(item.Fg); err != nil {
				return err
			}
		}
	}
	return nil
}
