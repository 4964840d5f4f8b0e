package render

import (
	"fmt"

	"github.com/1broseidon/saftbar/internal/shape"
)

// Monitor is one horizontal bar strip: the x-range of a physical display
// region plus the backend surfaces drawn onto it. The bar height is shared
// across all monitors.
type Monitor struct {
	X       uint32
	W       uint32
	Surface SurfaceID // offscreen surface all drawing lands on
	Window  SurfaceID // visible window Present copies onto
}

// Bar owns the monitor strips, the color context cache and the text
// collaborator. It is not safe for concurrent use; redraw passes must be
// serialized by the caller.
type Bar struct {
	height   uint32
	backend  Backend
	text     TextRenderer
	monitors []Monitor
	colors   *ColorCache
	clear    ContextID
}

// New creates a bar over already-created monitor surfaces. The clear color
// gets a dedicated context used by Clear and the copy requests.
func New(backend Backend, text TextRenderer, monitors []Monitor, height uint32, clear RGBA) (*Bar, error) {
	clearCtx, err := backend.CreateContext(clear.Pixel())
	if err != nil {
		return nil, fmt.Errorf("create clear context: %w", err)
	}
	return &Bar{
		height:   height,
		backend:  backend,
		text:     text,
		monitors: monitors,
		colors:   NewColorCache(backend),
		clear:    clearCtx,
	}, nil
}

// Height returns the bar height in pixels.
func (b *Bar) Height() uint32 { return b.height }

// Monitors returns the monitor strips in left-to-right order.
func (b *Bar) Monitors() []Monitor { return b.monitors }

// Clear fills every monitor surface with the clear color, one full-width
// fill per monitor regardless of content.
func (b *Bar) Clear() error {
	for _, mon := range b.monitors {
		if err := b.backend.FillRect(mon.Surface, b.clear, 0, 0, mon.W, b.height); err != nil {
			return err
		}
	}
	return nil
}

// Draw lays out items on one monitor under the given alignment and issues
// the background and foreground draw calls in item order.
//
// The sum of item widths must not exceed the monitor width; that is a
// documented precondition, not a runtime check.
func (b *Bar) Draw(monitor int, align Alignment, items []ContentItem) error {
	if monitor < 0 || monitor >= len(b.monitors) {
		return LocalError("draw", fmt.Errorf("monitor index %d out of range", monitor))
	}
	mon := b.monitors[monitor]

	if err := ensureColors(b.colors, items); err != nil {
		return err
	}

	widths := itemWidths(items, b.height, b.text)
	cursor := startOffset(align, mon.W, sum(widths))

	for i, item := range items {
		width := widths[i]

		bg := b.colors.MustGet(item.Bg)
		if err := b.backend.FillRect(mon.Surface, bg, cursor, 0, width, b.height); err != nil {
			return err
		}

		switch item.Kind {
		case KindText:
			if err := b.text.Draw(mon.Surface, item.Text, item.Fg, item.Bg, cursor); err != nil {
				return err
			}
		case KindSeparator:
			fg := b.colors.MustGet(item.Fg)
			polys := shape.Polys(cursor, b.height, item.Style, item.Fill, item.Direction)
			if err := b.backend.FillPolygons(mon.Surface, fg, polys); err != nil {
				return err
			}
		}

		cursor += width
	}
	return nil
}

// Present copies each monitor's offscreen surface onto its window.
func (b *Bar) Present() error {
	for _, mon := range b.monitors {
		if err := b.backend.Copy(mon.Surface, mon.Window, mon.W, b.height); err != nil {
			return err
		}
	}
	return nil
}

// Flush forces all queued requests out to the backend. Call after each
// redraw batch for changes to become visible.
func (b *Bar) Flush() error {
	return b.backend.Flush()
}

// Close releases the color contexts. Monitor surfaces belong to the backend
// and go away with the connection.
func (b *Bar) Close() {
	b.colors.Close()
	b.backend.FreeContext(b.clear)
}
