// Package render holds the bar's content model and drawing engine: colored
// text and separator items, alignment layout, the per-color graphics context
// cache, and the Bar orchestration over a pixel backend.
package render

import (
	"github.com/1broseidon/saftbar/internal/shape"
)

// RGBA is an 8-bit-per-channel color. It is comparable and used as the color
// cache key.
type RGBA struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Pixel packs the color into the backend's pixel layout: alpha in the high
// byte, then red, green, blue.
func (c RGBA) Pixel() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Alignment places a content run inside a monitor strip.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ContentKind tags the variant carried by a ContentItem.
type ContentKind uint8

const (
	KindText ContentKind = iota
	KindSeparator
)

// ContentItem is one drawable run: either a text string or a separator
// glyph, with its foreground and background colors. Items are drawn in
// slice order, left to right.
type ContentItem struct {
	Kind ContentKind
	Fg   RGBA
	Bg   RGBA

	// Text payload, valid when Kind == KindText.
	Text string

	// Separator payload, valid when Kind == KindSeparator.
	Style     shape.Style
	Fill      shape.Fill
	Direction shape.Direction
}

// Text builds a text item.
func Text(s string, fg, bg RGBA) ContentItem {
	return ContentItem{Kind: KindText, Text: s, Fg: fg, Bg: bg}
}

// Separator builds a separator item.
func Separator(style shape.Style, fill shape.Fill, dir shape.Direction, fg, bg RGBA) ContentItem {
	return ContentItem{
		Kind:      KindSeparator,
		Style:     style,
		Fill:      fill,
		Direction: dir,
		Fg:        fg,
		Bg:        bg,
	}
}

// SurfaceID identifies a backend drawable (an offscreen surface or a
// visible window). The X11 backend maps these directly to resource ids.
type SurfaceID uint32

// ContextID identifies a backend drawing context holding one solid color.
type ContextID uint32

// Backend is the pixel surface collaborator: server-side fills, copies and
// context management. All methods report backend rejections as *Error with
// KindBackend.
type Backend interface {
	// CreateContext allocates a drawing context whose fill color is the
	// given packed pixel.
	CreateContext(pixel uint32) (ContextID, error)
	// FreeContext releases a context. Freeing an unknown context is a no-op.
	FreeContext(ctx ContextID)
	// FillRect fills a rectangle on dst with the context's color.
	FillRect(dst SurfaceID, ctx ContextID, x, y, w, h uint32) error
	// FillPolygons fills each polygon on dst with the context's color.
	FillPolygons(dst SurfaceID, ctx ContextID, polys []shape.Polygon) error
	// Copy blits a w×h region from the offscreen surface onto the window,
	// origin to origin, no scaling.
	Copy(src, dst SurfaceID, w, h uint32) error
	// Flush forces all queued requests out to the server.
	Flush() error
}

// TextRenderer is the text metrics collaborator. Measure returns the advance
// width of the rendered run in pixels. Draw renders the run onto dst at the
// given x offset with a vertically centered baseline; the background color
// rides along because glyphs are composited client-side before upload.
type TextRenderer interface {
	Measure(s string) uint32
	Draw(dst SurfaceID, s string, fg, bg RGBA, x uint32) error
}

// ItemWidth returns the pixel width of one item. Text is measured by the
// text collaborator; separator widths follow the style formula and never
// depend on fill or direction.
func ItemWidth(item ContentItem, height uint32, text TextRenderer) uint32 {
	if item.Kind == KindText {
		return text.Measure(item.Text)
	}
	return shape.Width(item.Style, height)
}
