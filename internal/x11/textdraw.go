package x11

import (
	"image/color"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/saftbar/internal/render"
	"github.com/1broseidon/saftbar/internal/text"
)

// TextDrawer implements render.TextRenderer: runs are rasterized
// client-side by the text package and uploaded onto the monitor surface as
// ZPixmap cells.
type TextDrawer struct {
	backend  *Backend
	face     *text.Face
	height   uint32
	msbFirst bool
}

// NewTextDrawer binds a loaded face to the backend at the bar height. The
// upload byte order follows the server's ImageByteOrder from the connection
// setup.
func NewTextDrawer(backend *Backend, face *text.Face, height uint32) *TextDrawer {
	order := backend.conn.XUtil.Setup().ImageByteOrder
	return &TextDrawer{
		backend:  backend,
		face:     face,
		height:   height,
		msbFirst: order == xproto.ImageOrderMSBFirst,
	}
}

// Measure returns the advance width of s in pixels.
func (t *TextDrawer) Measure(s string) uint32 {
	return t.face.Measure(s)
}

// Draw renders s onto dst at the given x offset. The cell carries the item
// background because the upload replaces the region wholesale.
func (t *TextDrawer) Draw(dst render.SurfaceID, s string, fg, bg render.RGBA, x uint32) error {
	width := t.face.Measure(s)
	if width == 0 {
		return nil
	}

	cell := t.face.RenderCell(s, toColor(fg), toColor(bg), width, t.height)
	return t.backend.PutImage(dst, x, 0, width, t.height, toZPixmap(cell.Pix, t.msbFirst))
}

func toColor(c render.RGBA) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// toZPixmap reorders image.RGBA bytes into the server's 32-bit ZPixmap
// layout for the packed ARGB pixel value: BGRA on LSB-first servers, ARGB
// on MSB-first ones.
func toZPixmap(pix []byte, msbFirst bool) []byte {
	out := make([]byte, len(pix))
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
		if msbFirst {
			out[i], out[i+1], out[i+2], out[i+3] = a, r, g, b
		} else {
			out[i], out[i+1], out[i+2], out[i+3] = b, g, r, a
		}
	}
	return out
}
