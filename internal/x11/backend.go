package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/saftbar/internal/render"
	"github.com/1broseidon/saftbar/internal/shape"
)

// Backend implements render.Backend over the core protocol: graphics
// contexts, rectangle and polygon fills, pixmap-to-window copies.
type Backend struct {
	conn *Connection

	// Reference drawable for GC creation. GCs are depth-bound, so this is
	// the first bar window, which carries the bar visual's depth.
	ref xproto.Drawable

	// GC used for CopyArea and image uploads. Created lazily; its color
	// components are irrelevant for those requests.
	utilGC    xproto.Gcontext
	hasUtilGC bool
}

// NewBackend creates a backend whose contexts are compatible with the given
// reference drawable.
func NewBackend(conn *Connection, ref xproto.Drawable) *Backend {
	return &Backend{conn: conn, ref: ref}
}

// CreateContext allocates a server-side GC with the packed pixel as its
// fill color.
func (b *Backend) CreateContext(pixel uint32) (render.ContextID, error) {
	gc, err := xproto.NewGcontextId(b.conn.Conn())
	if err != nil {
		return 0, render.LocalError("create-context", fmt.Errorf("allocate gc id: %w", err))
	}
	err = xproto.CreateGCChecked(
		b.conn.Conn(), gc, b.ref,
		xproto.GcForeground|xproto.GcGraphicsExposures,
		[]uint32{pixel, 0},
	).Check()
	if err != nil {
		return 0, render.BackendError("create-context", err)
	}
	return render.ContextID(gc), nil
}

// FreeContext releases a GC.
func (b *Backend) FreeContext(ctx render.ContextID) {
	xproto.FreeGC(b.conn.Conn(), xproto.Gcontext(ctx))
}

// FillRect fills one rectangle on dst.
func (b *Backend) FillRect(dst render.SurfaceID, ctx render.ContextID, x, y, w, h uint32) error {
	err := xproto.PolyFillRectangleChecked(
		b.conn.Conn(), xproto.Drawable(dst), xproto.Gcontext(ctx),
		[]xproto.Rectangle{{
			X:      int16(x),
			Y:      int16(y),
			Width:  uint16(w),
			Height: uint16(h),
		}},
	).Check()
	if err != nil {
		return render.BackendError("fill-rect", err)
	}
	return nil
}

// FillPolygons fills each polygon on dst with the context's color. The
// separator glyphs never self-intersect but are not all convex (the full
// powerline wedge has a one-pixel jag at even heights), so the fill hint
// must stay Nonconvex.
func (b *Backend) FillPolygons(dst render.SurfaceID, ctx render.ContextID, polys []shape.Polygon) error {
	for _, poly := range polys {
		points := make([]xproto.Point, len(poly))
		for i, p := range poly {
			points[i] = xproto.Point{X: int16(p.X), Y: int16(p.Y)}
		}
		err := xproto.FillPolyChecked(
			b.conn.Conn(), xproto.Drawable(dst), xproto.Gcontext(ctx),
			xproto.PolyShapeNonconvex, xproto.CoordModeOrigin, points,
		).Check()
		if err != nil {
			return render.BackendError("fill-poly", err)
		}
	}
	return nil
}

// Copy blits the offscreen surface onto the window.
func (b *Backend) Copy(src, dst render.SurfaceID, w, h uint32) error {
	gc, err := b.ensureUtilGC()
	if err != nil {
		return err
	}
	err = xproto.CopyAreaChecked(
		b.conn.Conn(), xproto.Drawable(src), xproto.Drawable(dst), gc,
		0, 0, 0, 0, uint16(w), uint16(h),
	).Check()
	if err != nil {
		return render.BackendError("copy-area", err)
	}
	return nil
}

// Flush forces delivery of all queued requests.
func (b *Backend) Flush() error {
	b.conn.Flush()
	return nil
}

// PutImage uploads raw pixel data to dst. Used by the text drawer for
// client-side rasterized cells.
func (b *Backend) PutImage(dst render.SurfaceID, x, y, w, h uint32, data []byte) error {
	gc, err := b.ensureUtilGC()
	if err != nil {
		return err
	}
	err = xproto.PutImageChecked(
		b.conn.Conn(), xproto.ImageFormatZPixmap, xproto.Drawable(dst), gc,
		uint16(w), uint16(h), int16(x), int16(y), 0, b.conn.Depth, data,
	).Check()
	if err != nil {
		return render.BackendError("put-image", err)
	}
	return nil
}

func (b *Backend) ensureUtilGC() (xproto.Gcontext, error) {
	if b.hasUtilGC {
		return b.utilGC, nil
	}
	gc, err := xproto.NewGcontextId(b.conn.Conn())
	if err != nil {
		return 0, render.LocalError("util-gc", fmt.Errorf("allocate gc id: %w", err))
	}
	err = xproto.CreateGCChecked(
		b.conn.Conn(), gc, b.ref,
		xproto.GcGraphicsExposures, []uint32{0},
	).Check()
	if err != nil {
		return 0, render.BackendError("util-gc", err)
	}
	b.utilGC = gc
	b.hasUtilGC = true
	return gc, nil
}
