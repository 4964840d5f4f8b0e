// Package text measures and rasterizes text runs for the bar. Glyphs are
// rendered client-side with x/image font faces into per-item cell images;
// the windowing backend uploads the finished cells.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face wraps a loaded font face with its integer pixel metrics.
type Face struct {
	face    font.Face
	ascent  uint32
	descent uint32
}

// LoadFace opens a TTF/OTF file and creates a face at the given point size.
// An empty path loads the embedded Go Mono face.
func LoadFace(path string, size float64) (*Face, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = b
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	if ascent <= 0 || descent < 0 {
		return nil, fmt.Errorf("font reports unusable metrics: ascent %d descent %d", ascent, descent)
	}
	return &Face{
		face:    face,
		ascent:  uint32(ascent),
		descent: uint32(descent),
	}, nil
}

// Close releases the face resources.
func (f *Face) Close() error {
	return f.face.Close()
}

// LineHeight is ascent plus descent: the natural bar height for this face.
func (f *Face) LineHeight() uint32 {
	return f.ascent + f.descent
}

// Measure returns the advance width of s in whole pixels, rounded up.
func (f *Face) Measure(s string) uint32 {
	adv := font.MeasureString(f.face, s)
	if adv < 0 {
		return 0
	}
	return uint32(adv.Ceil())
}

// RenderCell rasterizes s into a width×height image filled with bg. The
// baseline sits vertically centered: when the cell is taller than the face,
// the overhang splits evenly, truncating toward the top.
func (f *Face) RenderCell(s string, fg, bg color.Color, width, height uint32) *image.RGBA {
	cell := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(cell, cell.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	baseline := f.ascent
	if height > f.LineHeight() {
		baseline += (height - f.LineHeight()) / 2
	}

	drawer := font.Drawer{
		Dst:  cell,
		Src:  image.NewUniform(fg),
		Face: f.face,
		Dot:  fixed.P(0, int(baseline)),
	}
	drawer.DrawString(s)
	return cell
}
