package text

import (
	"image/color"
	"testing"
)

func loadTestFace(t *testing.T) *Face {
	t.Helper()
	face, err := LoadFace("", 15.25)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func TestLoadFace_EmbeddedDefault(t *testing.T) {
	face := loadTestFace(t)
	if face.LineHeight() == 0 {
		t.Fatalf("face reports zero line height")
	}
}

func TestLoadFace_MissingFile(t *testing.T) {
	if _, err := LoadFace("/nonexistent/font.ttf", 12); err == nil {
		t.Fatalf("expected error for missing font file")
	}
}

func TestMeasure(t *testing.T) {
	face := loadTestFace(t)

	if got := face.Measure(""); got != 0 {
		t.Fatalf("empty string measures %d", got)
	}
	one := face.Measure("a")
	if one == 0 {
		t.Fatalf("single glyph measures zero")
	}
	// Go Mono is monospaced, so advances scale with rune count.
	if got := face.Measure("aaaa"); got != 4*one {
		t.Fatalf("four glyphs measure %d, want %d", got, 4*one)
	}
	if face.Measure(" abc ") <= face.Measure("abc") {
		t.Fatalf("padding spaces add no width")
	}
}

func TestRenderCell_Dimensions(t *testing.T) {
	face := loadTestFace(t)

	cell := face.RenderCell("hi", color.White, color.Black, 40, 20)
	bounds := cell.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 20 {
		t.Fatalf("cell is %dx%d, want 40x20", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderCell_BackgroundFillsEmptyCell(t *testing.T) {
	face := loadTestFace(t)
	bg := color.RGBA{R: 0x28, G: 0x55, B: 0x77, A: 0xFF}

	cell := face.RenderCell("", color.White, bg, 8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if cell.RGBAAt(x, y) != bg {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, cell.RGBAAt(x, y))
			}
		}
	}
}

func TestRenderCell_DrawsForeground(t *testing.T) {
	face := loadTestFace(t)
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	bg := color.RGBA{A: 0xFF}

	w := face.Measure("X")
	h := face.LineHeight()
	cell := face.RenderCell("X", fg, bg, w, h)

	touched := false
	for y := 0; y < int(h) && !touched; y++ {
		for x := 0; x < int(w); x++ {
			if cell.RGBAAt(x, y) != bg {
				touched = true
				break
			}
		}
	}
	if !touched {
		t.Fatalf("glyph left no mark on the cell")
	}
}

func TestRenderCell_TallCellCentersBaseline(t *testing.T) {
	face := loadTestFace(t)
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	bg := color.RGBA{A: 0xFF}

	w := face.Measure("X")
	h := face.LineHeight() + 20
	cell := face.RenderCell("X", fg, bg, w, h)

	top, bottom := -1, -1
	for y := 0; y < int(h); y++ {
		rowTouched := false
		for x := 0; x < int(w); x++ {
			if cell.RGBAAt(x, y) != bg {
				rowTouched = true
				break
			}
		}
		if rowTouched {
			if top < 0 {
				top = y
			}
			bottom = y
		}
	}
	if top < 0 {
		t.Fatalf("glyph left no mark on the cell")
	}
	// With 20 extra pixels the glyph must sit clear of both edges.
	if top < 5 || bottom > int(h)-5 {
		t.Fatalf("glyph not vertically centered: rows %d..%d in height %d", top, bottom, h)
	}
}
