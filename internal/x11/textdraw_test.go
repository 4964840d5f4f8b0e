package x11

import (
	"bytes"
	"testing"
)

func TestToZPixmap_ByteOrder(t *testing.T) {
	// Two image.RGBA pixels: (R=1,G=2,B=3,A=4) and (R=9,G=8,B=7,A=6).
	pix := []byte{1, 2, 3, 4, 9, 8, 7, 6}

	lsb := toZPixmap(pix, false)
	if want := []byte{3, 2, 1, 4, 7, 8, 9, 6}; !bytes.Equal(lsb, want) {
		t.Fatalf("LSB-first layout = %v, want %v", lsb, want)
	}

	msb := toZPixmap(pix, true)
	if want := []byte{4, 1, 2, 3, 6, 9, 8, 7}; !bytes.Equal(msb, want) {
		t.Fatalf("MSB-first layout = %v, want %v", msb, want)
	}
}

func TestToZPixmap_IgnoresTrailingPartialPixel(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 9, 8}
	out := toZPixmap(pix, false)
	if len(out) != len(pix) {
		t.Fatalf("length changed: %d != %d", len(out), len(pix))
	}
	if out[4] != 0 || out[5] != 0 {
		t.Fatalf("partial pixel bytes not left zero: %v", out)
	}
}
