package render

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/1broseidon/saftbar/internal/shape"
)

type fakeCall struct {
	op      string
	surface SurfaceID
	ctx     ContextID
	pixel   uint32
	x, y    uint32
	w, h    uint32
	polys   []shape.Polygon
	text    string
}

// fakeBackend records every request in order. Setting failOp makes that
// operation report a backend rejection.
type fakeBackend struct {
	calls   []fakeCall
	nextCtx ContextID
	failOp  string
}

func (f *fakeBackend) CreateContext(pixel uint32) (ContextID, error) {
	if f.failOp == "create-context" {
		return 0, BackendError("create-context", errors.New("rejected"))
	}
	f.nextCtx++
	f.calls = append(f.calls, fakeCall{op: "create-context", ctx: f.nextCtx, pixel: pixel})
	return f.nextCtx, nil
}

func (f *fakeBackend) FreeContext(ctx ContextID) {
	f.calls = append(f.calls, fakeCall{op: "free-context", ctx: ctx})
}

func (f *fakeBackend) FillRect(dst SurfaceID, ctx ContextID, x, y, w, h uint32) error {
	if f.failOp == "fill-rect" {
		return BackendError("fill-rect", errors.New("rejected"))
	}
	f.calls = append(f.calls, fakeCall{op: "fill-rect", surface: dst, ctx: ctx, x: x, y: y, w: w, h: h})
	return nil
}

func (f *fakeBackend) FillPolygons(dst SurfaceID, ctx ContextID, polys []shape.Polygon) error {
	if f.failOp == "fill-poly" {
		return BackendError("fill-poly", errors.New("rejected"))
	}
	f.calls = append(f.calls, fakeCall{op: "fill-poly", surface: dst, ctx: ctx, polys: polys})
	return nil
}

func (f *fakeBackend) Copy(src, dst SurfaceID, w, h uint32) error {
	if f.failOp == "copy" {
		return BackendError("copy", errors.New("rejected"))
	}
	f.calls = append(f.calls, fakeCall{op: "copy", surface: dst, x: uint32(src), w: w, h: h})
	return nil
}

func (f *fakeBackend) Flush() error {
	f.calls = append(f.calls, fakeCall{op: "flush"})
	return nil
}

// fakeText measures every rune as ten pixels wide.
type fakeText struct {
	backend *fakeBackend
}

func (t *fakeText) Measure(s string) uint32 { return uint32(10 * len(s)) }

func (t *fakeText) Draw(dst SurfaceID, s string, fg, bg RGBA, x uint32) error {
	t.backend.calls = append(t.backend.calls, fakeCall{op: "text", surface: dst, x: x, text: s})
	return nil
}

var (
	white = RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = RGBA{R: 255, A: 255}
	blue  = RGBA{B: 255, A: 255}
	black = RGBA{A: 255}
)

func newTestBar(t *testing.T, monitorWidths ...uint32) (*Bar, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	monitors := make([]Monitor, len(monitorWidths))
	for i, w := range monitorWidths {
		monitors[i] = Monitor{
			X:       uint32(i) * 2000,
			W:       w,
			Surface: SurfaceID(100 + i),
			Window:  SurfaceID(200 + i),
		}
	}
	bar, err := New(backend, &fakeText{backend: backend}, monitors, 20, black)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return bar, backend
}

func callsOf(backend *fakeBackend, op string) []fakeCall {
	var out []fakeCall
	for _, c := range backend.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func TestDraw_ConcreteLeftAlignedScenario(t *testing.T) {
	bar, backend := newTestBar(t, 1000)

	items := []ContentItem{
		Text("AB", red, white),
		Separator(shape.Powerline, shape.Full, shape.Right, white, blue),
	}
	if err := bar.Draw(0, AlignLeft, items); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	fills := callsOf(backend, "fill-rect")
	if len(fills) != 2 {
		t.Fatalf("expected 2 background fills, got %d", len(fills))
	}
	if fills[0].x != 0 || fills[0].w != 20 || fills[0].h != 20 {
		t.Fatalf("text background at x=%d w=%d h=%d, want x=0 w=20 h=20", fills[0].x, fills[0].w, fills[0].h)
	}
	if fills[1].x != 20 || fills[1].w != 10 {
		t.Fatalf("separator background at x=%d w=%d, want x=20 w=10", fills[1].x, fills[1].w)
	}

	texts := callsOf(backend, "text")
	if len(texts) != 1 || texts[0].x != 0 || texts[0].text != "AB" {
		t.Fatalf("unexpected text draw: %+v", texts)
	}

	polyFills := callsOf(backend, "fill-poly")
	if len(polyFills) != 1 {
		t.Fatalf("expected 1 polygon fill, got %d", len(polyFills))
	}
	want := shape.Polys(20, 20, shape.Powerline, shape.Full, shape.Right)
	if !reflect.DeepEqual(polyFills[0].polys, want) {
		t.Fatalf("polygons not translated to cursor: got %v, want %v", polyFills[0].polys, want)
	}
}

func TestDraw_AlignmentOffsets(t *testing.T) {
	// Two items, widths 30 and 10 under the fake measure.
	items := []ContentItem{
		Text("abc", white, red),
		Text("d", white, blue),
	}
	const total = 40

	cases := []struct {
		align Alignment
		mw    uint32
		start uint32
	}{
		{AlignLeft, 1000, 0},
		{AlignCenter, 1000, (1000 - total) / 2},
		{AlignRight, 1000, 1000 - total},
		{AlignCenter, 41, 0}, // odd leftover truncates toward the left
	}
	for _, tc := range cases {
		bar, backend := newTestBar(t, tc.mw)
		if err := bar.Draw(0, tc.align, items); err != nil {
			t.Fatalf("Draw: %v", err)
		}
		fills := callsOf(backend, "fill-rect")
		if fills[0].x != tc.start {
			t.Fatalf("align=%d mw=%d: first fill at x=%d, want %d", tc.align, tc.mw, fills[0].x, tc.start)
		}
		if tc.align == AlignRight {
			last := fills[len(fills)-1]
			if last.x+last.w != tc.mw {
				t.Fatalf("right-aligned run ends at %d, want %d", last.x+last.w, tc.mw)
			}
		}
	}
}

func TestDraw_Idempotent(t *testing.T) {
	bar, backend := newTestBar(t, 800)
	items := []ContentItem{
		Separator(shape.Octagon, shape.Outline, shape.Left, white, red),
		Text("status", blue, white),
	}

	if err := bar.Draw(0, AlignCenter, items); err != nil {
		t.Fatalf("first Draw: %v", err)
	}
	first := append([]fakeCall(nil), backend.calls...)
	backend.calls = nil

	if err := bar.Draw(0, AlignCenter, items); err != nil {
		t.Fatalf("second Draw: %v", err)
	}

	// The second pass must not create contexts again and must issue the
	// exact same draw sequence.
	var firstDraws []fakeCall
	for _, c := range first {
		if c.op != "create-context" {
			firstDraws = append(firstDraws, c)
		}
	}
	if !reflect.DeepEqual(backend.calls, firstDraws) {
		t.Fatalf("draw sequences differ:\nfirst:  %+v\nsecond: %+v", firstDraws, backend.calls)
	}
}

func TestDraw_CachesColorsBeforeFilling(t *testing.T) {
	bar, backend := newTestBar(t, 500)
	backend.calls = nil // drop the clear-context creation from New
	items := []ContentItem{
		Text("a", red, white),
		Separator(shape.Powerline, shape.Full, shape.Left, blue, red),
		Text("b", white, blue),
	}
	if err := bar.Draw(0, AlignLeft, items); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	sawFill := false
	for _, c := range backend.calls {
		switch c.op {
		case "fill-rect", "fill-poly":
			sawFill = true
		case "create-context":
			if sawFill {
				t.Fatalf("context created after a fill: %+v", backend.calls)
			}
		}
	}

	// white, red, blue backgrounds plus the separator foreground blue:
	// three distinct colors.
	if got := len(callsOf(backend, "create-context")); got != 3 {
		t.Fatalf("expected 3 contexts, got %d", got)
	}
}

func TestDraw_MonitorIndexOutOfRange(t *testing.T) {
	bar, _ := newTestBar(t, 500)
	err := bar.Draw(3, AlignLeft, nil)
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != KindLocal {
		t.Fatalf("expected local error, got %v", err)
	}
}

func TestDraw_BackendErrorPropagates(t *testing.T) {
	bar, backend := newTestBar(t, 500)
	backend.failOp = "fill-rect"

	err := bar.Draw(0, AlignLeft, []ContentItem{Text("x", red, white)})
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *render.Error, got %v", err)
	}
	if rerr.Kind != KindBackend {
		t.Fatalf("expected backend kind, got %s", rerr.Kind)
	}
}

func TestBar_ClearFillsEveryMonitorFullWidth(t *testing.T) {
	bar, backend := newTestBar(t, 1000, 640)
	if err := bar.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	fills := callsOf(backend, "fill-rect")
	if len(fills) != 2 {
		t.Fatalf("expected one fill per monitor, got %d", len(fills))
	}
	if fills[0].w != 1000 || fills[1].w != 640 {
		t.Fatalf("clear widths %d,%d want 1000,640", fills[0].w, fills[1].w)
	}
	for _, fill := range fills {
		if fill.x != 0 || fill.y != 0 || fill.h != 20 {
			t.Fatalf("clear fill not full-strip: %+v", fill)
		}
	}
}

func TestBar_PresentCopiesEachMonitor(t *testing.T) {
	bar, backend := newTestBar(t, 1000, 640)
	if err := bar.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	copies := callsOf(backend, "copy")
	if len(copies) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(copies))
	}
	if copies[0].x != 100 || copies[0].surface != 200 {
		t.Fatalf("first copy src=%d dst=%d, want src=100 dst=200", copies[0].x, copies[0].surface)
	}
	if copies[1].w != 640 || copies[1].h != 20 {
		t.Fatalf("second copy %dx%d, want 640x20", copies[1].w, copies[1].h)
	}
}

func TestColorCache_EnsureIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	cache := NewColorCache(backend)

	for i := 0; i < 3; i++ {
		if err := cache.Ensure(red); err != nil {
			t.Fatalf("Ensure: %v", err)
		}
	}
	if got := len(callsOf(backend, "create-context")); got != 1 {
		t.Fatalf("expected 1 context creation, got %d", got)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 cached color, got %d", cache.Len())
	}
}

func TestColorCache_MustGetPanicsOnMiss(t *testing.T) {
	cache := NewColorCache(&fakeBackend{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for uncached color")
		}
	}()
	cache.MustGet(red)
}

func TestColorCache_CloseFreesContexts(t *testing.T) {
	backend := &fakeBackend{}
	cache := NewColorCache(backend)
	for _, c := range []RGBA{red, blue, white} {
		if err := cache.Ensure(c); err != nil {
			t.Fatalf("Ensure: %v", err)
		}
	}
	cache.Close()
	if got := len(callsOf(backend, "free-context")); got != 3 {
		t.Fatalf("expected 3 frees, got %d", got)
	}
	if cache.Len() != 0 {
		t.Fatalf("cache not empty after Close")
	}
}

func TestRGBA_Pixel(t *testing.T) {
	cases := []struct {
		color RGBA
		want  uint32
	}{
		{RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}, 0xFFFF0000},
		{RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}, 0x78123456},
		{RGBA{}, 0x00000000},
	}
	for _, tc := range cases {
		if got := tc.color.Pixel(); got != tc.want {
			t.Fatalf("Pixel(%+v) = %08x, want %08x", tc.color, got, tc.want)
		}
	}
}

func TestError_Formatting(t *testing.T) {
	err := BackendError("fill-rect", errors.New("bad drawable"))
	want := "fill-rect: backend error: bad drawable"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, err.Err) {
		// Unwrap must expose the underlying error.
		t.Fatalf("expected unwrap to reach the cause")
	}
	if fmt.Sprintf("%s", KindLocal) != "local" {
		t.Fatalf("unexpected kind string")
	}
}
