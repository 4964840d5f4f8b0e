package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/saftbar/internal/geometry"
)

// OutputGeometries queries RandR for the active display regions. CRTCs that
// are disabled or have no outputs attached are skipped; the result is raw
// and may contain mirrored duplicates — geometry.ResolveMonitors decides
// which regions the bar actually occupies.
func (c *Connection) OutputGeometries() ([]geometry.Rect, error) {
	resources, err := randr.GetScreenResourcesCurrent(c.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}

	var rects []geometry.Rect
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		if info.X < 0 || info.Y < 0 {
			return nil, fmt.Errorf("output at negative position %d,%d is not supported", info.X, info.Y)
		}
		rects = append(rects, geometry.Rect{
			X: uint32(info.X),
			Y: uint32(info.Y),
			W: uint32(info.Width),
			H: uint32(info.Height),
		})
	}
	return rects, nil
}
