// Package config defines the bar configuration, its defaults and
// validation.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/saftbar/internal/render"
	"github.com/1broseidon/saftbar/internal/shape"
)

// Position pins the bar to a screen edge.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// FontConfig selects the face text runs are shaped with.
type FontConfig struct {
	// Path to a TTF/OTF file. Empty uses the embedded Go Mono face.
	Path string `yaml:"path"`
	// Size in points. Fractional sizes are meaningful: faces rasterize
	// around a baseline and a tenth of a point can decide whether the
	// result is vertically symmetric.
	Size float64 `yaml:"size"`
}

// ColorsConfig holds the default palette as hex strings (#rrggbb or
// #rrggbbaa).
type ColorsConfig struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Accent     string `yaml:"accent"`
}

// SeparatorConfig picks the glyph drawn between adjacent segments.
type SeparatorConfig struct {
	Style string `yaml:"style"` // powerline | octagon
	Fill  string `yaml:"fill"`  // full | outline
}

// SegmentsConfig lists the status segments per alignment, in draw order.
type SegmentsConfig struct {
	Left   []string `yaml:"left"`
	Center []string `yaml:"center"`
	Right  []string `yaml:"right"`
}

// LoggingConfig configures the daemon log.
type LoggingConfig struct {
	// Level controls verbosity: debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
	// File is the log file path; empty logs to stderr only.
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the file size that triggers rotation.
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep.
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config is the effective bar configuration.
type Config struct {
	// Instance names the bar windows (WM_NAME/WM_CLASS).
	Instance string `yaml:"instance"`
	Position Position `yaml:"position"`
	// Height overrides the bar height in pixels; 0 derives it from the
	// font's ascent plus descent.
	Height int `yaml:"height"`

	Font      FontConfig      `yaml:"font"`
	Colors    ColorsConfig    `yaml:"colors"`
	Separator SeparatorConfig `yaml:"separator"`

	// UpdateInterval is the status refresh period, e.g. "2s".
	UpdateInterval string `yaml:"update_interval"`

	Segments SegmentsConfig `yaml:"segments"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// KnownSegments lists the segment names Validate accepts.
var KnownSegments = []string{"clock", "hostname", "cpu", "memory", "load"}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Instance: "saftbar",
		Position: PositionTop,
		Height:   0,
		Font: FontConfig{
			Path: "",
			Size: 15.25,
		},
		Colors: ColorsConfig{
			Background: "#000000",
			Foreground: "#ffffff",
			Accent:     "#285577",
		},
		Separator: SeparatorConfig{
			Style: "powerline",
			Fill:  "full",
		},
		UpdateInterval: "2s",
		Segments: SegmentsConfig{
			Left:  []string{"hostname"},
			Right: []string{"cpu", "memory", "clock"},
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
	}
}

// Validate checks the configuration for values the bar cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Instance) == "" {
		return fmt.Errorf("instance must not be empty")
	}
	if c.Position != PositionTop && c.Position != PositionBottom {
		return fmt.Errorf("position must be %q or %q, got %q", PositionTop, PositionBottom, c.Position)
	}
	if c.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", c.Height)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive, got %v", c.Font.Size)
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"colors.background", c.Colors.Background},
		{"colors.foreground", c.Colors.Foreground},
		{"colors.accent", c.Colors.Accent},
	} {
		if _, err := ParseColor(field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	if _, _, err := c.SeparatorShape(); err != nil {
		return err
	}
	if _, err := c.UpdateEvery(); err != nil {
		return err
	}
	for _, side := range []struct {
		name     string
		segments []string
	}{
		{"segments.left", c.Segments.Left},
		{"segments.center", c.Segments.Center},
		{"segments.right", c.Segments.Right},
	} {
		for _, seg := range side.segments {
			if !knownSegment(seg) {
				return fmt.Errorf("%s: unknown segment %q (known: %s)",
					side.name, seg, strings.Join(KnownSegments, ", "))
			}
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func knownSegment(name string) bool {
	for _, known := range KnownSegments {
		if name == known {
			return true
		}
	}
	return false
}

// UpdateEvery parses the refresh period.
func (c *Config) UpdateEvery() (time.Duration, error) {
	d, err := time.ParseDuration(c.UpdateInterval)
	if err != nil {
		return 0, fmt.Errorf("update_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("update_interval must be positive, got %s", d)
	}
	return d, nil
}

// SeparatorShape resolves the configured separator style and fill.
func (c *Config) SeparatorShape() (shape.Style, shape.Fill, error) {
	var style shape.Style
	switch c.Separator.Style {
	case "powerline":
		style = shape.Powerline
	case "octagon":
		style = shape.Octagon
	default:
		return 0, 0, fmt.Errorf("separator.style must be powerline or octagon, got %q", c.Separator.Style)
	}

	var fill shape.Fill
	switch c.Separator.Fill {
	case "full":
		fill = shape.Full
	case "outline":
		fill = shape.Outline
	default:
		return 0, 0, fmt.Errorf("separator.fill must be full or outline, got %q", c.Separator.Fill)
	}
	return style, fill, nil
}

// Background returns the parsed default background color.
func (c *Config) Background() render.RGBA {
	return mustParseColor(c.Colors.Background)
}

// Foreground returns the parsed default foreground color.
func (c *Config) Foreground() render.RGBA {
	return mustParseColor(c.Colors.Foreground)
}

// Accent returns the parsed accent color.
func (c *Config) Accent() render.RGBA {
	return mustParseColor(c.Colors.Accent)
}

// mustParseColor is for access after Validate; a bad value at this point is
// a bug in the loading sequence.
func mustParseColor(hex string) render.RGBA {
	color, err := ParseColor(hex)
	if err != nil {
		panic(fmt.Sprintf("config: color %q not validated: %v", hex, err))
	}
	return color
}

// ParseColor parses #rrggbb or #rrggbbaa into an RGBA value. The rgb part
// goes through go-colorful; the optional alpha byte is split off first.
func ParseColor(hex string) (render.RGBA, error) {
	s := strings.TrimSpace(hex)
	alpha := uint8(0xFF)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return render.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return render.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := parsed.RGB255()
	return render.RGBA{R: r, G: g, B: b, A: alpha}, nil
}
