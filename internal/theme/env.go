package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	light = RGB{0x1e, 0x1e, 0x2e}
	dark  = RGB{0xcd, 0xd6, 0xf4}
)

// Light is the built-in light palette.
func Light() *Theme {
	t, err := FromPalette(light, RGB{0xee, 0xee, 0xee}, RGB{0x1e, 0x66, 0xf5})
	if err != nil {
		panic(err)
	}
	return t
}

// Dark is the built-in dark palette.
func Dark() *Theme {
	t, err := FromPalette(dark, RGB{0x11, 0x11, 0x1b}, RGB{0x89, 0xb4, 0xfa})
	if err != nil {
		panic(err)
	}
	return t
}

// Dumb is a minimal no-color theme, for terminals that can't do RGB.
func Dumb() *Theme {
	t, err := FromPalette(RGB{0xff, 0xff, 0xff}, RGB{0, 0, 0}, RGB{0xff, 0xff, 0xff})
	if err != nil {
		panic(err)
	}
	t.ShowPreview = false
	return t
}

// ParseRGB parses a "#rrggbb" or "#rgb" color.
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		r, err := strconv.ParseUint(s[0:1], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		g, err := strconv.ParseUint(s[1:2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		b, err := strconv.ParseUint(s[2:3], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		return RGB{uint8(r * 17), uint8(g * 17), uint8(b * 17)}, nil
	case 6:
		r, err := strconv.ParseUint(s[0:2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		g, err := strconv.ParseUint(s[2:4], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		b, err := strconv.ParseUint(s[4:6], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		return RGB{uint8(r), uint8(g), uint8(b)}, nil
	default:
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
}

// ParseSpec parses a theme spec string as accepted by the SWEEP_THEME
// environment variable and the --theme CLI flag: a comma-separated list of
// key=value attributes (fg=, bg=, accent=/base=) layered over one of the
// named base palettes (light, dark, dumb), applied left to right.
func ParseSpec(spec string) (*Theme, error) {
	t := Light()
	for _, attr := range strings.Split(spec, ",") {
		kv := strings.SplitN(attr, "=", 2)
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		var value string
		if len(kv) > 1 {
			value = strings.TrimSpace(kv[1])
		}
		switch key {
		case "fg":
			rgb, err := ParseRGB(value)
			if err != nil {
				return nil, err
			}
			t, err = FromPalette(rgb, t.BG, t.Accent)
			if err != nil {
				return nil, err
			}
		case "bg":
			rgb, err := ParseRGB(value)
			if err != nil {
				return nil, err
			}
			t, err = FromPalette(t.FG, rgb, t.Accent)
			if err != nil {
				return nil, err
			}
		case "accent", "base":
			rgb, err := ParseRGB(value)
			if err != nil {
				return nil, err
			}
			t, err = FromPalette(t.FG, t.BG, rgb)
			if err != nil {
				return nil, err
			}
		case "light":
			t = Light()
		case "dark":
			t = Dark()
		case "dumb":
			t = Dumb()
		default:
			return nil, fmt.Errorf("theme: unknown attribute %q in spec %q", key, spec)
		}
	}
	return t, nil
}

// FromEnv parses the SWEEP_THEME environment variable, falling back to the
// light theme if it is unset, empty, or fails to parse.
func FromEnv() *Theme {
	spec := os.Getenv("SWEEP_THEME")
	if spec == "" {
		return Light()
	}
	t, err := ParseSpec(spec)
	if err != nil {
		return Light()
	}
	return t
}
