// Package theme holds the colors, faces and icon glyphs the controller and
// list widget render with, and the SWEEP_THEME parsing the CLI surface
// exposes. A palette is expanded into per-element faces using the
// contrast/luminance math in tools/utils/colors.go.
package theme

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/sweeptui/sweep/tools/utils"
)

//go:embed icons.json
var embeddedIcons []byte

// iconsOnce loads the packaged icon table exactly once per process, the
// same "process-wide, immutable after initialization" global state the
// icon table is specified to be: every FromPalette call shares the parsed
// map instead of re-unmarshaling the embedded asset each time.
var iconsOnce = utils.Once[map[string]string]{Run: func() map[string]string {
	icons, err := loadIcons()
	if err != nil {
		// The icon table is a build-time asset, not user input; a parse
		// failure here means the embed is corrupt, not a runtime condition
		// callers can recover from.
		panic(err)
	}
	return icons
}}

// RGB is a simple 8-bit-per-channel color; the terminal I/O layer is
// responsible for turning it into the escape sequences it actually writes.
type RGB struct{ R, G, B uint8 }

func (c RGB) floats() (float32, float32, float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// Luma returns the perceptual luminance of c via ITU BT.601, used to decide
// whether a palette is a light or dark theme.
func (c RGB) Luma() float32 {
	r, g, b := c.floats()
	return utils.RGBLuminance(r, g, b)
}

// Face is a foreground/background color pair with optional attributes.
type Face struct {
	FG, BG RGB
	Bold   bool
	Italic bool
}

// Theme carries every color, face and toggle the controller needs to
// render a frame, plus the icon table and the preview-enabled flag that key
// bindings flip at runtime.
type Theme struct {
	FG, BG, Accent RGB

	Cursor              Face
	Input               Face
	ListDefault         Face
	ListSelected        Face
	ListMarked          Face
	ListHighlight       Face
	ListInactive        Face
	Scrollbar           Face
	Stats               Face
	Label               Face
	Separator           Face

	ShowPreview bool
	NamedColors map[string]RGB
	Icons       map[string]string
}

// Icon returns the icon glyph named by key, or the theme's default icon if
// key is unknown.
func (t *Theme) Icon(key string) string {
	if g, ok := t.Icons[key]; ok {
		return g
	}
	return t.Icons["default"]
}

func loadIcons() (map[string]string, error) {
	var icons map[string]string
	if err := json.Unmarshal(embeddedIcons, &icons); err != nil {
		return nil, fmt.Errorf("theme: parsing embedded icon table: %w", err)
	}
	return icons, nil
}

// FromPalette derives a full Theme from a three-color palette, the same way
// Theme::from_palette picks selection/cursor faces by blending the accent
// color over the background and choosing whichever of fg/bg contrasts best.
func FromPalette(fg, bg, accent RGB) (*Theme, error) {
	icons := iconsOnce.Get()
	isLight := bg.Luma() > fg.Luma()

	listSelectedBG := blend(bg, fg, 0.04)
	if isLight {
		listSelectedBG = blend(bg, fg, 0.12)
	}

	t := &Theme{
		FG: fg, BG: bg, Accent: accent,
		Cursor:        Face{FG: bestContrast(blend(bg, accent, 0.5), bg, fg), BG: blend(bg, accent, 0.5)},
		Input:         Face{FG: fg, BG: bg},
		ListDefault:   Face{FG: fg, BG: bg},
		ListSelected:  Face{FG: fg, BG: listSelectedBG},
		ListMarked:    Face{FG: accent, BG: bg},
		ListHighlight: Face{FG: accent, BG: bg, Bold: true},
		ListInactive:  Face{FG: fg, BG: bg},
		Scrollbar:     Face{FG: accent, BG: bg},
		Stats:         Face{FG: fg, BG: bg},
		Label:         Face{FG: accent, BG: bg},
		Separator:     Face{FG: fg, BG: bg},
		ShowPreview:   true,
		NamedColors: map[string]RGB{
			"fg": fg, "bg": bg, "accent": accent, "base": accent,
		},
		Icons: icons,
	}
	return t, nil
}

func blend(base, over RGB, alpha float32) RGB {
	r := uint8(float32(base.R)*(1-alpha) + float32(over.R)*alpha)
	g := uint8(float32(base.G)*(1-alpha) + float32(over.G)*alpha)
	b := uint8(float32(base.B)*(1-alpha) + float32(over.B)*alpha)
	return RGB{r, g, b}
}

// bestContrast returns whichever of a or b contrasts more strongly against
// bg, per tools/utils.RGBContrast.
func bestContrast(bg, a, b RGB) RGB {
	bgR, bgG, bgB := bg.floats()
	aR, aG, aB := a.floats()
	bR, bG, bB := b.floats()
	if utils.RGBContrast(bgR, bgG, bgB, aR, aG, aB) >= utils.RGBContrast(bgR, bgG, bgB, bR, bG, bB) {
		return a
	}
	return b
}
