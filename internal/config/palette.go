package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Colors is a parsed palette.
type Colors struct {
	Dark   color.RGBA
	Medium color.RGBA
	Light  color.RGBA
	Hurdle color.RGBA
	Player color.RGBA
	Text   color.RGBA
}

// Colors parses every palette entry.
func (p PaletteConfig) Colors() (Colors, error) {
	var c Colors
	entries := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"dark", p.Dark, &c.Dark},
		{"medium", p.Medium, &c.Medium},
		{"light", p.Light, &c.Light},
		{"hurdle", p.Hurdle, &c.Hurdle},
		{"player", p.Player, &c.Player},
		{"text", p.Text, &c.Text},
	}
	for _, e := range entries {
		rgba, err := ParseColor(e.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("palette.%s: %w", e.name, err)
		}
		*e.dst = rgba
	}
	return c, nil
}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Blend mixes a toward b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}
