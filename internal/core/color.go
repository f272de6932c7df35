package core

import (
	"fmt"
	"image/color"
)

// Color is a 24-bit terminal color for a screen cell.
// The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Set     bool
}

// ColorDefault leaves the terminal's own color in place.
var ColorDefault = Color{}

// RGB builds a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// FromRGBA converts an image color, dropping alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Predefined colors for text overlays.
var (
	ColorWhite = RGB(255, 255, 255)
	ColorBlack = RGB(0, 0, 0)
)
