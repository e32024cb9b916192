// Package color provides the 8-bit RGBA color type shared by solids,
// lights, and styles. Colors are plain value records; clamping and
// rounding to the valid [0,255] integer range happens where they are
// computed (the shader), not here.
package color

import (
	"fmt"
	"math/rand"
)

// RGBA is an 8-bit-per-channel color with alpha. Alpha 0..255 maps to
// opacity 0.0..1.0.
type RGBA struct {
	R, G, B, A uint8
}

// New creates an RGBA with full opacity.
func New(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// NewWithAlpha creates an RGBA with an explicit alpha channel.
func NewWithAlpha(r, g, b, a uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// RGB returns the three color channels as a tuple, discarding alpha.
func (c RGBA) RGB() (r, g, b uint8) {
	return c.R, c.G, c.B
}

// RGBA64 returns all four channels, for callers that round-trip a
// computed color (e.g. into a palette or re-export).
func (c RGBA) RGBA64() (r, g, b, a uint8) {
	return c.R, c.G, c.B, c.A
}

// Opacity returns alpha as a 0.0..1.0 fraction.
func (c RGBA) Opacity() float64 {
	return float64(c.A) / 255.0
}

// String renders the color as "r,g,b" for embedding in an SVG
// rgb(...) function, matching the original tool's str(RGBA) convention.
func (c RGBA) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// RandomGray returns an RGBA with R == G == B drawn uniformly from
// [lower, upper], and full opacity. It mirrors the reference tool's
// default coloring of a freshly bound solid before a caller assigns a
// deliberate color.
func RandomGray(lower, upper uint8) RGBA {
	v := uint8(int(lower) + rand.Intn(int(upper)-int(lower)+1))
	return New(v, v, v)
}
