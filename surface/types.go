// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a hex color cannot be parsed.
var ErrInvalidColor = errors.New("surface: invalid color")

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as 0xRRGGBB.
func Hex(v uint32) RGB {
	//nolint:gosec // G115: masked to 8 bits
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// ParseHex parses "rrggbb" or "#rrggbb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Hex(uint32(v)), nil
}

// Channels returns the color as a three byte array.
func (c RGB) Channels() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// String returns the color as #rrggbb.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
