package models

import "fmt"

// Color is a 24-bit RGB colour.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorFromPacked decodes a packed 0xRRGGBB integer. Bits above 23 are ignored.
func ColorFromPacked(v uint32) Color {
	return Color{
		R: uint8((v & 0x00ff0000) >> 16),
		G: uint8((v & 0x0000ff00) >> 8),
		B: uint8(v & 0x000000ff),
	}
}

// Packed re-encodes the colour as 0xRRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NullColor is a Color that may be unset.
type NullColor struct {
	Color Color
	Valid bool
}

// SomeColor returns a set NullColor holding c.
func SomeColor(c Color) NullColor {
	return NullColor{Color: c, Valid: true}
}

// Or returns the held colour, or fallback when unset.
func (n NullColor) Or(fallback Color) Color {
	if n.Valid {
		return n.Color
	}
	return fallback
}

// MarshalText renders the colour as "#rrggbb", or an empty string when unset.
func (n NullColor) MarshalText() ([]byte, error) {
	if !n.Valid {
		return []byte{}, nil
	}
	return []byte(n.Color.Hex()), nil
}

// String implements fmt.Stringer.
func (n NullColor) String() string {
	if !n.Valid {
		return "-"
	}
	return n.Color.Hex()
}
