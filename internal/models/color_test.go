package models

import "testing"

func TestColorFromPacked(t *testing.T) {
	tests := []struct {
		name   string
		packed uint32
		want   Color
	}{
		{"black", 0x000000, Color{0, 0, 0}},
		{"white", 0xFFFFFF, Color{255, 255, 255}},
		{"red", 0xFF0000, Color{255, 0, 0}},
		{"green", 0x00FF00, Color{0, 255, 0}},
		{"blue", 0x0000FF, Color{0, 0, 255}},
		{"mixed", 0x1E2A3B, Color{0x1E, 0x2A, 0x3B}},
		{"high bits ignored", 0xAB123456, Color{0x12, 0x34, 0x56}},
		{"all bits", 0xFFFFFFFF, Color{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorFromPacked(tt.packed); got != tt.want {
				t.Fatalf("ColorFromPacked(%#x) = %+v, want %+v", tt.packed, got, tt.want)
			}
		})
	}
}

func TestColorPackedRoundTrip(t *testing.T) {
	for c := uint32(0); c <= 0xFFFFFF; c++ {
		if got := ColorFromPacked(c).Packed(); got != c {
			t.Fatalf("round trip of %#06x = %#06x", c, got)
		}
	}

	if got := ColorFromPacked(0x7F00FF00).Packed(); got != 0x00FF00 {
		t.Fatalf("expected low 24 bits, got %#x", got)
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{R: 0x0a, G: 0xbc, B: 0xff}).Hex(); got != "#0abcff" {
		t.Fatalf("Hex() = %q", got)
	}
}

func TestNullColor(t *testing.T) {
	fallback := Color{1, 2, 3}

	var unset NullColor
	if unset.Or(fallback) != fallback {
		t.Fatal("unset colour should use fallback")
	}
	if unset.String() != "-" {
		t.Fatalf("unexpected String(): %q", unset.String())
	}

	set := SomeColor(Color{9, 9, 9})
	if set.Or(fallback) != (Color{9, 9, 9}) {
		t.Fatal("set colour should ignore fallback")
	}

	text, err := set.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "#090909" {
		t.Fatalf("MarshalText = %q", text)
	}
}
