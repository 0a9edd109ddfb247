// Package colormath provides hex/RGB/HSL conversions and color-relationship derivations.
//
// Every consumer (preview endpoints, exporters, CLI) goes through this package so that the
// colors shown on screen and the colors written into exported documents are bit-identical.
// Functions never panic on malformed input; they report it through a false "ok" result.
package colormath

import (
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL holds hue in [0,360), saturation and lightness in [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// IsHex reports whether s is a 6-digit hex color, with or without a leading '#'.
func IsHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeHex returns the canonical storage form: lowercase, no '#'.
func NormalizeHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !IsHex(s) {
		return "", false
	}
	return strings.ToLower(strings.TrimPrefix(s, "#")), true
}

// HexToRGB parses a 6-digit hex color. ok is false for anything else.
func HexToRGB(hex string) (RGB, bool) {
	hex, ok := NormalizeHex(hex)
	if !ok {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// Hex renders the color in canonical storage form.
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{
		digits[c.R>>4], digits[c.R&0x0f],
		digits[c.G>>4], digits[c.G&0x0f],
		digits[c.B>>4], digits[c.B&0x0f],
	}
	return string(b)
}

// RGBToHSL converts using the max/min channel algorithm.
// Achromatic input (max == min) yields exactly h = s = 0.
func RGBToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(math.Max(rf, gf), bf)
	min := math.Min(math.Min(rf, gf), bf)
	l := (max + min) / 2

	if max == min {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6

	return HSL{H: WrapHue(h * 360), S: s * 100, L: l * 100}
}

// HSLToRGB is the inverse of RGBToHSL. Channels are rounded to the nearest integer,
// so a hex -> hsl -> hex round trip is exact to within one unit per channel.
func HSLToRGB(c HSL) RGB {
	h := WrapHue(c.H) / 360
	s := clamp(c.S, 0, 100) / 100
	l := clamp(c.L, 0, 100) / 100

	if s == 0 {
		v := channel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+1.0/3)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3)),
	}
}

// HSLToHex converts straight to canonical hex.
func HSLToHex(c HSL) string {
	return HSLToRGB(c).Hex()
}

// HexToHSL parses and converts in one step.
func HexToHSL(hex string) (HSL, bool) {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return HSL{}, false
	}
	return RGBToHSL(rgb.R, rgb.G, rgb.B), true
}

// WrapHue maps any hue, including negative intermediates, into [0,360).
func WrapHue(h float64) float64 {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	if h >= 360 {
		h = 0
	}
	return h
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
