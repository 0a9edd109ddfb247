package colormath

import "math"

// RelativeLuminance follows the WCAG 2.x definition.
func RelativeLuminance(c RGB) float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio between two colors, in [1,21].
func ContrastRatio(a, b RGB) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ReadableOn picks black or white text, whichever contrasts more with the background.
// Malformed input falls back to black.
func ReadableOn(hex string) string {
	bg, ok := HexToRGB(hex)
	if !ok {
		return "000000"
	}
	black, white := RGB{}, RGB{R: 255, G: 255, B: 255}
	if ContrastRatio(bg, white) >= ContrastRatio(bg, black) {
		return "ffffff"
	}
	return "000000"
}
