package colormath

// TonalSteps is the number of lighter (and darker) steps on each side of the base color.
const TonalSteps = 5

// tonalStep is the lightness/saturation shift per step, in percent.
const tonalStep = 5.0

// shadeDelta is the lightness drop used for the darker companion in a complementary scheme.
const shadeDelta = -20.0

// Scheme names.
const (
	SchemeComplementary = "complementary"
	SchemeAnalogous     = "analogous"
	SchemeTriadic       = "triadic"
)

// ColorScheme is the full set of relationships derived from one base color.
// All values are canonical hex (lowercase, no '#').
type ColorScheme struct {
	Base          string                   `json:"base"`
	Complementary []string                 `json:"complementary"`
	Analogous     []string                 `json:"analogous"`
	Triadic       []string                 `json:"triadic"`
	Tonal         [2*TonalSteps + 1]string `json:"tonal"`
}

// Named returns the three relationship sequences keyed by scheme name.
func (s ColorScheme) Named() map[string][]string {
	return map[string][]string{
		SchemeComplementary: s.Complementary,
		SchemeAnalogous:     s.Analogous,
		SchemeTriadic:       s.Triadic,
	}
}

// Complementary returns [base, hue+180].
func Complementary(hex string) ([]string, bool) {
	base, hsl, ok := parse(hex)
	if !ok {
		return nil, false
	}
	return []string{base, rotate(hsl, 180)}, true
}

// Analogous returns [hue-30, base, hue+30]. The base is the middle element.
func Analogous(hex string) ([]string, bool) {
	base, hsl, ok := parse(hex)
	if !ok {
		return nil, false
	}
	return []string{rotate(hsl, -30), base, rotate(hsl, 30)}, true
}

// Triadic returns [base, hue+120, hue+240].
func Triadic(hex string) ([]string, bool) {
	base, hsl, ok := parse(hex)
	if !ok {
		return nil, false
	}
	return []string{base, rotate(hsl, 120), rotate(hsl, 240)}, true
}

// TonalScale returns 11 colors ordered lightest -> base -> darkest.
// Index TonalSteps is always exactly the (normalized) input.
func TonalScale(hex string) ([2*TonalSteps + 1]string, bool) {
	var scale [2*TonalSteps + 1]string
	base, hsl, ok := parse(hex)
	if !ok {
		return scale, false
	}

	for i := TonalSteps; i >= 1; i-- {
		d := float64(i) * tonalStep
		scale[TonalSteps-i] = HSLToHex(HSL{
			H: hsl.H,
			S: clamp(hsl.S-d, 0, 100),
			L: clamp(hsl.L+d, 0, 100),
		})
	}
	scale[TonalSteps] = base
	for i := 1; i <= TonalSteps; i++ {
		d := float64(i) * tonalStep
		scale[TonalSteps+i] = HSLToHex(HSL{
			H: hsl.H,
			S: clamp(hsl.S+d, 0, 100),
			L: clamp(hsl.L-d, 0, 100),
		})
	}
	return scale, true
}

// Shade shifts lightness by delta percentage points, clamped to [0,100].
func Shade(hex string, delta float64) (string, bool) {
	_, hsl, ok := parse(hex)
	if !ok {
		return "", false
	}
	hsl.L = clamp(hsl.L+delta, 0, 100)
	return HSLToHex(hsl), true
}

// DeriveScheme computes every relationship for hex in one pass.
func DeriveScheme(hex string) (ColorScheme, bool) {
	base, hsl, ok := parse(hex)
	if !ok {
		return ColorScheme{}, false
	}
	tonal, _ := TonalScale(base)
	shaded := hsl
	shaded.L = clamp(hsl.L+shadeDelta, 0, 100)

	return ColorScheme{
		Base:          base,
		Complementary: []string{base, rotate(hsl, 180), HSLToHex(shaded)},
		Analogous:     []string{rotate(hsl, -30), base, rotate(hsl, 30)},
		Triadic:       []string{base, rotate(hsl, 120), rotate(hsl, 240)},
		Tonal:         tonal,
	}, true
}

func parse(hex string) (string, HSL, bool) {
	base, ok := NormalizeHex(hex)
	if !ok {
		return "", HSL{}, false
	}
	hsl, _ := HexToHSL(base)
	return base, hsl, true
}

func rotate(c HSL, deg float64) string {
	c.H = WrapHue(c.H + deg)
	return HSLToHex(c)
}
