package colormath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplementary_Red(t *testing.T) {
	got, ok := Complementary("#ff0000")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "ff0000", got[0])
	assert.Equal(t, "00ffff", got[1])

	hsl, ok := HexToHSL(got[1])
	require.True(t, ok)
	assert.InDelta(t, 180.0, hsl.H, 1e-9)
}

func TestAnalogous_BaseInMiddle(t *testing.T) {
	got, ok := Analogous("FF0000")
	require.True(t, ok)
	require.Len(t, got, 3)
	assert.Equal(t, "ff0000", got[1])
	assertHue(t, got[0], 330)
	assertHue(t, got[2], 30)
}

func TestAnalogous_WrapsBelowZero(t *testing.T) {
	got, ok := Analogous("0a0005")
	require.True(t, ok)
	for _, c := range got {
		hsl, ok := HexToHSL(c)
		require.True(t, ok)
		assert.GreaterOrEqual(t, hsl.H, 0.0)
		assert.Less(t, hsl.H, 360.0)
	}
}

// assertHue allows for the integer rounding of the hex representation.
func assertHue(t *testing.T, hex string, want float64) {
	t.Helper()
	hsl, ok := HexToHSL(hex)
	require.True(t, ok)
	assert.InDelta(t, want, hsl.H, 1.0, hex)
}

func TestTriadic(t *testing.T) {
	got, ok := Triadic("ff0000")
	require.True(t, ok)
	assert.Equal(t, []string{"ff0000", "00ff00", "0000ff"}, got)
}

func TestTonalScale_Midpoint(t *testing.T) {
	inputs := []string{"ff0000", "#123456", "ABCDEF", "000000", "ffffff", "808080", "2e3192"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			scale, ok := TonalScale(in)
			require.True(t, ok)
			want, _ := NormalizeHex(in)
			assert.Equal(t, want, scale[TonalSteps])
			for _, c := range scale {
				assert.True(t, IsHex(c), c)
			}
		})
	}
}

func TestTonalScale_Ordering(t *testing.T) {
	scale, ok := TonalScale("2e3192")
	require.True(t, ok)

	prev := 101.0
	for i, c := range scale {
		hsl, ok := HexToHSL(c)
		require.True(t, ok)
		assert.LessOrEqual(t, hsl.L, prev+0.5, "step %d (%s) should not be lighter than the previous step", i, c)
		prev = hsl.L
	}
}

func TestTonalScale_WhiteClamps(t *testing.T) {
	scale, ok := TonalScale("ffffff")
	require.True(t, ok)
	for i := 0; i < TonalSteps; i++ {
		assert.Equal(t, "ffffff", scale[i])
	}
}

func TestInvalidInputReturnsSentinel(t *testing.T) {
	_, ok := Complementary("nope")
	assert.False(t, ok)
	_, ok = Analogous("#12")
	assert.False(t, ok)
	_, ok = Triadic("")
	assert.False(t, ok)
	_, ok = TonalScale("zzzzzz")
	assert.False(t, ok)
	_, ok = DeriveScheme("#1234567")
	assert.False(t, ok)
	_, ok = Shade("xyz", -10)
	assert.False(t, ok)
}

func TestDeriveScheme(t *testing.T) {
	s, ok := DeriveScheme("#FF0000")
	require.True(t, ok)

	assert.Equal(t, "ff0000", s.Base)
	assert.Equal(t, []string{"ff0000", "00ffff", "990000"}, s.Complementary)
	require.Len(t, s.Analogous, 3)
	assert.Equal(t, "ff0000", s.Analogous[1])
	assert.Equal(t, []string{"ff0000", "00ff00", "0000ff"}, s.Triadic)
	assert.Equal(t, "ff0000", s.Tonal[TonalSteps])

	named := s.Named()
	assert.Len(t, named, 3)
	for name, seq := range named {
		assert.Len(t, seq, 3, name)
	}
}

func TestShade(t *testing.T) {
	darker, ok := Shade("808080", -20)
	require.True(t, ok)
	before, _ := HexToHSL("808080")
	after, _ := HexToHSL(darker)
	assert.Less(t, after.L, before.L)

	white, ok := Shade("ffffff", 40)
	require.True(t, ok)
	assert.Equal(t, "ffffff", white)
}

func TestReadableOn(t *testing.T) {
	assert.Equal(t, "000000", ReadableOn("ffffff"))
	assert.Equal(t, "ffffff", ReadableOn("000000"))
	assert.Equal(t, "ffffff", ReadableOn("2e3192"))
	assert.Equal(t, "000000", ReadableOn("bad"))
}
