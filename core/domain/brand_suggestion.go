package domain

import (
	"fmt"
	"strings"

	"brand_server/pkg/colormath"
)

// OptionKey names one of the three ranked suggestion options.
type OptionKey string

const (
	Option1 OptionKey = "option1"
	Option2 OptionKey = "option2"
	Option3 OptionKey = "option3"
)

// OptionKeys lists the keys in rank order.
var OptionKeys = [3]OptionKey{Option1, Option2, Option3}

// ParseOptionKey accepts exactly option1, option2 or option3.
func ParseOptionKey(s string) (OptionKey, error) {
	switch k := OptionKey(strings.TrimSpace(s)); k {
	case Option1, Option2, Option3:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown option key %q", ErrContractViolation, s)
}

// HexColor is six hex digits, stored lowercase without '#'.
type HexColor string

// ParseHexColor normalizes s into storage form.
func ParseHexColor(s string) (HexColor, error) {
	n, ok := colormath.NormalizeHex(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
	}
	return HexColor(n), nil
}

// CSS renders the color with the '#' prefix used at presentation boundaries.
func (h HexColor) CSS() string { return "#" + string(h) }

func (h HexColor) String() string { return string(h) }

// Options holds one value per option key.
type Options[T ~string] struct {
	Option1 T `json:"option1"`
	Option2 T `json:"option2"`
	Option3 T `json:"option3"`
}

// Get returns the value stored under key.
func (o Options[T]) Get(key OptionKey) T {
	switch key {
	case Option2:
		return o.Option2
	case Option3:
		return o.Option3
	}
	return o.Option1
}

// Values returns the options in rank order.
func (o Options[T]) Values() []T {
	return []T{o.Option1, o.Option2, o.Option3}
}

// FontColorSuggestion is one provider answer: three font families and three colors.
// A regeneration replaces it wholesale.
type FontColorSuggestion struct {
	Fonts  Options[string]   `json:"fonts"`
	Colors Options[HexColor] `json:"colors"`
}

// Validate checks the shape: three non-empty fonts and three
// canonical hex colors.
func (s FontColorSuggestion) Validate() error {
	for i, f := range s.Fonts.Values() {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: font %s is empty", ErrMalformedProviderResponse, OptionKeys[i])
		}
	}
	for i, c := range s.Colors.Values() {
		n, ok := colormath.NormalizeHex(string(c))
		if !ok || n != string(c) {
			return fmt.Errorf("%w: color %s %q is not canonical hex", ErrMalformedProviderResponse, OptionKeys[i], c)
		}
	}
	return nil
}

// SelectionState is the user's current font and color choice.
type SelectionState struct {
	FontKey  OptionKey `json:"selectedFontKey"`
	ColorKey OptionKey `json:"selectedColorKey"`
}

// DefaultSelection points at option1 for both, the pair used to seed the
// first logo generation.
func DefaultSelection() SelectionState {
	return SelectionState{FontKey: Option1, ColorKey: Option1}
}

// UsedInLogo reports whether key is the option the initial logos were generated with.
func UsedInLogo(key OptionKey) bool { return key == Option1 }
