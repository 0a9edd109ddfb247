package domain

import "fmt"

// BrandState is the explicit per-session state the preview and export
// surfaces derive from. It replaces ambient UI state.
type BrandState struct {
	Facts      BrandInputFacts     `json:"facts"`
	Suggestion FontColorSuggestion `json:"suggestion"`
	Bundle     *LogoBundle         `json:"bundle,omitempty"`
	Selection  SelectionState      `json:"selection"`
	ActiveSlot string              `json:"activeSlot,omitempty"`
}

// NewBrandState starts a state from a fresh suggestion. The selection is
// reset to option1/option1 every time.
func NewBrandState(facts BrandInputFacts, suggestion FontColorSuggestion) *BrandState {
	return &BrandState{
		Facts:      facts,
		Suggestion: suggestion,
		Selection:  DefaultSelection(),
	}
}

// SetBundle replaces the logo bundle wholesale and activates its first
// populated slot.
func (s *BrandState) SetBundle(b *LogoBundle) {
	s.Bundle = b
	s.ActiveSlot = ""
	if b == nil {
		return
	}
	if slot, ok := b.FirstPopulated(); ok {
		s.ActiveSlot = slot.Name
	}
}

// Select changes the selected font and color options.
func (s *BrandState) Select(fontKey, colorKey string) error {
	f, err := ParseOptionKey(fontKey)
	if err != nil {
		return err
	}
	c, err := ParseOptionKey(colorKey)
	if err != nil {
		return err
	}
	s.Selection = SelectionState{FontKey: f, ColorKey: c}
	return nil
}

// SelectSlot makes a populated slot the one being previewed.
func (s *BrandState) SelectSlot(name string) error {
	if s.Bundle == nil {
		return fmt.Errorf("%w: no logo bundle", ErrContractViolation)
	}
	slot, ok := s.Bundle.Slot(name)
	if !ok {
		return fmt.Errorf("%w: unknown slot %q", ErrContractViolation, name)
	}
	if !slot.Populated() {
		return fmt.Errorf("%w: slot %q has no logo", ErrContractViolation, name)
	}
	s.ActiveSlot = name
	return nil
}

// SelectedFont returns the font family of the current selection.
func (s *BrandState) SelectedFont() string { return s.Suggestion.Fonts.Get(s.Selection.FontKey) }

// SelectedColor returns the color of the current selection.
func (s *BrandState) SelectedColor() HexColor { return s.Suggestion.Colors.Get(s.Selection.ColorKey) }

// ActiveLogo returns the unreconciled document of the active slot.
func (s *BrandState) ActiveLogo() (string, bool) {
	if s.Bundle == nil || s.ActiveSlot == "" {
		return "", false
	}
	slot, ok := s.Bundle.Slot(s.ActiveSlot)
	if !ok || !slot.Populated() {
		return "", false
	}
	return *slot.SVG, true
}
