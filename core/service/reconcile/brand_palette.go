package reconcile

import (
	"fmt"

	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/pkg/colormath"
)

// PaletteService exposes color scheme derivation to the adapters.
type PaletteService struct{}

var _ in.PaletteService = (*PaletteService)(nil)

// NewPaletteService creates a palette service.
func NewPaletteService() *PaletteService { return &PaletteService{} }

// Scheme derives the full color scheme of hex.
func (p *PaletteService) Scheme(hex string) (colormath.ColorScheme, error) {
	scheme, ok := colormath.DeriveScheme(hex)
	if !ok {
		return colormath.ColorScheme{}, fmt.Errorf("%w: %w: %q", domain.ErrContractViolation, domain.ErrInvalidHexColor, hex)
	}
	return scheme, nil
}
