package export

import (
	"context"
	"fmt"
	"strings"

	"brand_server/core/domain"
	"brand_server/core/port/in"
)

// SVGRenderer returns the logo retargeted onto the kit's font and color.
type SVGRenderer struct {
	recon in.ReconcileService
}

// NewSVGRenderer creates an SVG renderer.
func NewSVGRenderer(recon in.ReconcileService) *SVGRenderer {
	return &SVGRenderer{recon: recon}
}

func (r *SVGRenderer) Render(_ context.Context, kit domain.BrandKit) ([]byte, error) {
	if strings.TrimSpace(kit.Logo) == "" {
		return nil, fmt.Errorf("%w: svg export needs a logo", domain.ErrContractViolation)
	}
	doc, err := r.recon.Reconcile(kit.Logo, kit.Font, kit.Color)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}
