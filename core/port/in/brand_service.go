package in

import (
	"context"

	"brand_server/core/domain"
	"brand_server/pkg/colormath"
)

// SuggestionService produces font and color options for a brand.
type SuggestionService interface {
	Suggest(ctx context.Context, facts domain.BrandInputFacts) (*SuggestionResult, error)
}

// SuggestionResult is one suggestion plus its correlation ID.
type SuggestionResult struct {
	GenerationID string                     `json:"generationId"`
	Provider     string                     `json:"provider"`
	Suggestion   domain.FontColorSuggestion `json:"suggestion"`
}

// LogoService fans out to every configured logo provider.
// It never fails because of provider errors; absent slots carry the reason.
type LogoService interface {
	Generate(ctx context.Context, req LogoRequest) (*domain.LogoBundle, error)
}

// LogoRequest seeds one fan-out round.
type LogoRequest struct {
	Facts domain.BrandInputFacts
	Font  string
	Color domain.HexColor
}

// ReconcileService retargets a logo document onto a font and color.
type ReconcileService interface {
	Reconcile(svg, font string, color domain.HexColor) (string, error)
}

// PaletteService derives color relationships.
type PaletteService interface {
	Scheme(hex string) (colormath.ColorScheme, error)
}

// ExportService renders downloadable artifacts.
type ExportService interface {
	Export(ctx context.Context, kit domain.BrandKit, format domain.ExportFormat) (*ExportArtifact, error)
}

// ExportArtifact is a rendered file.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Data        []byte
	Cached      bool
}
