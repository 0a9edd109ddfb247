package http

import (
	"fmt"
	"strings"
	"time"

	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/infra/middleware"

	"github.com/gofiber/fiber/v2"
)

// BrandHandler serves the generation, reconciliation, palette and export endpoints.
type BrandHandler struct {
	suggest  in.SuggestionService
	logos    in.LogoService
	recon    in.ReconcileService
	palette  in.PaletteService
	exporter in.ExportService

	suggestProvider string
}

func NewBrandHandler(
	suggest in.SuggestionService,
	logos in.LogoService,
	recon in.ReconcileService,
	palette in.PaletteService,
	exporter in.ExportService,
	suggestProvider string,
) *BrandHandler {
	return &BrandHandler{
		suggest:         suggest,
		logos:           logos,
		recon:           recon,
		palette:         palette,
		exporter:        exporter,
		suggestProvider: suggestProvider,
	}
}

// MaxDocumentBytes bounds request bodies that carry a logo document.
const MaxDocumentBytes = 2 << 20

// Register mounts the versioned routes. generate guards the two endpoints
// that call providers; it may be nil.
func (h *BrandHandler) Register(app *fiber.App, generate fiber.Handler) {
	api := app.Group("/api/v1", middleware.RequireJSON())

	h.mountGenerate(api, "/suggestions", h.Suggest, generate)
	h.mountGenerate(api, "/logos", h.GenerateLogos, generate)
	api.Post("/logos/reconcile", middleware.MaxBodySize(MaxDocumentBytes), h.Reconcile)
	api.Get("/palette/:hex", middleware.PublicCache(24*time.Hour), middleware.ETag(), h.Palette)
	api.Post("/exports/:format", middleware.MaxBodySize(MaxDocumentBytes), h.Export)
}

// RegisterLegacy mounts the unversioned routes older clients call.
func (h *BrandHandler) RegisterLegacy(app *fiber.App, generate fiber.Handler) {
	legacy := app.Group("/api", middleware.RequireJSON())
	h.mountGenerate(legacy, "/fonts", h.Suggest, generate)
	h.mountGenerate(legacy, "/logo", h.GenerateLogos, generate)
}

func (h *BrandHandler) mountGenerate(r fiber.Router, path string, handler, guard fiber.Handler) {
	if guard != nil {
		r.Post(path, guard, middleware.NoCache(), handler)
		return
	}
	r.Post(path, middleware.NoCache(), handler)
}

// =============================================================================
// Suggestions
// =============================================================================

type suggestResponse struct {
	domain.FontColorSuggestion
	GenerationID string `json:"generationId"`
	Provider     string `json:"provider"`
}

// Suggest handles POST /api/v1/suggestions.
func (h *BrandHandler) Suggest(c *fiber.Ctx) error {
	var facts domain.BrandInputFacts
	if err := parseBody(c, &facts); err != nil {
		return err
	}

	res, err := h.suggest.Suggest(c.UserContext(), facts)
	if err != nil {
		return toAppError(err, h.suggestProvider)
	}
	return c.JSON(suggestResponse{
		FontColorSuggestion: res.Suggestion,
		GenerationID:        res.GenerationID,
		Provider:            res.Provider,
	})
}

// =============================================================================
// Logos
// =============================================================================

type logoRequest struct {
	domain.BrandInputFacts
	SelectedFont  string `json:"selectedFont"`
	SelectedColor string `json:"selectedColor"`
}

type logoResponse struct {
	GenerationID  string            `json:"generationId"`
	AnthropicLogo *string           `json:"anthropicLogo"`
	MistralLogos  []*string         `json:"mistralLogos"`
	Slots         []domain.LogoSlot `json:"slots"`
}

// logoErrorResponse keeps the slot keys so clients render the failure like
// an empty bundle.
type logoErrorResponse struct {
	middleware.ErrorResponse
	AnthropicLogo *string   `json:"anthropicLogo"`
	MistralLogos  []*string `json:"mistralLogos"`
}

// GenerateLogos handles POST /api/v1/logos. Provider failures never fail
// the request; absent slots are null.
func (h *BrandHandler) GenerateLogos(c *fiber.Ctx) error {
	var req logoRequest
	if err := parseBody(c, &req); err != nil {
		return h.logoError(c, err)
	}

	bundle, err := h.logos.Generate(c.UserContext(), in.LogoRequest{
		Facts: req.BrandInputFacts,
		Font:  req.SelectedFont,
		Color: domain.HexColor(req.SelectedColor),
	})
	if err != nil {
		return h.logoError(c, toAppError(err, ""))
	}

	variants := bundle.Variants()
	if variants == nil {
		variants = []*string{}
	}
	return c.JSON(logoResponse{
		GenerationID:  bundle.GenerationID,
		AnthropicLogo: bundle.Primary(),
		MistralLogos:  variants,
		Slots:         bundle.Slots,
	})
}

func (h *BrandHandler) logoError(c *fiber.Ctx, err error) error {
	status, body := middleware.NewErrorResponse(c, err)
	return c.Status(status).JSON(logoErrorResponse{
		ErrorResponse: body,
		MistralLogos:  []*string{},
	})
}

// =============================================================================
// Reconcile
// =============================================================================

// reconcileRequest names the target either directly (font, color) or as a
// selection over a suggestion.
type reconcileRequest struct {
	SVG        string                      `json:"svg"`
	Font       string                      `json:"font"`
	Color      string                      `json:"color"`
	Suggestion *domain.FontColorSuggestion `json:"suggestion,omitempty"`
	Selection  *domain.SelectionState      `json:"selection,omitempty"`
}

type reconcileResponse struct {
	SVG   string          `json:"svg"`
	Font  string          `json:"font"`
	Color domain.HexColor `json:"color"`
}

// Reconcile handles POST /api/v1/logos/reconcile.
func (h *BrandHandler) Reconcile(c *fiber.Ctx) error {
	var req reconcileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	font, color := req.Font, domain.HexColor(req.Color)
	if req.Suggestion != nil {
		state := domain.NewBrandState(domain.BrandInputFacts{}, *req.Suggestion)
		if req.Selection != nil {
			if err := state.Select(string(req.Selection.FontKey), string(req.Selection.ColorKey)); err != nil {
				return toAppError(err, "")
			}
		}
		font, color = state.SelectedFont(), state.SelectedColor()
	}

	svg, err := h.recon.Reconcile(req.SVG, font, color)
	if err != nil {
		return toAppError(err, "")
	}
	normalized, _ := domain.ParseHexColor(string(color))
	return c.JSON(reconcileResponse{SVG: svg, Font: strings.TrimSpace(font), Color: normalized})
}

// =============================================================================
// Palette
// =============================================================================

// Palette handles GET /api/v1/palette/:hex.
func (h *BrandHandler) Palette(c *fiber.Ctx) error {
	scheme, err := h.palette.Scheme(c.Params("hex"))
	if err != nil {
		return toAppError(err, "")
	}
	return c.JSON(scheme)
}

// =============================================================================
// Export
// =============================================================================

// Export handles POST /api/v1/exports/:format and streams the artifact.
func (h *BrandHandler) Export(c *fiber.Ctx) error {
	format, err := domain.ParseExportFormat(c.Params("format"))
	if err != nil {
		return toAppError(err, "")
	}
	var kit domain.BrandKit
	if err := parseBody(c, &kit); err != nil {
		return err
	}

	artifact, err := h.exporter.Export(c.UserContext(), kit, format)
	if err != nil {
		return toAppError(err, "")
	}

	cache := "MISS"
	if artifact.Cached {
		cache = "HIT"
	}
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	c.Set("X-Cache", cache)
	return c.Send(artifact.Data)
}
