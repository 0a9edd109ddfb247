package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/pkg/colormath"
)

// PDFRenderer lays out a one-page brand guideline.
type PDFRenderer struct {
	recon in.ReconcileService
}

// NewPDFRenderer creates a PDF renderer. recon retargets the logo before it
// is drawn.
func NewPDFRenderer(recon in.ReconcileService) *PDFRenderer {
	return &PDFRenderer{recon: recon}
}

func (r *PDFRenderer) Render(_ context.Context, kit domain.BrandKit) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(kit.CompanyName+" brand guideline", true)
	pdf.SetAuthor("brand_server", true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	br, bg, bb := rgb(string(kit.Color))
	pdf.SetFillColor(br, bg, bb)
	pdf.Rect(0, 0, 210, 40, "F")

	fr, fg, fb := rgb(colormath.ReadableOn(string(kit.Color)))
	pdf.SetTextColor(fr, fg, fb)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetXY(15, 14)
	pdf.CellFormat(180, 12, tr(kit.CompanyName), "", 1, "L", false, 0, "")

	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(15, 50)

	r.drawLogo(pdf, kit)

	section(pdf, "Typography")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr("Primary typeface: "+kit.Font), "", 1, "L", false, 0, "")
	if alts := alternates(kit.Fonts.Values(), kit.Font); len(alts) > 0 {
		pdf.CellFormat(0, 7, tr("Alternates: "+strings.Join(alts, ", ")), "", 1, "L", false, 0, "")
	}
	if len(kit.Values) > 0 {
		pdf.CellFormat(0, 7, tr("Values: "+strings.Join(kit.Values, ", ")), "", 1, "L", false, 0, "")
	}

	section(pdf, "Palette")
	palette := make([]string, 0, 4)
	for _, c := range kit.Palette() {
		palette = append(palette, string(c))
	}
	swatchRow(pdf, palette, 30, true)

	section(pdf, "Color schemes")
	for _, name := range []string{colormath.SchemeComplementary, colormath.SchemeAnalogous, colormath.SchemeTriadic} {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(40, 14, name, "", 0, "L", false, 0, "")
		swatchRow(pdf, kit.Scheme.Named()[name], 14, false)
	}

	section(pdf, "Tonal scale")
	swatchRow(pdf, kit.Scheme.Tonal[:], 14, false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo strokes the logo's path outlines in the brand color. Text-only
// logos have no paths and are skipped, as are documents the basic SVG parser
// rejects.
func (r *PDFRenderer) drawLogo(pdf *fpdf.Fpdf, kit domain.BrandKit) {
	if strings.TrimSpace(kit.Logo) == "" || r.recon == nil {
		return
	}
	doc, err := r.recon.Reconcile(kit.Logo, kit.Font, kit.Color)
	if err != nil {
		return
	}
	sig, err := fpdf.SVGBasicParse([]byte(doc))
	if err != nil || len(sig.Segments) == 0 {
		return
	}
	width := sig.Wd
	if width <= 0 {
		width = domain.DefaultViewport
	}

	const boxMM = 50.0
	x, y := pdf.GetXY()
	scale := boxMM / width
	cr, cg, cb := rgb(string(kit.Color))
	pdf.SetDrawColor(cr, cg, cb)
	pdf.SetLineWidth(0.6)
	pdf.SetXY(x, y)
	pdf.SVGBasicWrite(&sig, scale)
	pdf.SetXY(x, y+boxMM+6)
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func swatchRow(pdf *fpdf.Fpdf, colors []string, size float64, label bool) {
	x, y := pdf.GetXY()
	for i, c := range colors {
		cr, cg, cb := rgb(c)
		pdf.SetFillColor(cr, cg, cb)
		cx := x + float64(i)*(size+3)
		pdf.Rect(cx, y, size, size, "F")
		if label {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetXY(cx, y+size+1)
			pdf.CellFormat(size, 4, "#"+c, "", 0, "C", false, 0, "")
		}
	}
	next := y + size + 4
	if label {
		next += 5
	}
	pdf.SetXY(15, next)
}

func rgb(hex string) (int, int, int) {
	c, ok := colormath.HexToRGB(hex)
	if !ok {
		return 0, 0, 0
	}
	return int(c.R), int(c.G), int(c.B)
}

func alternates(fonts []string, selected string) []string {
	var alts []string
	for _, f := range fonts {
		if f != "" && f != selected {
			alts = append(alts, f)
		}
	}
	return alts
}
