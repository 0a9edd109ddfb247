package domain

import (
	"fmt"
	"strings"
	"unicode"

	"brand_server/pkg/colormath"
)

// ExportFormat is the artifact type produced by an export adapter.
type ExportFormat string

const (
	ExportFormatSVG ExportFormat = "svg"
	ExportFormatPNG ExportFormat = "png"
	ExportFormatPDF ExportFormat = "pdf"
)

// ParseExportFormat accepts svg, png or pdf, case-insensitive.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportFormatSVG, ExportFormatPNG, ExportFormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", ErrContractViolation, s)
}

// ContentType is the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatSVG:
		return "image/svg+xml"
	case ExportFormatPNG:
		return "image/png"
	case ExportFormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// BrandKit is the reconciled brand model handed to exporters.
type BrandKit struct {
	CompanyName string                `json:"companyName"`
	Font        string                `json:"font"`
	Color       HexColor              `json:"color"`
	Logo        string                `json:"logo,omitempty"` // reconciled SVG markup
	Fonts       Options[string]       `json:"fonts"`
	Colors      Options[HexColor]     `json:"colors"`
	Values      []string              `json:"values,omitempty"`
	Scheme      colormath.ColorScheme `json:"scheme"`
}

// Validate checks the fields every exporter relies on.
func (k BrandKit) Validate() error {
	if strings.TrimSpace(k.CompanyName) == "" {
		return fmt.Errorf("%w: companyName is required", ErrContractViolation)
	}
	if strings.TrimSpace(k.Font) == "" {
		return fmt.Errorf("%w: font is required", ErrContractViolation)
	}
	if _, ok := colormath.NormalizeHex(string(k.Color)); !ok {
		return fmt.Errorf("%w: color %q", ErrInvalidHexColor, k.Color)
	}
	return nil
}

// Palette returns the selected color followed by the remaining suggested colors.
func (k BrandKit) Palette() []HexColor {
	palette := []HexColor{k.Color}
	for _, c := range k.Colors.Values() {
		if c != "" && c != k.Color {
			palette = append(palette, c)
		}
	}
	return palette
}

// FileName is the download name, e.g. "acme-logo.svg".
func (k BrandKit) FileName(format ExportFormat) string {
	suffix := "-brand"
	if format == ExportFormatSVG {
		suffix = "-logo"
	}
	return Slug(k.CompanyName) + suffix + "." + string(format)
}

// Slug lowercases name and collapses everything that is not a letter or digit into '-'.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "brand"
	}
	return s
}
