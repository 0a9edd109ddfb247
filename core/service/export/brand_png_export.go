package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"brand_server/core/domain"
	"brand_server/pkg/colormath"
)

// Brand sheet geometry, in pixels.
const (
	sheetWidth  = 1200
	sheetHeight = 800
	sheetMargin = 60
	swatchSize  = 180
	chipSize    = 56
)

var (
	fontsOnce sync.Once
	fontsErr  error
	fontBold  *truetype.Font
	fontBody  *truetype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if fontBold, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			return
		}
		fontBody, fontsErr = truetype.Parse(goregular.TTF)
	})
	return fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
}

// PNGRenderer draws a brand sheet: name, typography, palette swatches,
// scheme rows and the tonal strip. Web fonts are not fetched; the sheet is
// set in Go fonts and names the chosen family.
type PNGRenderer struct{}

// NewPNGRenderer creates a PNG renderer.
func NewPNGRenderer() *PNGRenderer { return &PNGRenderer{} }

func (r *PNGRenderer) Render(_ context.Context, kit domain.BrandKit) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	dc := gg.NewContext(sheetWidth, sheetHeight)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	// Header band in the brand color.
	dc.SetHexColor(kit.Color.CSS())
	dc.DrawRectangle(0, 0, sheetWidth, 160)
	dc.Fill()

	dc.SetFontFace(face(fontBold, 56))
	dc.SetHexColor("#" + colormath.ReadableOn(string(kit.Color)))
	dc.DrawStringAnchored(kit.CompanyName, sheetMargin, 80, 0, 0.5)

	dc.SetFontFace(face(fontBody, 24))
	dc.SetHexColor("#333333")
	dc.DrawString("Typography: "+kit.Font, sheetMargin, 220)

	// Palette swatches.
	y := 260.0
	for i, c := range kit.Palette() {
		x := float64(sheetMargin + i*(swatchSize+24))
		drawSwatch(dc, x, y, swatchSize, string(c), true)
	}

	// Scheme rows.
	dc.SetFontFace(face(fontBody, 20))
	rowY := y + swatchSize + 40
	for _, name := range []string{colormath.SchemeComplementary, colormath.SchemeAnalogous, colormath.SchemeTriadic} {
		dc.SetHexColor("#333333")
		dc.DrawStringAnchored(name, sheetMargin, rowY+chipSize/2, 0, 0.5)
		for i, c := range kit.Scheme.Named()[name] {
			drawSwatch(dc, float64(sheetMargin+200+i*(chipSize+12)), rowY, chipSize, c, false)
		}
		rowY += chipSize + 16
	}

	// Tonal strip across the bottom.
	stripW := float64(sheetWidth-2*sheetMargin) / float64(len(kit.Scheme.Tonal))
	for i, c := range kit.Scheme.Tonal {
		dc.SetHexColor("#" + c)
		dc.DrawRectangle(sheetMargin+float64(i)*stripW, sheetHeight-sheetMargin-50, stripW, 50)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSwatch(dc *gg.Context, x, y, size float64, hex string, label bool) {
	dc.SetHexColor("#" + hex)
	dc.DrawRoundedRectangle(x, y, size, size, 12)
	dc.Fill()
	if !label {
		return
	}
	dc.SetHexColor("#" + colormath.ReadableOn(hex))
	dc.DrawStringAnchored("#"+hex, x+size/2, y+size/2, 0.5, 0.5)
}
