package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFacts() BrandInputFacts {
	return BrandInputFacts{
		CompanyName:    "Acme",
		ProductType:    ProductTypeSaaS,
		CompanyProfile: "Rocket supplies",
		ProductValues:  []string{" Trust", "Quality "},
		Customers:      "Coyotes",
	}
}

func TestBrandInputFacts_Validate(t *testing.T) {
	require.NoError(t, validFacts().Validate())

	tests := []struct {
		name   string
		mutate func(*BrandInputFacts)
	}{
		{"empty name", func(f *BrandInputFacts) { f.CompanyName = "  " }},
		{"no values", func(f *BrandInputFacts) { f.ProductValues = nil }},
		{"too many values", func(f *BrandInputFacts) { f.ProductValues = []string{"a", "b", "c", "d", "e", "f"} }},
		{"blank value", func(f *BrandInputFacts) { f.ProductValues = []string{"a", " "} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFacts()
			tt.mutate(&f)
			assert.ErrorIs(t, f.Validate(), ErrContractViolation)
		})
	}
}

func TestBrandInputFacts_FreeTextProductType(t *testing.T) {
	f := validFacts()
	f.ProductType = "Marketplace"
	assert.NoError(t, f.Validate())
}

func TestValuesList(t *testing.T) {
	assert.Equal(t, "Trust, Quality", validFacts().ValuesList())
}

func TestParseOptionKey(t *testing.T) {
	k, err := ParseOptionKey(" option2 ")
	require.NoError(t, err)
	assert.Equal(t, Option2, k)

	_, err = ParseOptionKey("option4")
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1A2B3C")
	require.NoError(t, err)
	assert.Equal(t, HexColor("1a2b3c"), c)
	assert.Equal(t, "#1a2b3c", c.CSS())

	_, err = ParseHexColor("#fff")
	assert.ErrorIs(t, err, ErrInvalidHexColor)
}

func TestFontColorSuggestion_Validate(t *testing.T) {
	s := FontColorSuggestion{
		Fonts:  Options[string]{Option1: "Inter", Option2: "Lora", Option3: "Roboto"},
		Colors: Options[HexColor]{Option1: "111111", Option2: "222222", Option3: "333333"},
	}
	require.NoError(t, s.Validate())
	assert.Equal(t, "Lora", s.Fonts.Get(Option2))
	assert.Equal(t, HexColor("333333"), s.Colors.Get(Option3))

	bad := s
	bad.Colors.Option2 = "ABCDEF"
	assert.ErrorIs(t, bad.Validate(), ErrMalformedProviderResponse)

	bad = s
	bad.Fonts.Option3 = ""
	assert.ErrorIs(t, bad.Validate(), ErrMalformedProviderResponse)
}

func TestSelection(t *testing.T) {
	sel := DefaultSelection()
	assert.Equal(t, Option1, sel.FontKey)
	assert.Equal(t, Option1, sel.ColorKey)
	assert.True(t, UsedInLogo(Option1))
	assert.False(t, UsedInLogo(Option3))
}

func TestLogoBundle(t *testing.T) {
	a, c := "<svg>a</svg>", "<svg>c</svg>"
	b := LogoBundle{Slots: []LogoSlot{
		{Name: "anthropic", Role: SlotRolePrimary, Family: LogoFamilyText},
		{Name: "mistral-1", Role: SlotRoleVariant, Family: LogoFamilyVector, SVG: &a},
		{Name: "mistral-2", Role: SlotRoleVariant, Family: LogoFamilyVector},
		{Name: "mistral-3", Role: SlotRoleVariant, Family: LogoFamilyVector, SVG: &c},
	}}

	assert.Nil(t, b.Primary())
	assert.Equal(t, []*string{&a, nil, &c}, b.Variants())
	assert.Equal(t, 2, b.Populated())

	first, ok := b.FirstPopulated()
	require.True(t, ok)
	assert.Equal(t, "mistral-1", first.Name)

	_, ok = b.Slot("mistral-9")
	assert.False(t, ok)
}

func TestBrandState(t *testing.T) {
	s := NewBrandState(validFacts(), FontColorSuggestion{
		Fonts:  Options[string]{Option1: "Inter", Option2: "Lora", Option3: "Roboto"},
		Colors: Options[HexColor]{Option1: "111111", Option2: "222222", Option3: "333333"},
	})
	assert.Equal(t, DefaultSelection(), s.Selection)
	assert.Equal(t, "Inter", s.SelectedFont())

	require.NoError(t, s.Select("option3", "option2"))
	assert.Equal(t, "Roboto", s.SelectedFont())
	assert.Equal(t, HexColor("222222"), s.SelectedColor())
	assert.ErrorIs(t, s.Select("option0", "option1"), ErrContractViolation)

	_, ok := s.ActiveLogo()
	assert.False(t, ok)
	assert.ErrorIs(t, s.SelectSlot("anthropic"), ErrContractViolation)

	svg := "<svg/>"
	s.SetBundle(&LogoBundle{Slots: []LogoSlot{
		{Name: "anthropic", Role: SlotRolePrimary, SVG: &svg},
		{Name: "mistral-1", Role: SlotRoleVariant},
	}})
	assert.Equal(t, "anthropic", s.ActiveSlot)
	assert.ErrorIs(t, s.SelectSlot("mistral-1"), ErrContractViolation)

	logo, ok := s.ActiveLogo()
	require.True(t, ok)
	assert.Equal(t, svg, logo)
}

func TestBrandKit(t *testing.T) {
	assert.Equal(t, "acme-rockets", Slug("  Acme Rockets! "))
	assert.Equal(t, "brand", Slug("!!!"))

	kit := BrandKit{CompanyName: "Acme Rockets", Font: "Inter", Color: "112233", Logo: "<svg/>"}
	assert.Equal(t, "acme-rockets-logo.svg", kit.FileName(ExportFormatSVG))
	assert.True(t, strings.HasSuffix(kit.FileName(ExportFormatPDF), "-brand.pdf"))

	f, err := ParseExportFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())

	_, err = ParseExportFormat("pptx")
	assert.ErrorIs(t, err, ErrContractViolation)
}
