package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brand_server/core/domain"
)

var acme = domain.BrandInputFacts{
	CompanyName:    "Acme",
	ProductType:    domain.ProductTypeSaaS,
	CompanyProfile: "Billing for small teams",
	ProductValues:  []string{"Trust", " Quality "},
	Customers:      "Freelancers",
}

func TestBuildSuggestionPrompt(t *testing.T) {
	p := BuildSuggestionPrompt(acme)
	assert.Contains(t, p, "Company Name: Acme")
	assert.Contains(t, p, "Type: SaaS")
	assert.Contains(t, p, "Values: Trust, Quality")
	assert.Contains(t, p, "Target Customers: Freelancers")
	// identical input renders an identical prompt
	assert.Equal(t, p, BuildSuggestionPrompt(acme))
}

func TestBuildLogoBrief(t *testing.T) {
	b := BuildLogoBrief(acme, "Inter", "2e3192")
	assert.Contains(t, b, "Primary Font: Inter")
	assert.Contains(t, b, "Primary Color: #2e3192")
	assert.Contains(t, b, "Profile: Billing for small teams")
}

func TestVariantInstruction(t *testing.T) {
	assert.Equal(t,
		"\n\nThis is variation 2 of 3. Make it unique from other variations.",
		VariantInstruction(2, 3))
}
