package llm

import (
	"fmt"
	"strings"

	"brand_server/core/domain"
)

// SuggestionSystemPrompt fixes the output contract of the suggestion call.
const SuggestionSystemPrompt = `You are a brand design expert specializing in typography and color theory. Based on the company profile and values provided, suggest three Google Fonts and three brand colors that best represent the brand's identity.

IMPORTANT:
1. Only suggest fonts that are available on Google Fonts (https://fonts.google.com/)
2. The three fonts must be distinct families
3. The three colors must be distinct, standalone colors that reflect the brand's personality
4. Return ONLY a JSON object in exactly this shape, with no prose and no Markdown:

{
  "fonts": {"option1": "Font name", "option2": "Font name", "option3": "Font name"},
  "colors": {"option1": "6-digit hex", "option2": "6-digit hex", "option3": "6-digit hex"}
}

Example response:
{
  "fonts": {"option1": "Montserrat", "option2": "Open Sans", "option3": "Playfair Display"},
  "colors": {"option1": "2E3192", "option2": "F15A24", "option3": "00A99D"}
}

Colors are 6-digit hex codes without the # symbol. Option 1 is your strongest recommendation.`

// TextLogoSystemPrompt asks for a typography-only logo.
const TextLogoSystemPrompt = `you are a vector logo designer that creates simple and minimal logos and designs based on the user's business.

- do not use paths
- do not use polygons
- do not try to make art
- focus on typography
- only respond with the <svg></svg> markup, or with the <text></text> elements alone
- use a transparent background and a 512x512 viewBox
- center the text and size it to about 90% of the canvas width
- experiment with the text rendering for unique designs`

// VectorLogoSystemPrompt asks for an icon built from path geometry.
const VectorLogoSystemPrompt = `you are a vector logo designer that creates simple and minimal logo marks based on the user's business.

- respond only with one <svg></svg> document
- use viewBox="0 0 512 512" and a transparent background
- draw the mark with <path> elements only
- do not use <text> elements
- keep the mark centered and sized to about 90% of the canvas
- use a single color`

// BuildSuggestionPrompt renders the user turn of the suggestion call.
func BuildSuggestionPrompt(facts domain.BrandInputFacts) string {
	var sb strings.Builder
	sb.WriteString("Generate font and color combinations for this company:\n")
	writeFacts(&sb, facts)
	sb.WriteString("\nRemember to:\n")
	sb.WriteString("1. ONLY suggest fonts available on Google Fonts\n")
	sb.WriteString("2. Return exactly three fonts and exactly three colors\n")
	sb.WriteString("3. Return the response in the exact JSON format specified")
	return sb.String()
}

// BuildLogoBrief renders the brief shared by every slot of one fan-out round.
func BuildLogoBrief(facts domain.BrandInputFacts, font string, color domain.HexColor) string {
	var sb strings.Builder
	sb.WriteString("Create a minimal logo for a company with the following details:\n")
	writeFacts(&sb, facts)
	fmt.Fprintf(&sb, "Primary Font: %s\n", font)
	fmt.Fprintf(&sb, "Primary Color: %s\n", color.CSS())
	sb.WriteString("\nThe logo should be simple, memorable, and reflect the company's identity.")
	return sb.String()
}

// VariantInstruction is appended to the brief for same-family siblings.
func VariantInstruction(variant, total int) string {
	return fmt.Sprintf("\n\nThis is variation %d of %d. Make it unique from other variations.", variant, total)
}

func writeFacts(sb *strings.Builder, f domain.BrandInputFacts) {
	fmt.Fprintf(sb, "Company Name: %s\n", strings.TrimSpace(f.CompanyName))
	fmt.Fprintf(sb, "Type: %s\n", strings.TrimSpace(string(f.ProductType)))
	fmt.Fprintf(sb, "Profile: %s\n", strings.TrimSpace(f.CompanyProfile))
	fmt.Fprintf(sb, "Values: %s\n", f.ValuesList())
	fmt.Fprintf(sb, "Target Customers: %s\n", strings.TrimSpace(f.Customers))
}
