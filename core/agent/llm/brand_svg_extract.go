package llm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"brand_server/core/domain"
)

var (
	fencePattern   = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*\\s*\\n?(.*?)\\n?```$")
	// First <svg to last </svg>, so nested documents stay whole.
	svgPattern     = regexp.MustCompile(`(?is)<svg\b.*</svg\s*>`)
	textRunPattern = regexp.MustCompile(`(?is)<text\b.*?</text\s*>`)
)

// StripFence removes surrounding whitespace and at most one Markdown code fence.
// It is transport framing, not content repair.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ExtractSVG pulls the logo document out of a provider reply.
// A full <svg> element wins; otherwise bare <text> runs are wrapped into a
// transparent square root and prose between them is dropped. The result must
// be well-formed XML with an <svg> root; anything else is
// domain.ErrMalformedProviderResponse.
func ExtractSVG(raw string) (string, error) {
	s := StripFence(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrMalformedProviderResponse)
	}
	if m := svgPattern.FindString(s); m != "" {
		return wellFormed(m)
	}
	if runs := textRunPattern.FindAllString(s, -1); len(runs) > 0 {
		return wellFormed(WrapTextRuns(strings.Join(runs, "")))
	}
	return "", fmt.Errorf("%w: no <svg> or <text> content", domain.ErrMalformedProviderResponse)
}

func wellFormed(doc string) (string, error) {
	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedProviderResponse, err)
	}
	if root := d.Root(); root == nil || root.Tag != "svg" {
		return "", fmt.Errorf("%w: root element is not <svg>", domain.ErrMalformedProviderResponse)
	}
	return doc, nil
}

// WrapTextRuns puts bare <text> elements inside a DefaultViewport square root.
func WrapTextRuns(runs string) string {
	n := domain.DefaultViewport
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">%s</svg>`,
		n, n, n, n, runs)
}
