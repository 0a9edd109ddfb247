// Package reconcile retargets generated logo documents onto the selected
// font and color.
package reconcile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"

	"brand_server/core/domain"
	"brand_server/core/port/in"
)

// Line wrapping of long text nodes.
const (
	WrapThreshold = 18
	LineBudget    = 14
	LineAdvanceEm = 1.2
)

// FontFallback is appended to every font-family the reconciler writes.
const FontFallback = "sans-serif"

// shapeTags are the path-bearing elements that get the monochrome re-tint.
var shapeTags = map[string]bool{
	"path":     true,
	"circle":   true,
	"ellipse":  true,
	"rect":     true,
	"polygon":  true,
	"polyline": true,
	"line":     true,
}

// paintContainers pass fill and stroke down to their children, so their own
// paint follows the same re-tint rule as shapes.
var paintContainers = map[string]bool{
	"svg":    true,
	"g":      true,
	"symbol": true,
	"use":    true,
}

// Service is stateless and safe for concurrent use.
type Service struct{}

var _ in.ReconcileService = (*Service)(nil)

// NewService creates a reconciler.
func NewService() *Service { return &Service{} }

// Reconcile parses doc, retargets text and shape styling onto font and
// color, and serializes the result. Geometry is left alone. Applying the same
// font and color to the output again yields the same output.
func (s *Service) Reconcile(doc, font string, color domain.HexColor) (string, error) {
	font = strings.TrimSpace(font)
	if font == "" {
		return "", fmt.Errorf("%w: font is required", domain.ErrContractViolation)
	}
	hex, err := domain.ParseHexColor(string(color))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrContractViolation, err)
	}

	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return "", fmt.Errorf("%w: logo is not well-formed XML: %v", domain.ErrContractViolation, err)
	}
	root := d.Root()
	if root == nil || root.Tag != "svg" {
		return "", fmt.Errorf("%w: logo has no root <svg> element", domain.ErrContractViolation)
	}

	ensureViewport(root)

	t := retarget{family: fontFamily(font), fill: hex.CSS()}
	walk(root, t.apply)

	out, err := d.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize logo: %w", err)
	}
	return out, nil
}

// CurrentLogo derives the reconciled logo of a brand state: the active slot
// retargeted onto the selected font and color.
func (s *Service) CurrentLogo(state *domain.BrandState) (string, error) {
	if state == nil {
		return "", fmt.Errorf("%w: no brand state", domain.ErrContractViolation)
	}
	doc, ok := state.ActiveLogo()
	if !ok {
		return "", fmt.Errorf("%w: no populated logo slot", domain.ErrContractViolation)
	}
	return s.Reconcile(doc, state.SelectedFont(), state.SelectedColor())
}

func fontFamily(font string) string {
	return "'" + strings.ReplaceAll(font, "'", "") + "', " + FontFallback
}

// ensureViewport defaults the root to the square canvas only when viewBox,
// width and height are all missing.
func ensureViewport(root *etree.Element) {
	if root.SelectAttr("viewBox") != nil || root.SelectAttr("width") != nil || root.SelectAttr("height") != nil {
		return
	}
	n := strconv.Itoa(domain.DefaultViewport)
	root.CreateAttr("width", n)
	root.CreateAttr("height", n)
	root.CreateAttr("viewBox", "0 0 "+n+" "+n)
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, c := range el.ChildElements() {
		walk(c, fn)
	}
}

type retarget struct {
	family string
	fill   string
}

func (t retarget) apply(el *etree.Element) {
	switch {
	case el.Tag == "text":
		t.text(el)
	case el.Tag == "tspan":
		t.styleText(el)
	case shapeTags[el.Tag], paintContainers[el.Tag]:
		t.paint(el, "fill", "stroke")
	}
}

// styleText always sets font and fill. A visible stroke follows the shape
// rule so outlined wordmarks stay monochrome.
func (t retarget) styleText(el *etree.Element) {
	el.CreateAttr("font-family", t.family)
	el.CreateAttr("fill", t.fill)
	dropStyle(el, "font-family", "fill")
	t.paint(el, "stroke")
}

func (t retarget) text(el *etree.Element) {
	t.styleText(el)
	el.CreateAttr("text-anchor", "middle")
	el.CreateAttr("dominant-baseline", "middle")
	dropStyle(el, "text-anchor", "dominant-baseline")
	wrap(el, t)
}

// paint replaces each of props that is set to a visible paint, in the
// attribute or the inline style.
func (t retarget) paint(el *etree.Element, props ...string) {
	decls := parseStyle(el.SelectAttrValue("style", ""))
	for _, prop := range props {
		v, inStyle := decls.get(prop)
		if !inStyle {
			a := el.SelectAttr(prop)
			if a == nil {
				continue
			}
			v = a.Value
		}
		if !visiblePaint(v) {
			continue
		}
		el.CreateAttr(prop, t.fill)
		if inStyle {
			decls.remove(prop)
		}
	}
	setStyle(el, decls)
}

func visiblePaint(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none", "transparent":
		return false
	}
	return true
}

// wrap splits a long single-run text node into stacked tspans centered on
// the node's own anchor point.
func wrap(el *etree.Element, t retarget) {
	if len(el.ChildElements()) > 0 {
		return
	}
	content := strings.Join(strings.Fields(el.Text()), " ")
	if utf8.RuneCountInString(content) <= WrapThreshold {
		return
	}
	lines := PackLines(content, LineBudget)
	if len(lines) < 2 {
		return
	}

	for _, tok := range append([]etree.Token(nil), el.Child...) {
		if _, ok := tok.(*etree.CharData); ok {
			el.RemoveChild(tok)
		}
	}

	x := el.SelectAttr("x")
	first := -float64(len(lines)-1) * LineAdvanceEm / 2
	for i, line := range lines {
		ts := el.CreateElement("tspan")
		if x != nil {
			ts.CreateAttr("x", x.Value)
		}
		dy := LineAdvanceEm
		if i == 0 {
			dy = first
		}
		ts.CreateAttr("dy", formatEm(dy))
		t.styleText(ts)
		ts.SetText(line)
	}
}

// PackLines greedily packs words into lines of at most budget runes.
// A single word longer than budget gets a line of its own.
func PackLines(s string, budget int) []string {
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(s) {
		switch {
		case cur.Len() == 0:
			cur.WriteString(w)
		case utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(w) <= budget:
			cur.WriteByte(' ')
			cur.WriteString(w)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func formatEm(v float64) string {
	if v == 0 {
		return "0em"
	}
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64) + "em"
}
