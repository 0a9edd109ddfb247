package reconcile

import (
	"strings"

	"github.com/beevik/etree"
)

type declaration struct {
	prop  string
	value string
}

// styleDecls is an inline style attribute, order preserved.
type styleDecls []declaration

func parseStyle(s string) styleDecls {
	var decls styleDecls
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

// get returns the last value declared for prop, as CSS does.
func (d styleDecls) get(prop string) (string, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].prop == prop {
			return d[i].value, true
		}
	}
	return "", false
}

func (d *styleDecls) remove(props ...string) bool {
	kept := (*d)[:0]
	removed := false
	for _, decl := range *d {
		drop := false
		for _, p := range props {
			if decl.prop == p {
				drop = true
				break
			}
		}
		if drop {
			removed = true
			continue
		}
		kept = append(kept, decl)
	}
	*d = kept
	return removed
}

func (d styleDecls) String() string {
	parts := make([]string, len(d))
	for i, decl := range d {
		parts[i] = decl.prop + ":" + decl.value
	}
	return strings.Join(parts, ";")
}

// setStyle writes decls back, dropping the attribute when nothing is left.
// An untouched style attribute keeps its original formatting.
func setStyle(el *etree.Element, decls styleDecls) {
	attr := el.SelectAttr("style")
	if attr == nil {
		return
	}
	if len(decls) == 0 {
		el.RemoveAttr("style")
		return
	}
	if len(parseStyle(attr.Value)) == len(decls) {
		return
	}
	el.CreateAttr("style", decls.String())
}

// dropStyle removes props from el's inline style.
func dropStyle(el *etree.Element, props ...string) {
	attr := el.SelectAttr("style")
	if attr == nil {
		return
	}
	decls := parseStyle(attr.Value)
	if !decls.remove(props...) {
		return
	}
	setStyle(el, decls)
}
