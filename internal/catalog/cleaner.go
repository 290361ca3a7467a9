package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// noiseWords are material/texture descriptors that carry no product identity.
// They are removed by plain substring replacement, not word-boundary matching:
// the catalog keys were built the same way, so anchoring the removal would
// change which labels land on a catalog entry.
var noiseWords = []string{
	"tapiz",
	"americano",
	"importado",
	"decorativo",
	"textil",
	"sintetico",
	"bondeado",
}

// colorWords are dropped token-by-token after symbol stripping. Spanish and
// English variants, since the POS exports mix both.
var colorWords = map[string]struct{}{
	"negro": {}, "black": {}, "noir": {},
	"azul": {}, "blue": {},
	"rojo": {}, "red": {},
	"gris": {}, "grey": {}, "gray": {},
	"blanco": {}, "white": {},
	"cafe": {}, "brown": {}, "marron": {},
	"verde": {}, "green": {},
	"plata": {}, "silver": {},
	"beige":    {},
	"naranja":  {}, "orange": {},
	"rosa":     {}, "pink": {},
	"tabaco":   {},
	"caramelo": {},
	"arena":    {},
	"vino":     {},
	"oscuro":   {}, "dark": {},
	"claro":    {}, "light": {},
}

// Clean converts a raw product label into its comparison key: lowercase,
// noise words removed, anything outside [a-z0-9] and whitespace replaced by a
// space, color tokens dropped, single-space joined. Pure and deterministic;
// an empty input yields an empty key.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(raw)
	for _, w := range noiseWords {
		s = strings.ReplaceAll(s, w, "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	parts := strings.Fields(b.String())
	kept := parts[:0]
	for _, p := range parts {
		if _, drop := colorWords[p]; !drop {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// DisplayClean produces a human-readable Title-Case label: symbols become
// spaces, whitespace collapses, but color and noise words are kept. Used as
// the fallback display form for labels with no catalog match.
func DisplayClean(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return cases.Title(language.Spanish).String(collapsed)
}
