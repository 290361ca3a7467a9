package catalog

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// RentalProduct is the single identity every rental-fee line item collapses
// to, regardless of sub-variant wording.
const RentalProduct = "ARRENDAMIENTO"

// DefaultFuzzyThreshold is the inclusive minimum similarity (0-100) for a
// fuzzy catalog match.
const DefaultFuzzyThreshold = 85

// Matcher maps raw product labels onto the canonical catalog. The catalog is
// pre-cleaned once; Resolve runs exact-then-fuzzy matching against the
// cleaned keys.
type Matcher struct {
	index     map[string]string // cleaned key -> canonical name
	keys      []string          // cleaned keys, catalog declaration order
	threshold int
}

// NewMatcher indexes the canonical list by cleaned key. When two canonical
// names clean to the same key the later one wins, but the key keeps its
// first-seen position so tie-breaking stays in declaration order.
func NewMatcher(canonical []string) *Matcher {
	m := &Matcher{
		index:     make(map[string]string, len(canonical)),
		keys:      make([]string, 0, len(canonical)),
		threshold: DefaultFuzzyThreshold,
	}
	for _, name := range canonical {
		key := Clean(name)
		if key == "" {
			continue
		}
		if _, seen := m.index[key]; !seen {
			m.keys = append(m.keys, key)
		}
		m.index[key] = name
	}
	return m
}

// Resolve maps one raw label to a canonical name, or to its cleaned display
// form when nothing in the catalog scores at or above the threshold. An
// unmatched product is not an error; it stays visible under the fallback name.
func (m *Matcher) Resolve(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.Contains(strings.ToUpper(raw), RentalProduct) {
		return RentalProduct
	}
	cleaned := Clean(raw)
	if name, ok := m.index[cleaned]; ok {
		return name
	}
	if key, score := m.closest(cleaned); score >= m.threshold {
		return m.index[key]
	}
	return DisplayClean(raw)
}

// BuildMapping resolves each distinct label exactly once. Datasets carry tens
// of thousands of rows but only hundreds of distinct labels, so matching is
// done per label, never per row.
func (m *Matcher) BuildMapping(labels []string) map[string]string {
	mapping := make(map[string]string, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, done := mapping[label]; done {
			continue
		}
		mapping[label] = m.Resolve(label)
	}
	return mapping
}

// closest returns the best-scoring catalog key. The first key reaching the
// maximum score wins, so results are stable across runs for ambiguous inputs.
func (m *Matcher) closest(cleaned string) (string, int) {
	if cleaned == "" {
		return "", 0
	}
	src := []rune(cleaned)
	bestKey, bestScore := "", -1
	for _, key := range m.keys {
		if score := similarity(src, []rune(key)); score > bestScore {
			bestKey, bestScore = key, score
		}
	}
	return bestKey, bestScore
}

// similarity is an edit-distance ratio on a 0-100 scale.
func similarity(a, b []rune) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	return int(levenshtein.RatioForStrings(a, b, levenshtein.DefaultOptions) * 100)
}
