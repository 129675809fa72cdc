// Package normalizer maps loose user phrasing — "opción 3", "número tres",
// a fragment of the document name — to a canonical catalog entry name.
//
// Unlike the resolver this is deliberately first-match-wins with no scoring:
// ordinal references inside a listed class are assumed unambiguous. Matching
// runs in three priority passes, each iterating the class records in catalog
// order: exact or token-contained ordinal, spelled-ordinal and synonym
// keywords, then substring containment of the canonical name.
package normalizer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/publilab/munbot/internal/catalog"
	"github.com/publilab/munbot/internal/domain"
)

// spelledNumbers covers the ordinal words users type instead of digits.
var spelledNumbers = map[int][]string{
	1: {"uno", "una"}, 2: {"dos"}, 3: {"tres"}, 4: {"cuatro"},
	5: {"cinco"}, 6: {"seis"}, 7: {"siete"}, 8: {"ocho"},
	9: {"nueve"}, 10: {"diez"}, 11: {"once"}, 12: {"doce"},
	13: {"trece"}, 14: {"catorce"}, 15: {"quince"}, 16: {"dieciséis", "dieciseis"},
}

// Normalizer resolves loose document references against a class listing.
type Normalizer struct {
	rules catalog.Rules
}

// New creates a normalizer with the per-record synonym table.
func New(rules catalog.Rules) *Normalizer {
	return &Normalizer{rules: rules}
}

// Normalize maps rawInput to the canonical name of one of recordsOfClass.
// Returns the name and true on a match, or "" and false when unresolved.
func (n *Normalizer) Normalize(rawInput string, recordsOfClass []domain.Record) (string, bool) {
	input := strings.ToLower(strings.TrimSpace(rawInput))
	if input == "" {
		return "", false
	}
	tokens := splitTokens(input)

	// Pass 1: ordinal reference — the bare number or the number as a token.
	for i := range recordsOfClass {
		rec := &recordsOfClass[i]
		if rec.OrderIndex() == 0 {
			continue
		}
		ord := strconv.Itoa(rec.OrderIndex())
		if input == ord || containsToken(tokens, ord) {
			return rec.Name(), true
		}
	}

	// Pass 2: spelled ordinals and per-record synonym keywords.
	for i := range recordsOfClass {
		rec := &recordsOfClass[i]
		for _, word := range spelledNumbers[rec.OrderIndex()] {
			if containsToken(tokens, word) {
				return rec.Name(), true
			}
		}
		for _, kw := range n.rules.SynonymsFor(rec.ID()) {
			if strings.Contains(input, kw) {
				return rec.Name(), true
			}
		}
	}

	// Pass 3: the input contains the full canonical name.
	for i := range recordsOfClass {
		rec := &recordsOfClass[i]
		if strings.Contains(input, strings.ToLower(rec.Name())) {
			return rec.Name(), true
		}
	}

	return "", false
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}
