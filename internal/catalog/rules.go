package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/publilab/munbot/internal/domain"
)

// Rules holds the hand-authored matching tables that live next to the catalog
// as versioned configuration: combination rules for the scorer and synonym
// keywords for the name normalizer, both keyed by record id.
type Rules struct {
	// Combinations: per record id, tuples of 2-3 keywords. A tuple counts
	// toward the record's combo score iff every element appears in the query.
	Combinations map[string][][]string `yaml:"combinations"`
	// Synonyms: per record id, loose phrasings (spelled ordinals, domain
	// synonyms) the normalizer accepts for that record.
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadRules reads the rules YAML and validates it against the catalog: every
// referenced record id must exist, and every combination tuple must have 2 or
// 3 elements.
func LoadRules(path string, cat Catalog) (Rules, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	for id, combos := range rules.Combinations {
		if _, ok := cat.ByID(id); !ok {
			return Rules{}, fmt.Errorf("rules %s: combinations reference unknown record id %q", path, id)
		}
		for i, combo := range combos {
			if len(combo) < 2 || len(combo) > 3 {
				return Rules{}, fmt.Errorf("rules %s: record %s combination %d must have 2-3 keywords, got %d",
					path, id, i, len(combo))
			}
		}
	}
	for id := range rules.Synonyms {
		if _, ok := cat.ByID(id); !ok {
			return Rules{}, fmt.Errorf("rules %s: synonyms reference unknown record id %q", path, id)
		}
	}

	rules.normalize()
	return rules, nil
}

// CombinationsFor returns the combination tuples for a record id; records
// without an entry contribute nothing to the combo score.
func (r *Rules) CombinationsFor(recordID string) [][]string {
	return r.Combinations[recordID]
}

// SynonymsFor returns the normalizer keywords for a record id.
func (r *Rules) SynonymsFor(recordID string) []string {
	return r.Synonyms[recordID]
}

// normalize lowercases every keyword so matching stays case-insensitive
// regardless of how the file was authored.
func (r *Rules) normalize() {
	for id, combos := range r.Combinations {
		for i, combo := range combos {
			for j, kw := range combo {
				combos[i][j] = strings.ToLower(kw)
			}
		}
		r.Combinations[id] = combos
	}
	for id, kws := range r.Synonyms {
		for i, kw := range kws {
			kws[i] = strings.ToLower(kw)
		}
		r.Synonyms[id] = kws
	}
}
