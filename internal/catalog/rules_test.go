package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/publilab/munbot/internal/domain"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func rulesCatalog(t *testing.T) Catalog {
	t.Helper()
	rec, err := domain.NewRecord("CPF-002", "Certificado de Piloto", "certificado",
		[]string{"pilotar"}, nil, nil, 1)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return New([]domain.Record{rec})
}

func TestLoadRules(t *testing.T) {
	content := `
combinations:
  CPF-002:
    - [Pilotar, Caza]
    - [pilotar, nave, espacial]
synonyms:
  CPF-002: [Piloto, caza]
`
	rules, err := LoadRules(writeRules(t, content), rulesCatalog(t))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	combos := rules.CombinationsFor("CPF-002")
	if len(combos) != 2 {
		t.Fatalf("expected 2 combinations, got %d", len(combos))
	}
	if combos[0][0] != "pilotar" || combos[0][1] != "caza" {
		t.Errorf("keywords should be lowercased, got %v", combos[0])
	}
	if got := rules.SynonymsFor("CPF-002"); len(got) != 2 || got[0] != "piloto" {
		t.Errorf("unexpected synonyms %v", got)
	}
}

func TestLoadRules_UnknownRecordID(t *testing.T) {
	content := `
combinations:
  ZZZ-999:
    - [a, b]
`
	_, err := LoadRules(writeRules(t, content), rulesCatalog(t))
	if err == nil || !strings.Contains(err.Error(), "ZZZ-999") {
		t.Errorf("expected unknown id error naming ZZZ-999, got %v", err)
	}
}

func TestLoadRules_BadTupleSize(t *testing.T) {
	content := `
combinations:
  CPF-002:
    - [solo]
`
	_, err := LoadRules(writeRules(t, content), rulesCatalog(t))
	if err == nil || !strings.Contains(err.Error(), "2-3 keywords") {
		t.Errorf("expected tuple size error, got %v", err)
	}
}

func TestRules_MissingEntryIsEmpty(t *testing.T) {
	rules := Rules{}
	if got := rules.CombinationsFor("CPF-002"); got != nil {
		t.Errorf("expected nil combinations, got %v", got)
	}
	if got := rules.SynonymsFor("CPF-002"); got != nil {
		t.Errorf("expected nil synonyms, got %v", got)
	}
}
