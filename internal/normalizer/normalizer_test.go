package normalizer

import (
	"testing"

	"github.com/publilab/munbot/internal/catalog"
	"github.com/publilab/munbot/internal/domain"
)

func mustRecord(t *testing.T, id, name string, order int) domain.Record {
	t.Helper()
	rec, err := domain.NewRecord(id, name, "certificado", nil, nil, nil, order)
	if err != nil {
		t.Fatalf("NewRecord(%s): %v", id, err)
	}
	return rec
}

func classRecords(t *testing.T) []domain.Record {
	t.Helper()
	return []domain.Record{
		mustRecord(t, "CRD-001", "Certificado de Residencia", 1),
		mustRecord(t, "CPF-002", "Certificado de Piloto de Franquicia", 2),
		mustRecord(t, "CET-008", "Certificado de Entrada Turística", 3),
	}
}

func testNormalizer() *Normalizer {
	return New(catalog.Rules{
		Synonyms: map[string][]string{
			"CRD-001": {"residencia", "domicilio"},
			"CPF-002": {"piloto", "caza"},
			"CET-008": {"turista", "entrada"},
		},
	})
}

func TestNormalize_BareOrdinal(t *testing.T) {
	name, ok := testNormalizer().Normalize("2", classRecords(t))
	if !ok || name != "Certificado de Piloto de Franquicia" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_OrdinalInsidePhrase(t *testing.T) {
	name, ok := testNormalizer().Normalize("el número 3 por favor", classRecords(t))
	if !ok || name != "Certificado de Entrada Turística" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_SpelledOrdinal(t *testing.T) {
	name, ok := testNormalizer().Normalize("la opción dos", classRecords(t))
	if !ok || name != "Certificado de Piloto de Franquicia" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_Synonym(t *testing.T) {
	name, ok := testNormalizer().Normalize("el de piloto", classRecords(t))
	if !ok || name != "Certificado de Piloto de Franquicia" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_NameSubstring(t *testing.T) {
	name, ok := testNormalizer().Normalize(
		"quiero el certificado de entrada turística entonces", classRecords(t))
	if !ok || name != "Certificado de Entrada Turística" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_OrdinalBeatsSynonym(t *testing.T) {
	// "1" and "piloto" point at different records; the ordinal pass runs
	// first, so the digit wins.
	name, ok := testNormalizer().Normalize("1 piloto", classRecords(t))
	if !ok || name != "Certificado de Residencia" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_Unresolved(t *testing.T) {
	if name, ok := testNormalizer().Normalize("algo sin sentido", classRecords(t)); ok {
		t.Errorf("expected no match, got %q", name)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if _, ok := testNormalizer().Normalize("   ", classRecords(t)); ok {
		t.Error("expected no match for blank input")
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	name, ok := testNormalizer().Normalize("PILOTO", classRecords(t))
	if !ok || name != "Certificado de Piloto de Franquicia" {
		t.Errorf("got %q, %v", name, ok)
	}
}

func TestNormalize_ZeroOrderIgnoredByOrdinalPass(t *testing.T) {
	records := []domain.Record{mustRecord(t, "X-001", "Sin Orden", 0)}
	if name, ok := New(catalog.Rules{}).Normalize("0", records); ok {
		t.Errorf("order 0 must not be ordinal-addressable, got %q", name)
	}
}
