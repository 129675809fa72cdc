package answer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/tfidf"
)

// --- Mocks ---

type mockModel struct {
	answer string
	err    error
	asked  string
}

func (m *mockModel) Complete(_ context.Context, question string) (string, error) {
	m.asked = question
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func testIndex() *tfidf.Index {
	return tfidf.NewIndex([]tfidf.Document{
		{ID: "horarios", Text: "Las oficinas municipales atienden de lunes a viernes de ocho a catorce horas"},
		{ID: "tributos", Text: "Los tributos se pagan en la tesorería municipal o en el portal de pagos"},
	})
}

// --- Tests ---

func TestAnswer_FromCorpus(t *testing.T) {
	model := &mockModel{answer: "no debería usarse"}
	svc := New(testIndex(), model, 0.2, zap.NewNop())

	res, err := svc.Answer(context.Background(), "¿en qué horario atienden las oficinas municipales?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if res.Source != SourceDocument {
		t.Fatalf("expected document source, got %s", res.Source)
	}
	if res.Score < 0.2 {
		t.Errorf("corpus answer must meet the threshold, got %f", res.Score)
	}
	if model.asked != "" {
		t.Error("model must not be called when the corpus answers")
	}
}

func TestAnswer_ModelFallback(t *testing.T) {
	model := &mockModel{answer: "Puede acercarse a la oficina de partes."}
	svc := New(testIndex(), model, 0.99, zap.NewNop())

	res, err := svc.Answer(context.Background(), "¿cómo apelo una multa?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if res.Source != SourceModel {
		t.Fatalf("expected model source, got %s", res.Source)
	}
	if res.Text != model.answer {
		t.Errorf("got %q", res.Text)
	}
	if res.Score != 0 {
		t.Errorf("model answers carry no similarity score, got %f", res.Score)
	}
}

func TestAnswer_NoModelConfigured(t *testing.T) {
	svc := New(testIndex(), nil, 0.99, zap.NewNop())

	_, err := svc.Answer(context.Background(), "¿cómo apelo una multa?")
	if !errors.Is(err, domain.ErrNoAnswer) {
		t.Errorf("expected ErrNoAnswer, got %v", err)
	}
}

func TestAnswer_ModelError(t *testing.T) {
	model := &mockModel{err: domain.ErrModelProviderError}
	svc := New(testIndex(), model, 0.99, zap.NewNop())

	_, err := svc.Answer(context.Background(), "¿cómo apelo una multa?")
	if !errors.Is(err, domain.ErrModelProviderError) {
		t.Errorf("expected ErrModelProviderError, got %v", err)
	}
}

func TestNew_ThresholdDefault(t *testing.T) {
	svc := New(testIndex(), nil, 0, zap.NewNop())
	if svc.threshold != DefaultThreshold {
		t.Errorf("expected default threshold, got %f", svc.threshold)
	}
}

// --- Corpus loading ---

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"horarios.txt": "Las oficinas atienden de lunes a viernes.",
		"vacio.txt":    "   \n",
		"notas.md":     "ignorado",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	docs, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document (empty and non-txt skipped), got %d", len(docs))
	}
	if docs[0].ID != "horarios" {
		t.Errorf("id should drop the extension, got %q", docs[0].ID)
	}
}

func TestLoadCorpus_EmptyDir(t *testing.T) {
	_, err := LoadCorpus(t.TempDir())
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestLoadCorpus_MissingDir(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}
