package answer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/tfidf"
)

// LoadCorpus reads every .txt file in dir into a retrieval document. The file
// name without extension becomes the document id.
func LoadCorpus(dir string) ([]tfidf.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read corpus dir %s: %w", domain.ErrDataUnavailable, dir, err)
	}

	docs := make([]tfidf.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read corpus file %s: %w", domain.ErrDataUnavailable, path, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		docs = append(docs, tfidf.Document{
			ID:   strings.TrimSuffix(entry.Name(), ".txt"),
			Text: text,
		})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: corpus dir %s has no .txt entries", domain.ErrDataUnavailable, dir)
	}
	return docs, nil
}
