package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/publilab/munbot/internal/domain"
)

// recordDTO mirrors one catalog entry on disk. Field values use pointers so a
// JSON null is an absent field, distinct from a present empty string.
type recordDTO struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Class        string             `json:"class"`
	Actions      []string           `json:"actions"`
	Requirements []string           `json:"requirements"`
	Fields       map[string]*string `json:"fields"`
	Order        int                `json:"order"`
}

// Load reads the catalog JSON file. A missing or corrupt file yields
// domain.ErrDataUnavailable; the action layer degrades to an apology
// instead of crashing.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	var dtos []recordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	records := make([]domain.Record, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))
	for _, dto := range dtos {
		// Duplicate ids are a data-integrity defect in the source file, not a
		// runtime resolution concern. Reject at load time.
		if seen[dto.ID] {
			return Catalog{}, fmt.Errorf("catalog %s: duplicate record id %q: %w", path, dto.ID, domain.ErrDataUnavailable)
		}
		seen[dto.ID] = true

		fields := make(map[domain.Field]string, len(dto.Fields))
		for k, v := range dto.Fields {
			if v == nil {
				continue // JSON null — field absent
			}
			fields[domain.Field(k)] = *v
		}

		rec, err := domain.NewRecord(
			dto.ID, dto.Name, dto.Class, dto.Actions, dto.Requirements, fields, dto.Order,
		)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog %s: %w: %w", path, domain.ErrDataUnavailable, err)
		}
		records = append(records, rec)
	}

	return New(records), nil
}
