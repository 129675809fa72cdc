// Package catalog loads and serves the document catalog: the read-only
// collection of administrative procedure records the resolver matches against.
// The catalog is loaded once at startup and passed explicitly to resolution
// calls; nothing mutates it afterwards.
package catalog

import (
	"strings"

	"github.com/publilab/munbot/internal/domain"
)

// Catalog is an immutable, order-preserving collection of records.
type Catalog struct {
	records []domain.Record
}

// New builds a catalog from records, preserving their order.
func New(records []domain.Record) Catalog {
	return Catalog{records: append([]domain.Record(nil), records...)}
}

// All returns every record in original catalog order.
func (c *Catalog) All() []domain.Record { return c.records }

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// ByClass returns the records of a class, preserving catalog order.
func (c *Catalog) ByClass(class string) []domain.Record {
	class = strings.ToLower(class)
	var out []domain.Record
	for _, r := range c.records {
		if strings.ToLower(r.Class()) == class {
			out = append(out, r)
		}
	}
	return out
}

// ByExactName returns the record whose canonical name matches name
// case-insensitively, and whether one was found.
func (c *Catalog) ByExactName(name string) (domain.Record, bool) {
	name = strings.ToLower(name)
	for _, r := range c.records {
		if strings.ToLower(r.Name()) == name {
			return r, true
		}
	}
	return domain.Record{}, false
}

// ByID returns the record with the given id, and whether one was found.
func (c *Catalog) ByID(id string) (domain.Record, bool) {
	for _, r := range c.records {
		if r.ID() == id {
			return r, true
		}
	}
	return domain.Record{}, false
}
