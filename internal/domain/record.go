package domain

import (
	"fmt"
	"strings"
)

// Field identifies one lookupable attribute of a catalog record.
type Field string

// The fixed field enumeration. Callers translate their own intent names to
// these values; the core never inspects intent names.
const (
	FieldRequirements Field = "requirements"
	FieldLocation     Field = "location"
	FieldHours        Field = "hours"
	FieldContactEmail Field = "contact_email"
	FieldContactPhone Field = "contact_phone"
	FieldValidity     Field = "validity"
	FieldPenalty      Field = "penalty"
)

// KnownFields lists every valid Field value.
func KnownFields() []Field {
	return []Field{
		FieldRequirements, FieldLocation, FieldHours,
		FieldContactEmail, FieldContactPhone, FieldValidity, FieldPenalty,
	}
}

// Record is one catalog entry describing an administrative procedure
// (immutable value object). Action keywords may overlap across records;
// that ambiguity is expected and resolved by scoring.
type Record struct {
	id           string
	name         string
	class        string
	actions      []string
	requirements []string
	fields       map[Field]string
	orderIndex   int
}

// NewRecord validates and creates a Record. A field absent from fields is a
// valid state distinct from present-but-empty; both are representable here.
func NewRecord(
	id, name, class string,
	actions, requirements []string,
	fields map[Field]string,
	orderIndex int,
) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record id is required")
	}
	if name == "" {
		return Record{}, fmt.Errorf("record %s: name is required", id)
	}
	for f := range fields {
		if !isKnownField(f) {
			return Record{}, fmt.Errorf("record %s: unknown field %q", id, f)
		}
	}
	return Record{
		id:           id,
		name:         name,
		class:        class,
		actions:      lowerAll(actions),
		requirements: append([]string(nil), requirements...),
		fields:       cloneFieldMap(fields),
		orderIndex:   orderIndex,
	}, nil
}

// ID returns the stable record identifier, e.g. "CRD-001".
func (r Record) ID() string { return r.id }

// Name returns the canonical display name.
func (r Record) Name() string { return r.name }

// Class returns the category tag used for pre-filtering.
func (r Record) Class() string { return r.class }

// Actions returns the lowercased action keywords.
func (r Record) Actions() []string { return r.actions }

// Requirements returns the ordered requirement strings.
func (r Record) Requirements() []string { return r.requirements }

// OrderIndex returns the numeric position used for ordinal references
// ("option 3"); zero means unset.
func (r Record) OrderIndex() int { return r.orderIndex }

// FieldValue returns the stored display string for a field and whether the
// field is present at all.
func (r Record) FieldValue(f Field) (string, bool) {
	v, ok := r.fields[f]
	return v, ok
}

// HasAction reports whether token appears verbatim among the record's
// action keywords (case-insensitive).
func (r Record) HasAction(token string) bool {
	token = strings.ToLower(token)
	for _, a := range r.actions {
		if a == token {
			return true
		}
	}
	return false
}

func isKnownField(f Field) bool {
	for _, k := range KnownFields() {
		if f == k {
			return true
		}
	}
	return false
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func cloneFieldMap(m map[Field]string) map[Field]string {
	if m == nil {
		return nil
	}
	c := make(map[Field]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
