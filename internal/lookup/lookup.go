// Package lookup answers "what is the <field> of document X" questions over a
// resolved catalog record. Dispatch is a table from field to accessor and
// message template; a missing or empty value is a FieldNotFound the caller
// renders as an apology naming the field and the document.
package lookup

import (
	"fmt"
	"strings"

	"github.com/publilab/munbot/internal/domain"
)

// Answer is a formatted field answer. Value carries the stored string
// verbatim; Text is the user-facing rendering.
type Answer struct {
	Field    domain.Field
	Document string
	Value    string
	Text     string
}

// fieldSpec pairs an accessor with a message template for one field.
type fieldSpec struct {
	get    func(*domain.Record) (string, bool)
	render func(doc, value string) string
}

var fieldTable = map[domain.Field]fieldSpec{
	domain.FieldRequirements: {
		get: func(r *domain.Record) (string, bool) {
			if len(r.Requirements()) == 0 {
				return "", false
			}
			return strings.Join(r.Requirements(), "\n- "), true
		},
		render: func(doc, v string) string {
			return fmt.Sprintf("Para obtener el **%s**, necesitas lo siguiente:\n- %s", doc, v)
		},
	},
	domain.FieldLocation: {
		get: fieldGetter(domain.FieldLocation),
		render: func(doc, v string) string {
			return fmt.Sprintf("Puedes obtener el **%s** en: %s.", doc, v)
		},
	},
	domain.FieldHours: {
		get: fieldGetter(domain.FieldHours),
		render: func(doc, v string) string {
			return fmt.Sprintf("El horario de atención para obtener el **%s** es: %s.", doc, v)
		},
	},
	domain.FieldContactEmail: {
		get: fieldGetter(domain.FieldContactEmail),
		render: func(doc, v string) string {
			return fmt.Sprintf("Para consultas sobre el **%s**, puedes escribir al correo: %s.", doc, v)
		},
	},
	domain.FieldContactPhone: {
		get: fieldGetter(domain.FieldContactPhone),
		render: func(doc, v string) string {
			return fmt.Sprintf("Para consultas sobre el **%s**, puedes llamar al número: %s.", doc, v)
		},
	},
	domain.FieldValidity: {
		get: fieldGetter(domain.FieldValidity),
		render: func(doc, v string) string {
			return fmt.Sprintf("El **%s** tiene una validez de: %s. Te recomendamos renovarlo antes de que expire.", doc, v)
		},
	},
	domain.FieldPenalty: {
		get: fieldGetter(domain.FieldPenalty),
		render: func(doc, v string) string {
			return fmt.Sprintf("Si no tienes el **%s**, %s. Te recomendamos obtenerlo lo antes posible para evitar problemas.", doc, v)
		},
	},
}

func fieldGetter(f domain.Field) func(*domain.Record) (string, bool) {
	return func(r *domain.Record) (string, bool) {
		v, ok := r.FieldValue(f)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// Field answers the requested field for a record. Unknown fields and missing
// or empty values return a FieldNotFoundError naming the field and document.
func Field(record *domain.Record, requested domain.Field) (Answer, error) {
	spec, ok := fieldTable[requested]
	if !ok {
		return Answer{}, domain.NewFieldNotFound(requested, record.Name())
	}
	value, ok := spec.get(record)
	if !ok {
		return Answer{}, domain.NewFieldNotFound(requested, record.Name())
	}
	return Answer{
		Field:    requested,
		Document: record.Name(),
		Value:    value,
		Text:     spec.render(record.Name(), value),
	}, nil
}
