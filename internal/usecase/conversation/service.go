// Package conversation is the dialogue-action layer: it turns NLU payloads
// into ordered response messages by driving the catalog, resolver, field
// lookup, and name normalizer.
package conversation

import (
	"fmt"
	"strings"

	"github.com/publilab/munbot/internal/catalog"
	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/lookup"
	"github.com/publilab/munbot/internal/metrics"
	"github.com/publilab/munbot/internal/normalizer"
	"github.com/publilab/munbot/internal/resolver"
)

// Slot names shared with the NLU collaborator.
const (
	SlotDocumentClass = "tipo_documento"
	SlotDocumentName  = "nombre_doc_especifico"
	SlotAction        = "accion_crd"
)

const unavailable = "Información no disponible"

// Service answers document questions for one conversation turn. The catalog
// is loaded once and shared read-only; every method is stateless.
type Service struct {
	catalog    catalog.Catalog
	resolver   *resolver.Resolver
	normalizer *normalizer.Normalizer
	entityType string
}

// New creates the conversational action service. entityType is the NLU entity
// tag whose values become resolution query tokens.
func New(cat catalog.Catalog, res *resolver.Resolver, norm *normalizer.Normalizer, entityType string) *Service {
	return &Service{catalog: cat, resolver: res, normalizer: norm, entityType: entityType}
}

// ResolveDocument runs the scoring pipeline over the action entities of the
// turn and answers with the winning document's full briefing, a clarification
// list, or a not-found message. Every outcome is a user-visible message;
// nothing here is a hard failure.
func (s *Service) ResolveDocument(turn *Turn) []Message {
	tokens := turn.EntityValues(s.entityType)
	if len(tokens) == 0 {
		metrics.ResolutionsTotal.WithLabelValues("missing_input").Inc()
		return say("No se han detectado palabras clave de acción en tu consulta.")
	}

	query := domain.NewQuery(tokens, turn.Text)
	res := s.resolver.ResolveAgainst(&s.catalog, &query)
	metrics.ResolutionsTotal.WithLabelValues(string(res.Outcome())).Inc()

	switch res.Outcome() {
	case domain.OutcomeNoMatch:
		return say("No se encontró ningún certificado relacionado con esa acción.")
	case domain.OutcomeAmbiguous:
		return say(clarificationText(res.Candidates()))
	default:
		return s.briefing(res.Winner())
	}
}

// briefing renders the four sequential messages for a resolved record:
// requirements, where and when, contact, caveat. Sequencing is a UX contract.
func (s *Service) briefing(rec domain.Record) []Message {
	reqs := strings.Join(rec.Requirements(), ", ")
	location := fieldOr(&rec, domain.FieldLocation)
	hours := fieldOr(&rec, domain.FieldHours)
	phone := fieldOr(&rec, domain.FieldContactPhone)
	email := fieldOr(&rec, domain.FieldContactEmail)
	penalty := fieldOr(&rec, domain.FieldPenalty)

	return say(
		fmt.Sprintf("Para tramitar el %s necesitas: %s.", rec.Name(), reqs),
		fmt.Sprintf("Lo puedes obtener en: %s. Horario de atención: %s.", location, hours),
		fmt.Sprintf("Si tienes alguna duda, comunícate al número %s o escribe a %s.", phone, email),
		fmt.Sprintf("Importante: %s", penalty),
	)
}

func clarificationText(candidates []domain.Candidate) string {
	var b strings.Builder
	b.WriteString("Se encontraron varias opciones relacionadas con tu consulta:\n")
	for i := range candidates {
		rec := candidates[i].Record()
		fmt.Fprintf(&b, "- %s\n", rec.Name())
	}
	b.WriteString("\n¿Podrías indicar cuál te interesa?")
	return b.String()
}

// ListByClass lists the catalog entries of one document class as three
// sequential messages: intro, numbered list in catalog order, closing
// question.
func (s *Service) ListByClass(class string) []Message {
	if class == "" {
		return say("No se ha especificado el tipo de documento.")
	}

	records := s.catalog.ByClass(class)
	if len(records) == 0 {
		return say(fmt.Sprintf("No se encontraron documentos del tipo '%s'.", class))
	}

	var list strings.Builder
	for i := range records {
		fmt.Fprintf(&list, "%d. %s\n", records[i].OrderIndex(), records[i].Name())
	}

	return say(
		fmt.Sprintf("Entiendo que buscas un **%s**. Estos son los %ss disponibles. "+
			"Puedes indicarme el nombre o número del documento que necesitas.", class, class),
		strings.TrimRight(list.String(), "\n"),
		fmt.Sprintf("¿Sobre cuál de estos %ss deseas información?", class),
	)
}

// FieldAnswer answers a question about one field of a named document. The
// document name comes from the turn's slots (already normalized or as typed);
// field selection is the caller's translation of its intent to the field enum.
func (s *Service) FieldAnswer(turn *Turn, field domain.Field) []Message {
	name := turn.Slot(SlotDocumentName)
	if name == "" || field == "" {
		return say("No tengo suficiente información para realizar la búsqueda. " +
			"Por favor, proporciona el nombre del documento y el campo que deseas consultar.")
	}

	rec, ok := s.catalog.ByExactName(name)
	if !ok {
		return say(fmt.Sprintf("No encontré información sobre el documento '%s'. ¿Necesitas ayuda con algo más?", name))
	}

	answer, err := lookup.Field(&rec, field)
	if err != nil {
		return say(fmt.Sprintf("No encontré información sobre '%s' para el documento '%s'.", field, rec.Name()))
	}
	return say(answer.Text)
}

// NormalizeDocumentName maps the user's loose reference (ordinal, synonym, or
// name fragment) to a canonical catalog name within the selected class.
// On success the first return value carries the canonical name so the caller
// can update its slot.
func (s *Service) NormalizeDocumentName(turn *Turn) (string, []Message) {
	value := turn.Slot(SlotDocumentName)
	class := turn.Slot(SlotDocumentClass)
	if value == "" || class == "" {
		return "", say("Falta información para normalizar el documento.")
	}

	name, ok := s.normalizer.Normalize(value, s.catalog.ByClass(class))
	if !ok {
		return "", say(fmt.Sprintf("No se pudo normalizar el documento: '%s'", value))
	}
	return name, say(fmt.Sprintf("¿Qué información necesitas de %s?", name))
}

func fieldOr(rec *domain.Record, f domain.Field) string {
	if v, ok := rec.FieldValue(f); ok && v != "" {
		return v
	}
	return unavailable
}
