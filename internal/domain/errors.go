package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable signals that the document catalog could not be loaded.
	ErrDataUnavailable = errors.New("catalog data unavailable")
	// ErrMissingInput signals that a required slot or entity is absent.
	ErrMissingInput = errors.New("missing input")
	// ErrFieldNotFound signals that a record lacks the requested field.
	ErrFieldNotFound = errors.New("field not found")
	// ErrSlotUnavailable signals that an appointment slot is already taken.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrAppointmentNotFound signals a missing appointment.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrComplaintNotFound signals a missing complaint.
	ErrComplaintNotFound = errors.New("complaint not found")
	// ErrNoAnswer signals that neither the corpus nor the model produced an answer.
	ErrNoAnswer = errors.New("no answer available")
	// ErrModelProviderError signals a language model provider failure.
	ErrModelProviderError = errors.New("model provider error")
)

// FieldNotFoundError wraps ErrFieldNotFound with the field and document names,
// so callers can render an apology naming both.
type FieldNotFoundError struct {
	Field    Field
	Document string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("%s: field %q on document %q", ErrFieldNotFound.Error(), e.Field, e.Document)
}

func (e *FieldNotFoundError) Unwrap() error { return ErrFieldNotFound }

// NewFieldNotFound creates a field-not-found error for a record field.
func NewFieldNotFound(field Field, document string) error {
	return &FieldNotFoundError{Field: field, Document: document}
}
