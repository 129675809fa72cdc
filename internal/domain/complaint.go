package domain

import "fmt"

// Complaint is a citizen complaint captured across several conversation turns:
// first the contact details, then the municipal area, then the description.
type Complaint struct {
	id          string
	name        string
	email       string
	area        string
	description string
	createdAt   int64 // unix millis
}

// NewComplaint opens a complaint with the citizen's contact details.
func NewComplaint(id, name, email string, createdAt int64) (Complaint, error) {
	if id == "" {
		return Complaint{}, fmt.Errorf("complaint id is required")
	}
	if name == "" {
		return Complaint{}, fmt.Errorf("complaint %s: name is required: %w", id, ErrMissingInput)
	}
	return Complaint{id: id, name: name, email: email, createdAt: createdAt}, nil
}

// ReconstructComplaint rebuilds a complaint from storage without validation.
func ReconstructComplaint(id, name, email, area, description string, createdAt int64) Complaint {
	return Complaint{id: id, name: name, email: email, area: area, description: description, createdAt: createdAt}
}

// ID returns the complaint identifier.
func (c Complaint) ID() string { return c.id }

// Name returns the citizen's full name.
func (c Complaint) Name() string { return c.name }

// Email returns the citizen's email.
func (c Complaint) Email() string { return c.email }

// Area returns the municipal area the complaint concerns.
func (c Complaint) Area() string { return c.area }

// Description returns the complaint text.
func (c Complaint) Description() string { return c.description }

// CreatedAt returns the creation time in unix millis.
func (c Complaint) CreatedAt() int64 { return c.createdAt }

// WithArea returns a copy with the municipal area set.
func (c Complaint) WithArea(area string) Complaint {
	updated := c
	updated.area = area
	return updated
}

// WithDescription returns a copy with the complaint description set.
func (c Complaint) WithDescription(description string) Complaint {
	updated := c
	updated.description = description
	return updated
}
