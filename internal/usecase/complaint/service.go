// Package complaint implements the staged complaint capture flow: a citizen
// opens a complaint with their contact details, then names the municipal area,
// then writes the description, each in a separate conversation turn.
package complaint

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/publilab/munbot/internal/domain"
)

// Service handles complaint intake.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates a complaint service.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
}

// Open registers a new complaint with the citizen's contact details and marks
// it as the one subsequent turns will complete.
func (s *Service) Open(ctx context.Context, name, email string) (domain.Complaint, error) {
	c, err := domain.NewComplaint(s.newID(), name, email, s.now().UnixMilli())
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("open complaint: %w", err)
	}

	if err := s.repo.Save(ctx, &c); err != nil {
		return domain.Complaint{}, fmt.Errorf("save complaint: %w", err)
	}
	return c, nil
}

// SetArea records the municipal area on a complaint. An empty id targets the
// most recently opened complaint.
func (s *Service) SetArea(ctx context.Context, id, area string) (domain.Complaint, error) {
	if area == "" {
		return domain.Complaint{}, fmt.Errorf("complaint area is required: %w", domain.ErrMissingInput)
	}

	c, err := s.find(ctx, id)
	if err != nil {
		return domain.Complaint{}, err
	}

	updated := c.WithArea(area)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return domain.Complaint{}, fmt.Errorf("save complaint: %w", err)
	}
	return updated, nil
}

// SetDescription records the complaint text. An empty id targets the most
// recently opened complaint.
func (s *Service) SetDescription(ctx context.Context, id, description string) (domain.Complaint, error) {
	if description == "" {
		return domain.Complaint{}, fmt.Errorf("complaint description is required: %w", domain.ErrMissingInput)
	}

	c, err := s.find(ctx, id)
	if err != nil {
		return domain.Complaint{}, err
	}

	updated := c.WithDescription(description)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return domain.Complaint{}, fmt.Errorf("save complaint: %w", err)
	}
	return updated, nil
}

// Discard deletes a complaint the citizen retracts. An empty id targets the
// most recently opened complaint.
func (s *Service) Discard(ctx context.Context, id string) (domain.Complaint, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return domain.Complaint{}, err
	}

	if err := s.repo.Delete(ctx, c.ID()); err != nil {
		return domain.Complaint{}, fmt.Errorf("delete complaint: %w", err)
	}
	return c, nil
}

func (s *Service) find(ctx context.Context, id string) (domain.Complaint, error) {
	if id == "" {
		c, err := s.repo.Latest(ctx)
		if err != nil {
			return domain.Complaint{}, fmt.Errorf("latest complaint: %w", err)
		}
		return c, nil
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("get complaint: %w", err)
	}
	return c, nil
}
