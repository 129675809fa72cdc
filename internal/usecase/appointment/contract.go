package appointment

import (
	"context"

	"github.com/publilab/munbot/internal/domain"
)

// Repository defines the storage contract for appointment slots.
type Repository interface {
	Save(ctx context.Context, appt *domain.Appointment) error
	Get(ctx context.Context, id string) (domain.Appointment, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]domain.Appointment, error)
}
