package complaint

import (
	"context"

	"github.com/publilab/munbot/internal/domain"
)

// Repository defines the storage contract for complaints. Latest returns the
// most recently opened complaint so later turns can complete it.
type Repository interface {
	Save(ctx context.Context, c *domain.Complaint) error
	Get(ctx context.Context, id string) (domain.Complaint, error)
	Latest(ctx context.Context) (domain.Complaint, error)
	Delete(ctx context.Context, id string) error
}
