// Package complaint persists complaints as Redis hashes, with a pointer key
// tracking the most recently opened complaint so the staged capture flow
// (contact, then area, then description) can find it across turns.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/publilab/munbot/internal/db"
	"github.com/publilab/munbot/internal/domain"
)

const (
	keyPrefix = "munbot:reclamo:"
	latestKey = "munbot:reclamo:latest"

	// latestTTL bounds how long an unaddressed turn may still refer to "the
	// complaint we just opened"; after a day the pointer is stale.
	latestTTL = 24 * time.Hour
)

// store is the consumer interface for complaints (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/complaint.Repository.
type Repo struct {
	store store
}

// New creates a complaint repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes a complaint and marks it as the latest.
func (r *Repo) Save(ctx context.Context, c *domain.Complaint) error {
	key := keyPrefix + c.ID()
	fields := map[string]string{
		"id":          c.ID(),
		"name":        c.Name(),
		"email":       c.Email(),
		"area":        c.Area(),
		"description": c.Description(),
		"created_at":  strconv.FormatInt(c.CreatedAt(), 10),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.SetWithTTL(ctx, latestKey, []byte(c.ID()), latestTTL); err != nil {
		return fmt.Errorf("set latest pointer: %w", err)
	}
	return nil
}

// Delete removes a complaint. The latest pointer is cleared when it points at
// the deleted complaint so "latest" cannot address a discarded one.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.store.Del(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("del %s: %w", keyPrefix+id, err)
	}

	latest, err := r.store.Get(ctx, latestKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("get latest pointer: %w", err)
	}
	if string(latest) == id {
		if err := r.store.Del(ctx, latestKey); err != nil {
			return fmt.Errorf("del latest pointer: %w", err)
		}
	}
	return nil
}

// Get returns a complaint by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Complaint, error) {
	key := keyPrefix + id
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Complaint{}, domain.ErrComplaintNotFound
		}
		return domain.Complaint{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domain.Complaint{}, domain.ErrComplaintNotFound
	}
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	return domain.ReconstructComplaint(
		m["id"], m["name"], m["email"], m["area"], m["description"], createdAt,
	), nil
}

// Latest returns the most recently opened complaint.
func (r *Repo) Latest(ctx context.Context) (domain.Complaint, error) {
	id, err := r.store.Get(ctx, latestKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Complaint{}, domain.ErrComplaintNotFound
		}
		return domain.Complaint{}, fmt.Errorf("get latest pointer: %w", err)
	}
	return r.Get(ctx, string(id))
}
