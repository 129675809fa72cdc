// Package appointment persists appointment slots as Redis hashes.
package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/publilab/munbot/internal/db"
	"github.com/publilab/munbot/internal/domain"
)

const keyPrefix = "munbot:appt:"

// store is the consumer interface for appointments (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/appointment.Repository.
type Repo struct {
	store store
}

// New creates an appointment repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes an appointment hash.
func (r *Repo) Save(ctx context.Context, appt *domain.Appointment) error {
	key := keyPrefix + appt.ID()
	if err := r.store.HSet(ctx, key, buildHashFields(appt)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns an appointment by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Appointment, error) {
	key := keyPrefix + id
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Appointment{}, domain.ErrAppointmentNotFound
		}
		return domain.Appointment{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domain.Appointment{}, domain.ErrAppointmentNotFound
	}
	return parseHashFields(m), nil
}

// Exists reports whether an appointment id is already stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	key := keyPrefix + id
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return ok, nil
}

// List returns every stored appointment ordered by date, hour, then id.
func (r *Repo) List(ctx context.Context) ([]domain.Appointment, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan appointments: %w", err)
	}

	appts := make([]domain.Appointment, 0, len(keys))
	for _, key := range keys {
		m, err := r.store.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("hgetall %s: %w", key, err)
		}
		if len(m) == 0 {
			continue
		}
		appts = append(appts, parseHashFields(m))
	}

	sort.Slice(appts, func(i, j int) bool {
		a, b := &appts[i], &appts[j]
		if a.Date() != b.Date() {
			return a.Date() < b.Date()
		}
		if a.Hour() != b.Hour() {
			return a.Hour() < b.Hour()
		}
		return strings.Compare(a.ID(), b.ID()) < 0
	})
	return appts, nil
}
