// Package appointment manages the booking lifecycle of municipal attention
// slots: available, pending after a citizen books, confirmed after they reply.
package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/metrics"
)

// Service handles slot listing, booking and confirmation.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates an appointment service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ListAvailable returns every slot still open for booking, ordered by date
// and hour.
func (s *Service) ListAvailable(ctx context.Context) ([]domain.Appointment, error) {
	appts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	available := make([]domain.Appointment, 0, len(appts))
	for i := range appts {
		if appts[i].Status() == domain.SlotAvailable {
			available = append(available, appts[i])
		}
	}
	setActiveGauge(appts)
	return available, nil
}

// RefreshActive recomputes the active-appointments gauge from storage. Booked
// slots survive restarts in Redis while the in-process gauge starts at zero,
// so the count is re-derived at startup and on every full listing.
func (s *Service) RefreshActive(ctx context.Context) error {
	appts, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list appointments: %w", err)
	}
	setActiveGauge(appts)
	return nil
}

func setActiveGauge(appts []domain.Appointment) {
	active := 0
	for i := range appts {
		status := appts[i].Status()
		if status == domain.SlotPending || status == domain.SlotConfirmed {
			active++
		}
	}
	metrics.ActiveAppointments.Set(float64(active))
}

// Book reserves a slot for the citizen. The slot moves to pending until the
// citizen confirms.
func (s *Service) Book(ctx context.Context, id, userName, email, whatsapp, reason string) (domain.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("get appointment: %w", err)
	}

	booked, err := appt.Book(userName, email, whatsapp, reason)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("book appointment: %w", err)
	}

	if err := s.repo.Save(ctx, &booked); err != nil {
		return domain.Appointment{}, fmt.Errorf("save appointment: %w", err)
	}

	metrics.AppointmentsCreatedTotal.Inc()
	metrics.ActiveAppointments.Inc()
	return booked, nil
}

// Confirm finalizes a pending booking.
func (s *Service) Confirm(ctx context.Context, id string) (domain.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("get appointment: %w", err)
	}

	confirmed, err := appt.Confirm()
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("confirm appointment: %w", err)
	}

	if err := s.repo.Save(ctx, &confirmed); err != nil {
		return domain.Appointment{}, fmt.Errorf("save appointment: %w", err)
	}

	metrics.AppointmentsConfirmedTotal.Inc()
	return confirmed, nil
}

// DueTomorrow returns booked appointments scheduled for the day after the
// current date, for the reminder sweep.
func (s *Service) DueTomorrow(ctx context.Context) ([]domain.Appointment, error) {
	appts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	tomorrow := s.now().AddDate(0, 0, 1).Format("2006-01-02")
	due := make([]domain.Appointment, 0)
	for i := range appts {
		status := appts[i].Status()
		if appts[i].Date() == tomorrow && (status == domain.SlotPending || status == domain.SlotConfirmed) {
			due = append(due, appts[i])
		}
	}
	setActiveGauge(appts)
	return due, nil
}
