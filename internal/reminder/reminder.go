// Package reminder runs the daily sweep that notifies citizens about their
// next-day appointments.
package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/metrics"
	"github.com/publilab/munbot/internal/notify"
)

// Appointments is the slice of the appointment service the scheduler needs.
type Appointments interface {
	DueTomorrow(ctx context.Context) ([]domain.Appointment, error)
}

// Scheduler fires one reminder sweep per day at a fixed local hour.
type Scheduler struct {
	appts     Appointments
	notifiers []notify.Notifier
	hour      int // 0-23, local time
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a reminder scheduler. hour is the local hour of day to run at.
func New(appts Appointments, notifiers []notify.Notifier, hour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		appts:     appts,
		notifiers: notifiers,
		hour:      hour,
		logger:    logger,
		now:       time.Now,
	}
}

// Run blocks until ctx is done, executing one sweep at the configured hour
// each day.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		wait := s.untilNextRun()
		s.logger.Info("reminder sweep scheduled",
			zap.Int("hour", s.hour),
			zap.Duration("in", wait),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep sends reminders for every appointment due tomorrow over every
// configured channel. Delivery failures are counted and logged but do not
// stop the sweep.
func (s *Scheduler) Sweep(ctx context.Context) {
	start := s.now()
	defer func() {
		metrics.ReminderRunDuration.Observe(time.Since(start).Seconds())
	}()

	due, err := s.appts.DueTomorrow(ctx)
	if err != nil {
		s.logger.Error("reminder sweep: list due appointments", zap.Error(err))
		metrics.ReminderErrorsTotal.WithLabelValues("list").Inc()
		return
	}

	sent := 0
	for i := range due {
		appt := &due[i]
		for _, n := range s.notifiers {
			to := recipient(appt, n.Channel())
			if to == "" {
				continue
			}
			msg := notify.Message{
				To:      to,
				Subject: "Recordatorio de cita municipal",
				Body:    reminderBody(appt),
			}
			if err := n.Send(ctx, msg); err != nil {
				s.logger.Warn("reminder delivery failed",
					zap.String("channel", n.Channel()),
					zap.String("appointment", appt.ID()),
					zap.Error(err),
				)
				metrics.ReminderErrorsTotal.WithLabelValues(n.Channel()).Inc()
				continue
			}
			sent++
		}
	}

	s.logger.Info("reminder sweep done",
		zap.Int("due", len(due)),
		zap.Int("sent", sent),
		zap.Duration("duration", time.Since(start)),
	)
}

// untilNextRun computes the wait until the next occurrence of the configured
// hour, tomorrow's if today's has passed.
func (s *Scheduler) untilNextRun() time.Duration {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func recipient(appt *domain.Appointment, channel string) string {
	switch channel {
	case "email":
		return appt.Email()
	case "whatsapp":
		return appt.Whatsapp()
	default:
		return ""
	}
}

func reminderBody(appt *domain.Appointment) string {
	return fmt.Sprintf(
		"Hola %s, te recordamos tu cita municipal de mañana %s a las %s con %s.",
		appt.UserName(), appt.Date(), appt.Hour(), appt.Official(),
	)
}
