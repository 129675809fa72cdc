package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/publilab/munbot/internal/domain"
	"github.com/publilab/munbot/internal/notify"
)

// --- Mocks ---

type mockAppointments struct {
	due []domain.Appointment
	err error
}

func (m *mockAppointments) DueTomorrow(_ context.Context) ([]domain.Appointment, error) {
	return m.due, m.err
}

type mockNotifier struct {
	channel string
	err     error
	sent    []notify.Message
}

func (m *mockNotifier) Channel() string { return m.channel }

func (m *mockNotifier) Send(_ context.Context, msg notify.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func dueAppointment(t *testing.T, id, email, whatsapp string) domain.Appointment {
	t.Helper()
	a, err := domain.NewAppointment(id, "2026-09-02", "10:00", "Funcionario Uno")
	if err != nil {
		t.Fatalf("NewAppointment: %v", err)
	}
	booked, err := a.Book("Leia Organa", email, whatsapp, "renovación")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	return booked
}

// --- Tests ---

func TestSweep_SendsOverAllChannels(t *testing.T) {
	appts := &mockAppointments{due: []domain.Appointment{
		dueAppointment(t, "apt-1", "leia@municipio.gal", "+5691234"),
	}}
	email := &mockNotifier{channel: "email"}
	wa := &mockNotifier{channel: "whatsapp"}

	New(appts, []notify.Notifier{email, wa}, 9, zap.NewNop()).Sweep(context.Background())

	if len(email.sent) != 1 || email.sent[0].To != "leia@municipio.gal" {
		t.Errorf("email: got %v", email.sent)
	}
	if len(wa.sent) != 1 || wa.sent[0].To != "+5691234" {
		t.Errorf("whatsapp: got %v", wa.sent)
	}
	if !strings.Contains(email.sent[0].Body, "Leia Organa") ||
		!strings.Contains(email.sent[0].Body, "2026-09-02") {
		t.Errorf("body should name the citizen and date, got %q", email.sent[0].Body)
	}
}

func TestSweep_SkipsMissingRecipient(t *testing.T) {
	// No WhatsApp number on the booking: only the email goes out.
	appts := &mockAppointments{due: []domain.Appointment{
		dueAppointment(t, "apt-1", "leia@municipio.gal", ""),
	}}
	email := &mockNotifier{channel: "email"}
	wa := &mockNotifier{channel: "whatsapp"}

	New(appts, []notify.Notifier{email, wa}, 9, zap.NewNop()).Sweep(context.Background())

	if len(email.sent) != 1 {
		t.Errorf("expected 1 email, got %d", len(email.sent))
	}
	if len(wa.sent) != 0 {
		t.Errorf("expected no whatsapp messages, got %d", len(wa.sent))
	}
}

func TestSweep_DeliveryFailureDoesNotStopSweep(t *testing.T) {
	appts := &mockAppointments{due: []domain.Appointment{
		dueAppointment(t, "apt-1", "leia@municipio.gal", ""),
		dueAppointment(t, "apt-2", "han@municipio.gal", ""),
	}}
	failing := &mockNotifier{channel: "email", err: errors.New("smtp down")}

	// Must not panic or abort; both failures are absorbed.
	New(appts, []notify.Notifier{failing}, 9, zap.NewNop()).Sweep(context.Background())

	if len(failing.sent) != 0 {
		t.Errorf("expected no deliveries, got %d", len(failing.sent))
	}
}

func TestSweep_ListError(t *testing.T) {
	appts := &mockAppointments{err: errors.New("redis down")}
	email := &mockNotifier{channel: "email"}

	New(appts, []notify.Notifier{email}, 9, zap.NewNop()).Sweep(context.Background())

	if len(email.sent) != 0 {
		t.Errorf("expected no deliveries after list error, got %d", len(email.sent))
	}
}

func TestUntilNextRun(t *testing.T) {
	s := New(&mockAppointments{}, nil, 9, zap.NewNop())

	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)
	}
	if got := s.untilNextRun(); got != 2*time.Hour {
		t.Errorf("before the hour: expected 2h, got %s", got)
	}

	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}
	if got := s.untilNextRun(); got != 23*time.Hour {
		t.Errorf("after the hour: expected 23h, got %s", got)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := New(&mockAppointments{}, nil, 9, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
