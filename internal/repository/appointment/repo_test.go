package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/publilab/munbot/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	hashes map[string]map[string]string

	hsetErr error
	scanErr error
}

func newMockStore() *mockStore {
	return &mockStore{hashes: make(map[string]map[string]string)}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	m.hashes[key] = fields
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return m.hashes[key], nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *mockStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.hashes {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func mustSlot(t *testing.T, id, date, hour string) domain.Appointment {
	t.Helper()
	a, err := domain.NewAppointment(id, date, hour, "Funcionario Uno")
	if err != nil {
		t.Fatalf("NewAppointment(%s): %v", id, err)
	}
	return a
}

// --- Tests ---

func TestSaveAndGet(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	slot := mustSlot(t, "apt-1", "2026-09-10", "10:00")
	booked, err := slot.Book("Leia Organa", "leia@municipio.gal", "+5691234", "renovación")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := repo.Save(ctx, &booked); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "apt-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status() != domain.SlotPending {
		t.Errorf("status not round-tripped, got %s", got.Status())
	}
	if got.UserName() != "Leia Organa" || got.Whatsapp() != "+5691234" || got.Reason() != "renovación" {
		t.Errorf("booking details not round-tripped: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore())

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestList_SortedByDateThenHour(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	slots := []domain.Appointment{
		mustSlot(t, "apt-3", "2026-09-11", "09:00"),
		mustSlot(t, "apt-1", "2026-09-10", "11:00"),
		mustSlot(t, "apt-2", "2026-09-10", "10:00"),
	}
	for i := range slots {
		if err := repo.Save(ctx, &slots[i]); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"apt-2", "apt-1", "apt-3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d appointments, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID() != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID())
		}
	}
}

func TestList_ScanError(t *testing.T) {
	store := newMockStore()
	store.scanErr = errors.New("conn reset")

	if _, err := New(store).List(context.Background()); err == nil {
		t.Error("expected scan error to propagate")
	}
}
