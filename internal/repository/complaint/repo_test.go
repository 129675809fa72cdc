package complaint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/publilab/munbot/internal/db"
	"github.com/publilab/munbot/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	hashes map[string]map[string]string
	keys   map[string][]byte
	ttls   map[string]time.Duration

	hsetErr error
	setErr  error
	delErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes: make(map[string]map[string]string),
		keys:   make(map[string][]byte),
		ttls:   make(map[string]time.Duration),
	}
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

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.keys[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.keys[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.hashes, key)
	delete(m.keys, key)
	return nil
}

func testComplaint(t *testing.T) domain.Complaint {
	t.Helper()
	c, err := domain.NewComplaint("01TEST", "Lando Calrissian", "lando@municipio.gal", 1756728000000)
	if err != nil {
		t.Fatalf("NewComplaint: %v", err)
	}
	c = c.WithArea("alumbrado")
	c = c.WithDescription("la luminaria lleva una semana apagada")
	return c
}

// --- Tests ---

func TestSaveAndGet(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	c := testComplaint(t)
	if err := repo.Save(ctx, &c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "01TEST")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name() != c.Name() || got.Area() != c.Area() || got.Description() != c.Description() {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt() != c.CreatedAt() {
		t.Errorf("created_at mismatch: %d", got.CreatedAt())
	}
}

func TestSave_UpdatesLatestPointer(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	first, _ := domain.NewComplaint("01AAA", "Ana", "", 1)
	second, _ := domain.NewComplaint("01BBB", "Beni", "", 2)
	if err := repo.Save(ctx, &first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := repo.Save(ctx, &second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID() != "01BBB" {
		t.Errorf("expected latest 01BBB, got %s", latest.ID())
	}
}

func TestSave_LatestPointerExpires(t *testing.T) {
	store := newMockStore()
	ctx := context.Background()

	c := testComplaint(t)
	if err := New(store).Save(ctx, &c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := store.ttls[latestKey]; got != latestTTL {
		t.Errorf("latest pointer ttl = %v, want %v", got, latestTTL)
	}
}

func TestDelete(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	c := testComplaint(t)
	if err := repo.Save(ctx, &c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := repo.Delete(ctx, "01TEST"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "01TEST"); !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("expected complaint gone, got %v", err)
	}
	if _, err := repo.Latest(ctx); !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("expected latest pointer cleared, got %v", err)
	}
}

func TestDelete_KeepsPointerToOtherComplaint(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	first, _ := domain.NewComplaint("01AAA", "Ana", "", 1)
	second, _ := domain.NewComplaint("01BBB", "Beni", "", 2)
	if err := repo.Save(ctx, &first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := repo.Save(ctx, &second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	if err := repo.Delete(ctx, "01AAA"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID() != "01BBB" {
		t.Errorf("expected latest 01BBB, got %s", latest.ID())
	}
}

func TestDelete_NotFound(t *testing.T) {
	err := New(newMockStore()).Delete(context.Background(), "nope")
	if !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestDelete_StoreError(t *testing.T) {
	store := newMockStore()
	repo := New(store)
	ctx := context.Background()

	c := testComplaint(t)
	if err := repo.Save(ctx, &c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store.delErr = errors.New("conn reset")
	if err := repo.Delete(ctx, "01TEST"); err == nil {
		t.Error("expected del error to propagate")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore())

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestLatest_NoPointer(t *testing.T) {
	repo := New(newMockStore())

	_, err := repo.Latest(context.Background())
	if !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestSave_StoreErrors(t *testing.T) {
	c := testComplaint(t)

	store := newMockStore()
	store.hsetErr = errors.New("conn reset")
	if err := New(store).Save(context.Background(), &c); err == nil {
		t.Error("expected hset error to propagate")
	}

	store = newMockStore()
	store.setErr = errors.New("conn reset")
	if err := New(store).Save(context.Background(), &c); err == nil {
		t.Error("expected pointer error to propagate")
	}
}
