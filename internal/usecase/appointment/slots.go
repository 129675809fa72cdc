package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/publilab/munbot/internal/domain"
)

// slotDTO mirrors one seed slot on disk.
type slotDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Hour     string `json:"hour"`
	Official string `json:"official"`
}

// LoadSlots reads the bookable-slot seed file.
func LoadSlots(path string) ([]domain.Appointment, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read slots %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	var dtos []slotDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parse slots %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	slots := make([]domain.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		appt, err := domain.NewAppointment(dto.ID, dto.Date, dto.Hour, dto.Official)
		if err != nil {
			return nil, fmt.Errorf("slots %s: %w: %w", path, domain.ErrDataUnavailable, err)
		}
		slots = append(slots, appt)
	}
	return slots, nil
}

// Seed stores the slots that are not already persisted, leaving booked and
// confirmed ones untouched. Returns the number of slots written.
func (s *Service) Seed(ctx context.Context, slots []domain.Appointment) (int, error) {
	seeded := 0
	for i := range slots {
		exists, err := s.repo.Exists(ctx, slots[i].ID())
		if err != nil {
			return seeded, fmt.Errorf("check slot %s: %w", slots[i].ID(), err)
		}
		if exists {
			continue
		}
		if err := s.repo.Save(ctx, &slots[i]); err != nil {
			return seeded, fmt.Errorf("seed slot %s: %w", slots[i].ID(), err)
		}
		seeded++
	}
	return seeded, nil
}
