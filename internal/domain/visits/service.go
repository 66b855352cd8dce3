package visits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Date         time.Time
	Kind         string
	Veterinarian string
	Diagnosis    string
	Treatment    string
	WeightKg     float64
	TemperatureC float64
	Notes        string
	NextCheckup  *time.Time
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Visit, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Visit{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Visit{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Kind) == "" {
		return Visit{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return Visit{}, ErrInvalidInput
	}

	var next *time.Time
	if in.NextCheckup != nil {
		d := civilDay(*in.NextCheckup)
		next = &d
	}

	v := Visit{
		ID:           uuid.NewString(),
		PetID:        petID,
		Date:         civilDay(in.Date),
		Kind:         strings.TrimSpace(in.Kind),
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Diagnosis:    strings.TrimSpace(in.Diagnosis),
		Treatment:    strings.TrimSpace(in.Treatment),
		WeightKg:     in.WeightKg,
		TemperatureC: in.TemperatureC,
		Notes:        strings.TrimSpace(in.Notes),
		NextCheckup:  next,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Visit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Visit{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Visit, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
