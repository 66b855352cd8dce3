package vaccinations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBadState     = errors.New("invalid state transition")
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
	Name         string
	AppliedAt    time.Time
	NextDose     *time.Time
	Veterinarian string
	Lot          string
	Lab          string
	Status       string // vacío => active
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Vaccination, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if in.AppliedAt.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}

	status := Status(strings.TrimSpace(in.Status))
	switch status {
	case "":
		status = StatusActive
	case StatusActive, StatusDueSoon, StatusExpired:
		// ok
	default:
		return Vaccination{}, ErrInvalidInput
	}

	var next *time.Time
	if in.NextDose != nil {
		d := civilDay(*in.NextDose)
		next = &d
	}

	now := s.now()
	v := Vaccination{
		ID:           uuid.NewString(),
		PetID:        petID,
		Name:         strings.TrimSpace(in.Name),
		AppliedAt:    civilDay(in.AppliedAt),
		NextDose:     next,
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Lot:          strings.TrimSpace(in.Lot),
		Lab:          strings.TrimSpace(in.Lab),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccination{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	return s.repo.ListByPet(ctx, petID)
}

// Expire marca la vacuna como vencida. Las vencidas no generan recordatorios.
func (s *Service) Expire(ctx context.Context, id string) (Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccination{}, ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}
	if v.Status == StatusExpired {
		// idempotente
		return v, nil
	}

	v.Status = StatusExpired
	v.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
