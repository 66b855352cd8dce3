package appointments

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
	Date         time.Time // día calendario UTC
	Time         string    // "HH:MM" opcional
	Kind         string
	Veterinarian string
	Clinic       string
	Address      string
	Phone        string
	Reason       string
	Notes        string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Appointment, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Kind) == "" {
		return Appointment{}, ErrInvalidInput
	}

	hhmm := strings.TrimSpace(in.Time)
	if hhmm != "" {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return Appointment{}, ErrInvalidInput
		}
	}

	now := s.now()
	a := Appointment{
		ID:           uuid.NewString(),
		PetID:        petID,
		Date:         civilDay(in.Date),
		Time:         hhmm,
		Kind:         strings.TrimSpace(in.Kind),
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Clinic:       strings.TrimSpace(in.Clinic),
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		Reason:       strings.TrimSpace(in.Reason),
		Notes:        strings.TrimSpace(in.Notes),
		Status:       StatusScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Appointment, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

// Complete marca la cita como completada. Solo desde scheduled.
func (s *Service) Complete(ctx context.Context, id string) (Appointment, error) {
	return s.transition(ctx, id, StatusCompleted)
}

// Cancel marca la cita como cancelada. Solo desde scheduled.
func (s *Service) Cancel(ctx context.Context, id string) (Appointment, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to Status) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.Status != StatusScheduled {
		// completed/cancelled son estados terminales
		return Appointment{}, ErrBadState
	}

	a.Status = to
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// civilDay normaliza a medianoche UTC: las citas son días calendario,
// sin hora ni zona (la hora va aparte como string).
func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
