package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/ports/capabilities"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrPetLimitReached = errors.New("pet limit reached for plan")
)

type Service struct {
	repo   Repository
	limits capabilities.PlanResolver // nil => sin límite de plan
	now    func() time.Time
}

// NewService crea el servicio de mascotas.
// limits puede ser nil (dev / planes deshabilitados).
func NewService(repo Repository, limits capabilities.PlanResolver) *Service {
	return &Service{
		repo:   repo,
		limits: limits,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name       string
	Species    string
	Breed      string
	Sex        string
	BirthDate  *time.Time
	Microchip  string
	Sterilized bool
	Notes      string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	// Límite de mascotas según plan (gratuito vs premium).
	if s.limits != nil {
		limit, err := s.limits.PetLimit(ctx, ownerUserID)
		if err != nil {
			return Pet{}, err
		}
		if limit > 0 {
			existing, err := s.repo.ListByOwner(ctx, ownerUserID)
			if err != nil {
				return Pet{}, err
			}
			if len(existing) >= limit {
				return Pet{}, ErrPetLimitReached
			}
		}
	}

	sex := strings.TrimSpace(in.Sex)
	if sex == "" {
		sex = string(SexUnknown)
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.TrimSpace(in.Species)),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         Sex(sex),
		BirthDate:   in.BirthDate,
		Microchip:   strings.TrimSpace(in.Microchip),
		Sterilized:  in.Sterilized,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateProfileInput usa punteros para PATCH real: nil = no tocar.
type UpdateProfileInput struct {
	Name       *string
	Breed      *string
	Sex        *string
	BirthDate  PatchBirthDate // wrapper: distingue "no enviado" de "null"
	Microchip  *string
	Sterilized *bool
	Notes      *string
}

// PatchBirthDate distingue presencia del campo: Present+nil limpia la fecha.
type PatchBirthDate struct {
	Present bool
	Value   *time.Time
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Sterilized != nil {
		p.Sterilized = *in.Sterilized
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// OwnerOf expone el ownerUserID de una mascota.
// Evita que otros módulos dependan del modelo completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
