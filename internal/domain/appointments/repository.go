package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Appointment, error)
}

type ListFilter struct {
	Status Status // vacío = todas
	From   *time.Time
	To     *time.Time
	Limit  int
}
