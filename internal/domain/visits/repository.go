package visits

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v Visit) error
	GetByID(ctx context.Context, id string) (Visit, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Visit, error)
}

type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Query string // búsqueda simple en diagnosis/treatment/notes
	Limit int
}
