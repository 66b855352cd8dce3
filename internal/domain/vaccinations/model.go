package vaccinations

import "time"

// Status define el estado de una vacuna.
// @Enum active, due_soon, expired
type Status string

const (
	StatusActive  Status = "active"
	StatusDueSoon Status = "due_soon"
	StatusExpired Status = "expired"
)

// Vaccination representa una vacuna aplicada a una mascota.
// AppliedAt y NextDose son días calendario UTC; NextDose nil
// significa que no se registró próxima dosis.
type Vaccination struct {
	ID    string
	PetID string

	Name      string
	AppliedAt time.Time
	NextDose  *time.Time

	Veterinarian string
	Lot          string
	Lab          string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
