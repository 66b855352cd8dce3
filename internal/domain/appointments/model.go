package appointments

import "time"

// Status define el ciclo de vida de una cita.
// @Enum scheduled, completed, cancelled
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment representa una cita veterinaria agendada para una mascota.
// Date es un día calendario UTC (medianoche); Time es "HH:MM" opcional.
type Appointment struct {
	ID    string
	PetID string

	Date time.Time
	Time string

	Kind         string // p.ej. "checkup", "grooming"
	Veterinarian string
	Clinic       string
	Address      string
	Phone        string
	Reason       string
	Notes        string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
