package visits

import "time"

// Visit representa una entrada del historial médico de una mascota:
// consulta, control, cirugía, etc. Date es un día calendario UTC.
type Visit struct {
	ID    string
	PetID string

	Date time.Time
	Kind string // p.ej. "consultation", "surgery", "control"

	Veterinarian string
	Diagnosis    string
	Treatment    string

	WeightKg     float64
	TemperatureC float64

	Notes       string
	NextCheckup *time.Time

	CreatedAt time.Time
}
