package reminders

// EventKind distingue el origen de un recordatorio.
// @Enum appointment, vaccination
type EventKind string

const (
	KindAppointment EventKind = "appointment"
	KindVaccination EventKind = "vaccination"
)

// UnknownPetName se usa cuando el petId de un evento no resuelve
// contra el directorio de mascotas. Una referencia colgante nunca
// aborta la agregación.
const UnknownPetName = "Unknown Pet"

// Reminder es la proyección de solo lectura de una cita o de la próxima
// dosis de una vacuna, calculada en cada llamada y nunca persistida.
// EventDate siempre es "YYYY-MM-DD": con formato fijo, el orden
// lexicográfico coincide con el cronológico.
type Reminder struct {
	PetID   string
	PetName string

	EventID   string
	EventKind EventKind

	EventDate string
	EventTime string // "HH:MM", solo citas

	EventLabel string
	Details    string
}
