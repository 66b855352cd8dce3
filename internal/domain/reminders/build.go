package reminders

import (
	"fmt"
	"sort"
	"time"

	"pet-care-tracker/internal/domain/appointments"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/vaccinations"
	"pet-care-tracker/internal/platform/logger"
)

// Build arma el feed de recordatorios a partir de snapshots de los tres
// stores. Es una función pura: no muta sus inputs, no hace I/O y nunca
// falla; un registro malformado se descarta con un warn.
//
// Ventana: [today, today+windowDays] inclusive en ambos extremos, sobre
// días calendario UTC (today se trunca a medianoche UTC). windowDays
// negativo se trata como 0.
//
// Orden del resultado: EventDate ascendente; en empates se conserva el
// orden de concatenación (citas primero, vacunas después) porque el
// sort es estable.
func Build(
	directory []pets.Pet,
	appts []appointments.Appointment,
	vaccs []vaccinations.Vaccination,
	today time.Time,
	windowDays int,
	log logger.Logger,
) []Reminder {
	if log == nil {
		log = logger.Nop()
	}
	if windowDays < 0 {
		windowDays = 0
	}

	from := civilDay(today)
	to := from.AddDate(0, 0, windowDays)

	names := make(map[string]string, len(directory))
	for _, p := range directory {
		names[p.ID] = p.Name
	}

	out := make([]Reminder, 0, len(appts)+len(vaccs))

	// Citas primero: define el desempate en fechas iguales.
	for _, a := range appts {
		if a.Date.IsZero() {
			log.Warn("reminders: appointment with invalid date skipped", map[string]any{
				"appointment_id": a.ID,
			})
			continue
		}
		if a.Status != appointments.StatusScheduled {
			continue
		}

		day := civilDay(a.Date)
		if day.Before(from) || day.After(to) {
			continue
		}

		out = append(out, Reminder{
			PetID:      a.PetID,
			PetName:    petName(names, a.PetID),
			EventID:    a.ID,
			EventKind:  KindAppointment,
			EventDate:  day.Format("2006-01-02"),
			EventTime:  a.Time,
			EventLabel: a.Kind,
			Details:    fmt.Sprintf("Vet: %s - Clinic: %s", orNA(a.Veterinarian), orNA(a.Clinic)),
		})
	}

	for _, v := range vaccs {
		if v.NextDose == nil {
			// sin próxima dosis registrada: no hay nada que recordar
			continue
		}
		if v.NextDose.IsZero() {
			log.Warn("reminders: vaccination with invalid next dose skipped", map[string]any{
				"vaccination_id": v.ID,
			})
			continue
		}

		// Estado ausente cuenta como active; las vencidas nunca
		// se muestran, esté la fecha en ventana o no.
		status := v.Status
		if status == "" {
			status = vaccinations.StatusActive
		}
		if status != vaccinations.StatusActive && status != vaccinations.StatusDueSoon {
			continue
		}

		day := civilDay(*v.NextDose)
		if day.Before(from) || day.After(to) {
			continue
		}

		out = append(out, Reminder{
			PetID:      v.PetID,
			PetName:    petName(names, v.PetID),
			EventID:    v.ID,
			EventKind:  KindVaccination,
			EventDate:  day.Format("2006-01-02"),
			EventLabel: v.Name,
			Details:    fmt.Sprintf("Lab: %s, Vet: %s", orNA(v.Lab), orNA(v.Veterinarian)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventDate < out[j].EventDate
	})

	return out
}

func petName(names map[string]string, petID string) string {
	if n, ok := names[petID]; ok {
		return n
	}
	return UnknownPetName
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
