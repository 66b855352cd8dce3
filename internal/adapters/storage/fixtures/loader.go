package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/appointments"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/vaccinations"
	"pet-care-tracker/internal/domain/visits"
	"pet-care-tracker/internal/platform/logger"
)

// Loader siembra los repos con el data set JSON heredado de la app
// original (pets.json, appointments.json, vaccinations.json,
// visits.json). Pensado para dev/demo sobre los repos in-memory.
//
// Política de errores: un archivo ausente se ignora; un archivo con
// JSON inválido corta el seed; una fila individual malformada (id
// vacío, fecha que no parsea) se descarta con un warn, igual que hace
// el agregador de recordatorios con registros sucios.
type Loader struct {
	pets  pets.Repository
	appts appointments.Repository
	vaccs vaccinations.Repository
	visit visits.Repository

	now func() time.Time
	log logger.Logger
}

func NewLoader(
	petRepo pets.Repository,
	apptRepo appointments.Repository,
	vaccRepo vaccinations.Repository,
	visitRepo visits.Repository,
	log logger.Logger,
) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		pets:  petRepo,
		appts: apptRepo,
		vaccs: vaccRepo,
		visit: visitRepo,
		now:   time.Now,
		log:   log,
	}
}

type petRow struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_user_id"`
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Sex        string `json:"sex"`
	BirthDate  string `json:"birth_date"`
	Microchip  string `json:"microchip"`
	Sterilized bool   `json:"sterilized"`
	Notes      string `json:"notes"`
}

type appointmentRow struct {
	ID           string `json:"id"`
	PetID        string `json:"pet_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Kind         string `json:"kind"`
	Veterinarian string `json:"veterinarian"`
	Clinic       string `json:"clinic"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
}

type vaccinationRow struct {
	ID           string `json:"id"`
	PetID        string `json:"pet_id"`
	Name         string `json:"name"`
	AppliedAt    string `json:"applied_at"`
	NextDose     string `json:"next_dose"`
	Veterinarian string `json:"veterinarian"`
	Lot          string `json:"lot"`
	Lab          string `json:"lab"`
	Status       string `json:"status"`
}

type visitRow struct {
	ID           string  `json:"id"`
	PetID        string  `json:"pet_id"`
	Date         string  `json:"date"`
	Kind         string  `json:"kind"`
	Veterinarian string  `json:"veterinarian"`
	Diagnosis    string  `json:"diagnosis"`
	Treatment    string  `json:"treatment"`
	WeightKg     float64 `json:"weight_kg"`
	TemperatureC float64 `json:"temperature_c"`
	Notes        string  `json:"notes"`
	NextCheckup  string  `json:"next_checkup"`
}

// Seed carga los cuatro archivos del directorio, en orden (primero
// mascotas, después sus registros).
func (l *Loader) Seed(ctx context.Context, dir string) error {
	if err := l.seedPets(ctx, filepath.Join(dir, "pets.json")); err != nil {
		return err
	}
	if err := l.seedAppointments(ctx, filepath.Join(dir, "appointments.json")); err != nil {
		return err
	}
	if err := l.seedVaccinations(ctx, filepath.Join(dir, "vaccinations.json")); err != nil {
		return err
	}
	return l.seedVisits(ctx, filepath.Join(dir, "visits.json"))
}

func (l *Loader) seedPets(ctx context.Context, path string) error {
	var rows []petRow
	ok, err := readJSONFile(path, &rows)
	if err != nil || !ok {
		return err
	}

	now := l.now()
	for _, row := range rows {
		if strings.TrimSpace(row.ID) == "" || strings.TrimSpace(row.OwnerID) == "" || strings.TrimSpace(row.Name) == "" {
			l.warnSkip(path, row.ID, "missing required fields")
			continue
		}

		bd, ok := l.optionalDay(path, row.ID, row.BirthDate)
		if !ok {
			continue
		}

		p := pets.Pet{
			ID:          row.ID,
			OwnerUserID: row.OwnerID,
			Name:        row.Name,
			Species:     pets.Species(row.Species),
			Breed:       row.Breed,
			Sex:         pets.Sex(row.Sex),
			BirthDate:   bd,
			Microchip:   row.Microchip,
			Sterilized:  row.Sterilized,
			Notes:       row.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := l.pets.Create(ctx, p); err != nil {
			l.warnSkip(path, row.ID, err.Error())
		}
	}
	return nil
}

func (l *Loader) seedAppointments(ctx context.Context, path string) error {
	var rows []appointmentRow
	ok, err := readJSONFile(path, &rows)
	if err != nil || !ok {
		return err
	}

	now := l.now()
	for _, row := range rows {
		if strings.TrimSpace(row.ID) == "" || strings.TrimSpace(row.PetID) == "" {
			l.warnSkip(path, row.ID, "missing required fields")
			continue
		}

		date, err := parseDay(row.Date)
		if err != nil {
			l.warnSkip(path, row.ID, "invalid date: "+row.Date)
			continue
		}

		status := appointments.Status(strings.TrimSpace(row.Status))
		if status == "" {
			status = appointments.StatusScheduled
		}

		a := appointments.Appointment{
			ID:           row.ID,
			PetID:        row.PetID,
			Date:         date,
			Time:         strings.TrimSpace(row.Time),
			Kind:         row.Kind,
			Veterinarian: row.Veterinarian,
			Clinic:       row.Clinic,
			Address:      row.Address,
			Phone:        row.Phone,
			Reason:       row.Reason,
			Notes:        row.Notes,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := l.appts.Create(ctx, a); err != nil {
			l.warnSkip(path, row.ID, err.Error())
		}
	}
	return nil
}

func (l *Loader) seedVaccinations(ctx context.Context, path string) error {
	var rows []vaccinationRow
	ok, err := readJSONFile(path, &rows)
	if err != nil || !ok {
		return err
	}

	now := l.now()
	for _, row := range rows {
		if strings.TrimSpace(row.ID) == "" || strings.TrimSpace(row.PetID) == "" || strings.TrimSpace(row.Name) == "" {
			l.warnSkip(path, row.ID, "missing required fields")
			continue
		}

		applied, err := parseDay(row.AppliedAt)
		if err != nil {
			l.warnSkip(path, row.ID, "invalid applied_at: "+row.AppliedAt)
			continue
		}

		next, ok := l.optionalDay(path, row.ID, row.NextDose)
		if !ok {
			continue
		}

		status := vaccinations.Status(strings.TrimSpace(row.Status))
		if status == "" {
			status = vaccinations.StatusActive
		}

		v := vaccinations.Vaccination{
			ID:           row.ID,
			PetID:        row.PetID,
			Name:         row.Name,
			AppliedAt:    applied,
			NextDose:     next,
			Veterinarian: row.Veterinarian,
			Lot:          row.Lot,
			Lab:          row.Lab,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := l.vaccs.Create(ctx, v); err != nil {
			l.warnSkip(path, row.ID, err.Error())
		}
	}
	return nil
}

func (l *Loader) seedVisits(ctx context.Context, path string) error {
	var rows []visitRow
	ok, err := readJSONFile(path, &rows)
	if err != nil || !ok {
		return err
	}

	now := l.now()
	for _, row := range rows {
		if strings.TrimSpace(row.ID) == "" || strings.TrimSpace(row.PetID) == "" {
			l.warnSkip(path, row.ID, "missing required fields")
			continue
		}

		date, err := parseDay(row.Date)
		if err != nil {
			l.warnSkip(path, row.ID, "invalid date: "+row.Date)
			continue
		}

		next, ok := l.optionalDay(path, row.ID, row.NextCheckup)
		if !ok {
			continue
		}

		v := visits.Visit{
			ID:           row.ID,
			PetID:        row.PetID,
			Date:         date,
			Kind:         row.Kind,
			Veterinarian: row.Veterinarian,
			Diagnosis:    row.Diagnosis,
			Treatment:    row.Treatment,
			WeightKg:     row.WeightKg,
			TemperatureC: row.TemperatureC,
			Notes:        row.Notes,
			NextCheckup:  next,
			CreatedAt:    now,
		}
		if err := l.visit.Create(ctx, v); err != nil {
			l.warnSkip(path, row.ID, err.Error())
		}
	}
	return nil
}

// optionalDay parsea una fecha opcional. ok=false significa fila
// descartada (fecha presente pero inválida).
func (l *Loader) optionalDay(path, rowID, s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	t, err := parseDay(s)
	if err != nil {
		l.warnSkip(path, rowID, "invalid date: "+s)
		return nil, false
	}
	return &t, true
}

func (l *Loader) warnSkip(path, rowID, reason string) {
	l.log.Warn("fixtures: row skipped", map[string]any{
		"file":   filepath.Base(path),
		"id":     rowID,
		"reason": reason,
	})
}

// readJSONFile devuelve ok=false si el archivo no existe (no es error).
func readJSONFile(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("fixtures: %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// Las fechas del data set son días calendario "YYYY-MM-DD" en UTC.
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
}
