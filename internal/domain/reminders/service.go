package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/appointments"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/vaccinations"
	"pet-care-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultWindowDays es la ventana que usa la UI si no pide otra.
const DefaultWindowDays = 30

// Fuentes de datos del agregador. Los services de cada módulo las
// satisfacen directamente; los tests usan fakes.
type (
	PetDirectory interface {
		ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
	}

	AppointmentSource interface {
		ListByPet(ctx context.Context, petID string, filter appointments.ListFilter) ([]appointments.Appointment, error)
	}

	VaccinationSource interface {
		ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error)
	}
)

// Service junta los snapshots por dueño y delega en Build.
// No guarda estado entre llamadas: cada llamada recalcula todo.
type Service struct {
	pets  PetDirectory
	appts AppointmentSource
	vaccs VaccinationSource

	now func() time.Time
	log logger.Logger
}

func NewService(petDir PetDirectory, appts AppointmentSource, vaccs VaccinationSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:  petDir,
		appts: appts,
		vaccs: vaccs,
		now:   time.Now,
		log:   log,
	}
}

// Upcoming devuelve los recordatorios del dueño dentro de la ventana
// [hoy, hoy+windowDays]. Los únicos errores posibles vienen de los
// stores; la agregación en sí nunca falla.
func (s *Service) Upcoming(ctx context.Context, ownerUserID string, windowDays int) ([]Reminder, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	if windowDays < 0 {
		return nil, ErrInvalidInput
	}

	directory, err := s.pets.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	var allAppts []appointments.Appointment
	var allVaccs []vaccinations.Vaccination

	for _, p := range directory {
		// Sin filtro de status ni fechas: Build es el único que decide
		// qué entra en el feed.
		appts, err := s.appts.ListByPet(ctx, p.ID, appointments.ListFilter{})
		if err != nil {
			return nil, err
		}
		allAppts = append(allAppts, appts...)

		vaccs, err := s.vaccs.ListByPet(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		allVaccs = append(allVaccs, vaccs...)
	}

	return Build(directory, allAppts, allVaccs, s.now(), windowDays, s.log), nil
}
