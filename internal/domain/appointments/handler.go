package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc, petsSvc))
		ar.Get("/", listAppointmentsHandler(svc, petsSvc))
		ar.Get("/{apptID}", getAppointmentHandler(svc, petsSvc))
		ar.Post("/{apptID}/complete", transitionHandler(svc, petsSvc, StatusCompleted))
		ar.Post("/{apptID}/cancel", transitionHandler(svc, petsSvc, StatusCancelled))
	})
}

type createAppointmentRequest struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM opcional
	Kind         string `json:"kind"`
	Veterinarian string `json:"veterinarian"`
	Clinic       string `json:"clinic"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}

type appointmentResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time,omitempty"`
	Kind         string    `json:"kind"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	Clinic       string    `json:"clinic,omitempty"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// createAppointmentHandler agenda una cita para una mascota del usuario.
// @Summary Agendar cita
// @Tags appointments
// @Router /pets/{petID}/appointments [post]
func createAppointmentHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Date), time.UTC)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), petID, CreateInput{
			Date:         date,
			Time:         req.Time,
			Kind:         req.Kind,
			Veterinarian: req.Veterinarian,
			Clinic:       req.Clinic,
			Address:      req.Address,
			Phone:        req.Phone,
			Reason:       req.Reason,
			Notes:        req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler lista citas de una mascota.
// Query params: status, from, to (YYYY-MM-DD), limit.
// @Summary Listar citas
// @Tags appointments
// @Router /pets/{petID}/appointments [get]
func listAppointmentsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		filter := ListFilter{}
		q := r.URL.Query()

		if v := strings.TrimSpace(q.Get("status")); v != "" {
			filter.Status = Status(v)
		}
		if v := strings.TrimSpace(q.Get("from")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(q.Get("to")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.To = &t
		}
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "apptID"))
		if err != nil || a.PetID != petID {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func transitionHandler(svc *Service, petsSvc *pets.Service, to Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		apptID := chi.URLParam(r, "apptID")
		current, err := svc.GetByID(r.Context(), apptID)
		if err != nil || current.PetID != petID {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}

		var updated Appointment
		switch to {
		case StatusCompleted:
			updated, err = svc.Complete(r.Context(), apptID)
		case StatusCancelled:
			updated, err = svc.Cancel(r.Context(), apptID)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err != nil {
			if errors.Is(err, ErrBadState) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(updated))
	}
}

// authorizePetOwner valida claims + que la mascota exista y sea del usuario.
// Escribe la respuesta de error; ok=false corta el handler.
func authorizePetOwner(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	petID := chi.URLParam(r, "petID")
	owner, err := petsSvc.OwnerOf(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return petID, true
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:           a.ID,
		PetID:        a.PetID,
		Date:         a.Date.Format("2006-01-02"),
		Time:         a.Time,
		Kind:         a.Kind,
		Veterinarian: a.Veterinarian,
		Clinic:       a.Clinic,
		Address:      a.Address,
		Phone:        a.Phone,
		Reason:       a.Reason,
		Notes:        a.Notes,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
