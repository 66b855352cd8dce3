package visits

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/visits", func(vr chi.Router) {
		vr.Post("/", createVisitHandler(svc, petsSvc))
		vr.Get("/", listVisitsHandler(svc, petsSvc))
		vr.Get("/{visitID}", getVisitHandler(svc, petsSvc))
	})
}

type createVisitRequest struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	Kind         string  `json:"kind"`
	Veterinarian string  `json:"veterinarian"`
	Diagnosis    string  `json:"diagnosis"`
	Treatment    string  `json:"treatment"`
	WeightKg     float64 `json:"weight_kg"`
	TemperatureC float64 `json:"temperature_c"`
	Notes        string  `json:"notes"`
	NextCheckup  string  `json:"next_checkup"` // YYYY-MM-DD opcional
}

type visitResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Date         string    `json:"date"`
	Kind         string    `json:"kind"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	Diagnosis    string    `json:"diagnosis"`
	Treatment    string    `json:"treatment,omitempty"`
	WeightKg     float64   `json:"weight_kg,omitempty"`
	TemperatureC float64   `json:"temperature_c,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	NextCheckup  string    `json:"next_checkup,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// createVisitHandler registra una visita médica en el historial.
// @Summary Registrar visita médica
// @Tags visits
// @Router /pets/{petID}/visits [post]
func createVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Date), time.UTC)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var next *time.Time
		if strings.TrimSpace(req.NextCheckup) != "" {
			t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.NextCheckup), time.UTC)
			if err != nil {
				http.Error(w, "next_checkup must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			next = &t
		}

		v, err := svc.Create(r.Context(), petID, CreateInput{
			Date:         date,
			Kind:         req.Kind,
			Veterinarian: req.Veterinarian,
			Diagnosis:    req.Diagnosis,
			Treatment:    req.Treatment,
			WeightKg:     req.WeightKg,
			TemperatureC: req.TemperatureC,
			Notes:        req.Notes,
			NextCheckup:  next,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

// listVisitsHandler lista el historial médico de una mascota.
// Query params: from, to (YYYY-MM-DD), q, limit.
// @Summary Listar historial médico
// @Tags visits
// @Router /pets/{petID}/visits [get]
func listVisitsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		filter := ListFilter{}
		q := r.URL.Query()

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
		filter.Query = q.Get("q")
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

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "visitID"))
		if err != nil || v.PetID != petID {
			http.Error(w, "visit not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

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

func toVisitResponse(v Visit) visitResponse {
	next := ""
	if v.NextCheckup != nil {
		next = v.NextCheckup.Format("2006-01-02")
	}
	return visitResponse{
		ID:           v.ID,
		PetID:        v.PetID,
		Date:         v.Date.Format("2006-01-02"),
		Kind:         v.Kind,
		Veterinarian: v.Veterinarian,
		Diagnosis:    v.Diagnosis,
		Treatment:    v.Treatment,
		WeightKg:     v.WeightKg,
		TemperatureC: v.TemperatureC,
		Notes:        v.Notes,
		NextCheckup:  next,
		CreatedAt:    v.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
