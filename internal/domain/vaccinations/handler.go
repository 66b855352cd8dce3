package vaccinations

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/vaccinations", func(vr chi.Router) {
		vr.Post("/", createVaccinationHandler(svc, petsSvc))
		vr.Get("/", listVaccinationsHandler(svc, petsSvc))
		vr.Get("/{vaccID}", getVaccinationHandler(svc, petsSvc))
		vr.Post("/{vaccID}/expire", expireVaccinationHandler(svc, petsSvc))
	})
}

type createVaccinationRequest struct {
	Name         string `json:"name"`
	AppliedAt    string `json:"applied_at"` // YYYY-MM-DD
	NextDose     string `json:"next_dose"`  // YYYY-MM-DD opcional
	Veterinarian string `json:"veterinarian"`
	Lot          string `json:"lot"`
	Lab          string `json:"lab"`
	Status       string `json:"status"` // vacío => active
}

type vaccinationResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Name         string    `json:"name"`
	AppliedAt    string    `json:"applied_at"`
	NextDose     string    `json:"next_dose,omitempty"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	Lot          string    `json:"lot,omitempty"`
	Lab          string    `json:"lab,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// createVaccinationHandler registra una vacuna aplicada.
// @Summary Registrar vacuna
// @Tags vaccinations
// @Router /pets/{petID}/vaccinations [post]
func createVaccinationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req createVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		applied, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.AppliedAt), time.UTC)
		if err != nil {
			http.Error(w, "applied_at must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var next *time.Time
		if strings.TrimSpace(req.NextDose) != "" {
			t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.NextDose), time.UTC)
			if err != nil {
				http.Error(w, "next_dose must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			next = &t
		}

		v, err := svc.Create(r.Context(), petID, CreateInput{
			Name:         req.Name,
			AppliedAt:    applied,
			NextDose:     next,
			Veterinarian: req.Veterinarian,
			Lot:          req.Lot,
			Lab:          req.Lab,
			Status:       req.Status,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

// listVaccinationsHandler lista las vacunas de una mascota.
// @Summary Listar vacunas
// @Tags vaccinations
// @Router /pets/{petID}/vaccinations [get]
func listVaccinationsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVaccinationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vaccID"))
		if err != nil || v.PetID != petID {
			http.Error(w, "vaccination not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toVaccinationResponse(v))
	}
}

func expireVaccinationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		vaccID := chi.URLParam(r, "vaccID")
		current, err := svc.GetByID(r.Context(), vaccID)
		if err != nil || current.PetID != petID {
			http.Error(w, "vaccination not found", http.StatusNotFound)
			return
		}

		v, err := svc.Expire(r.Context(), vaccID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toVaccinationResponse(v))
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

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	next := ""
	if v.NextDose != nil {
		next = v.NextDose.Format("2006-01-02")
	}
	return vaccinationResponse{
		ID:           v.ID,
		PetID:        v.PetID,
		Name:         v.Name,
		AppliedAt:    v.AppliedAt.Format("2006-01-02"),
		NextDose:     next,
		Veterinarian: v.Veterinarian,
		Lot:          v.Lot,
		Lab:          v.Lab,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
