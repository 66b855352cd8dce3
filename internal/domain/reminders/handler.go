package reminders

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reminders", listRemindersHandler(svc))
}

type reminderResponse struct {
	PetID      string `json:"pet_id"`
	PetName    string `json:"pet_name"`
	EventID    string `json:"event_id"`
	EventKind  string `json:"event_kind"`
	EventDate  string `json:"event_date"`
	EventTime  string `json:"event_time,omitempty"`
	EventLabel string `json:"event_label"`
	Details    string `json:"details,omitempty"`
}

// listRemindersHandler devuelve el feed de próximos recordatorios
// (citas agendadas + próximas dosis de vacunas) del usuario.
// Query param: days (default 30, >= 0).
// @Summary Próximos recordatorios
// @Tags reminders
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days := DefaultWindowDays
		if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		items, err := svc.Upcoming(r.Context(), claims.UserID, days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, reminderResponse{
				PetID:      rem.PetID,
				PetName:    rem.PetName,
				EventID:    rem.EventID,
				EventKind:  string(rem.EventKind),
				EventDate:  rem.EventDate,
				EventTime:  rem.EventTime,
				EventLabel: rem.EventLabel,
				Details:    rem.Details,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
