package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-tracker/internal/router"
)

func TestHTTP_EndToEnd_RemindersFeed(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// Fechas relativas a hoy: el feed usa el reloj real.
	today := time.Now().UTC()
	plus := func(days int) string {
		return today.AddDate(0, 0, days).Format("2006-01-02")
	}

	// 1) Owner registra mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"species": "dog",
		"breed":   "mixed",
		"sex":     "male",
	})

	// 2) Otro usuario no ve la mascota ni sus registros
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get pet by stranger, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/appointments", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 list appointments by stranger, got %d", st)
		}
	}

	// 3) Cita agendada a +10 días
	createChild(t, ts.URL, ownerID, "/pets/"+petID+"/appointments", map[string]any{
		"date":         plus(10),
		"time":         "10:30",
		"kind":         "checkup",
		"veterinarian": "Dr. Smith",
		"clinic":       "Happy Paws",
	})

	// 4) Cita a +3 días que se cancela: no debe aparecer en el feed
	cancelledID := createChild(t, ts.URL, ownerID, "/pets/"+petID+"/appointments", map[string]any{
		"date": plus(3),
		"kind": "grooming",
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/appointments/"+cancelledID+"/cancel", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
	}

	// 5) Vacuna con próxima dosis a +5 días
	createChild(t, ts.URL, ownerID, "/pets/"+petID+"/vaccinations", map[string]any{
		"name":       "Rabies",
		"applied_at": plus(-180),
		"next_dose":  plus(5),
		"lab":        "VetLab",
	})

	// 6) Vacuna vencida con dosis a +6 días: tampoco aparece
	expiredID := createChild(t, ts.URL, ownerID, "/pets/"+petID+"/vaccinations", map[string]any{
		"name":       "Parvo",
		"applied_at": plus(-365),
		"next_dose":  plus(6),
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/vaccinations/"+expiredID+"/expire", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 expire, got %d body=%s", st, string(body))
		}
	}

	type reminder struct {
		PetID      string `json:"pet_id"`
		PetName    string `json:"pet_name"`
		EventID    string `json:"event_id"`
		EventKind  string `json:"event_kind"`
		EventDate  string `json:"event_date"`
		EventTime  string `json:"event_time"`
		EventLabel string `json:"event_label"`
		Details    string `json:"details"`
	}

	// 7) Feed por defecto (30 días): vacuna (+5) antes que cita (+10)
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
		}

		var feed []reminder
		if err := json.Unmarshal(body, &feed); err != nil {
			t.Fatalf("unmarshal reminders: %v body=%s", err, string(body))
		}
		if len(feed) != 2 {
			t.Fatalf("expected 2 reminders, got %d body=%s", len(feed), string(body))
		}

		if feed[0].EventKind != "vaccination" || feed[0].EventDate != plus(5) {
			t.Fatalf("expected vaccination at %s first, got %#v", plus(5), feed[0])
		}
		if feed[0].PetName != "Milo" || feed[0].EventLabel != "Rabies" {
			t.Fatalf("unexpected vaccination projection: %#v", feed[0])
		}
		if feed[0].Details != "Lab: VetLab, Vet: N/A" {
			t.Fatalf("unexpected vaccination details: %q", feed[0].Details)
		}

		if feed[1].EventKind != "appointment" || feed[1].EventDate != plus(10) {
			t.Fatalf("expected appointment at %s second, got %#v", plus(10), feed[1])
		}
		if feed[1].EventTime != "10:30" || feed[1].Details != "Vet: Dr. Smith - Clinic: Happy Paws" {
			t.Fatalf("unexpected appointment projection: %#v", feed[1])
		}
	}

	// 8) Ventana corta (7 días): queda solo la vacuna
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders?days=7", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders days=7, got %d body=%s", st, string(body))
		}
		var feed []reminder
		if err := json.Unmarshal(body, &feed); err != nil {
			t.Fatalf("unmarshal reminders: %v", err)
		}
		if len(feed) != 1 || feed[0].EventKind != "vaccination" {
			t.Fatalf("expected only vaccination within 7 days, got %s", string(body))
		}
	}

	// 9) El feed del otro usuario está vacío
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", strangerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders for stranger, got %d", st)
		}
		var feed []reminder
		if err := json.Unmarshal(body, &feed); err != nil {
			t.Fatalf("unmarshal reminders: %v", err)
		}
		if len(feed) != 0 {
			t.Fatalf("expected empty feed for stranger, got %s", string(body))
		}
	}
}

func TestHTTP_Reminders_RejectsBadWindow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	for _, q := range []string{"?days=-1", "?days=abc"} {
		st, _ := doReq(t, ts.URL, "GET", "/reminders"+q, "owner-1", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", q, st)
		}
	}
}

func TestHTTP_Reminders_RequiresUser(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// sin X-Debug-User-ID en modo dev => 401
	st, _ := doReq(t, ts.URL, "GET", "/reminders", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}
}

func TestHTTP_Appointment_TerminalStateConflicts(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Luna",
		"species": "cat",
	})

	apptID := createChild(t, ts.URL, ownerID, "/pets/"+petID+"/appointments", map[string]any{
		"date": time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02"),
		"kind": "checkup",
	})

	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/appointments/"+apptID+"/complete", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/appointments/"+apptID+"/cancel", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 cancelling completed appointment, got %d", st)
		}
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

// createChild crea un recurso anidado de la mascota (cita, vacuna, visita)
// y devuelve su id.
func createChild(t *testing.T, baseURL, userID, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("%s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
