package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	mem "pet-care-tracker/internal/adapters/storage/memory"
	"pet-care-tracker/internal/domain/appointments"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoader_Seed_LoadsValidRowsAndSkipsDirtyOnes(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "pets.json", `[
		{"id": "pet-1", "owner_user_id": "owner-1", "name": "Milo", "species": "dog", "sex": "male"},
		{"id": "pet-2", "owner_user_id": "owner-1", "name": "Luna", "species": "cat", "birth_date": "2021-06-15"},
		{"id": "pet-3", "owner_user_id": "owner-1", "name": ""}
	]`)
	writeFile(t, dir, "appointments.json", `[
		{"id": "appt-1", "pet_id": "pet-1", "date": "2026-03-10", "time": "10:30", "kind": "checkup", "status": "scheduled"},
		{"id": "appt-2", "pet_id": "pet-1", "date": "not-a-date", "kind": "grooming"},
		{"id": "appt-3", "pet_id": "pet-2", "date": "2026-03-12", "kind": "vaccine"}
	]`)
	writeFile(t, dir, "vaccinations.json", `[
		{"id": "vacc-1", "pet_id": "pet-1", "name": "Rabies", "applied_at": "2026-01-10", "next_dose": "2026-07-10", "lab": "VetLab"},
		{"id": "", "pet_id": "pet-1", "name": "Parvo", "applied_at": "2026-01-10"}
	]`)
	// visits.json ausente a propósito: se ignora

	petRepo := mem.NewPetRepo()
	apptRepo := mem.NewAppointmentRepo()
	vaccRepo := mem.NewVaccinationRepo()
	visitRepo := mem.NewVisitRepo()

	loader := NewLoader(petRepo, apptRepo, vaccRepo, visitRepo, nil)

	if err := loader.Seed(context.Background(), dir); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	ctx := context.Background()

	petsOut, err := petRepo.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(petsOut) != 2 {
		t.Fatalf("expected 2 pets seeded (dirty row skipped), got %d", len(petsOut))
	}

	luna, err := petRepo.GetByID(ctx, "pet-2")
	if err != nil {
		t.Fatalf("GetByID pet-2: %v", err)
	}
	if luna.BirthDate == nil || luna.BirthDate.Format("2006-01-02") != "2021-06-15" {
		t.Fatalf("expected birth date parsed, got %v", luna.BirthDate)
	}

	appts1, err := apptRepo.ListByPet(ctx, "pet-1", appointments.ListFilter{})
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(appts1) != 1 || appts1[0].ID != "appt-1" {
		t.Fatalf("expected only appt-1 for pet-1 (bad date skipped), got %#v", appts1)
	}
	if appts1[0].Status != appointments.StatusScheduled {
		t.Fatalf("expected status scheduled, got %s", appts1[0].Status)
	}

	// status ausente => scheduled
	appts2, err := apptRepo.ListByPet(ctx, "pet-2", appointments.ListFilter{})
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(appts2) != 1 || appts2[0].Status != appointments.StatusScheduled {
		t.Fatalf("expected appt-3 defaulted to scheduled, got %#v", appts2)
	}

	vaccs, err := vaccRepo.ListByPet(ctx, "pet-1")
	if err != nil {
		t.Fatalf("ListByPet vaccinations error: %v", err)
	}
	if len(vaccs) != 1 || vaccs[0].ID != "vacc-1" {
		t.Fatalf("expected only vacc-1 (missing id skipped), got %#v", vaccs)
	}
	if vaccs[0].NextDose == nil || vaccs[0].NextDose.Format("2006-01-02") != "2026-07-10" {
		t.Fatalf("expected next dose parsed, got %v", vaccs[0].NextDose)
	}
}

func TestLoader_Seed_MissingDirIsNoop(t *testing.T) {
	petRepo := mem.NewPetRepo()
	apptRepo := mem.NewAppointmentRepo()
	vaccRepo := mem.NewVaccinationRepo()
	visitRepo := mem.NewVisitRepo()

	loader := NewLoader(petRepo, apptRepo, vaccRepo, visitRepo, nil)

	if err := loader.Seed(context.Background(), filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
}

func TestLoader_Seed_InvalidJSONAborts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pets.json", `{not json`)

	petRepo := mem.NewPetRepo()
	apptRepo := mem.NewAppointmentRepo()
	vaccRepo := mem.NewVaccinationRepo()
	visitRepo := mem.NewVisitRepo()

	loader := NewLoader(petRepo, apptRepo, vaccRepo, visitRepo, nil)

	if err := loader.Seed(context.Background(), dir); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
