package vaccinations

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Vaccination
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Vaccination{}}
}

func (r *testRepo) Create(ctx context.Context, v Vaccination) error {
	if v.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[v.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Update(ctx context.Context, v Vaccination) error {
	if _, ok := r.byID[v.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Vaccination, error) {
	v, ok := r.byID[id]
	if !ok {
		return Vaccination{}, errRepoNotFound
	}
	return v, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsStatusActive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	next := time.Date(2026, 9, 15, 18, 0, 0, 0, time.FixedZone("X", 3*3600))
	v, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:      "Rabies",
		AppliedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		NextDose:  &next,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if v.Status != StatusActive {
		t.Fatalf("expected default status active, got %s", v.Status)
	}
	// la próxima dosis se normaliza a día calendario UTC
	wantNext := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if v.NextDose == nil || !v.NextDose.Equal(wantNext) {
		t.Fatalf("expected next dose %v, got %v", wantNext, v.NextDose)
	}
}

func TestService_Create_ValidatesStatusEnum(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:      "Rabies",
		AppliedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:    "vencida",
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []struct {
		name  string
		petID string
		in    CreateInput
	}{
		{"empty pet", "", CreateInput{Name: "Rabies", AppliedAt: time.Now()}},
		{"empty name", "pet-1", CreateInput{AppliedAt: time.Now()}},
		{"zero applied_at", "pet-1", CreateInput{Name: "Rabies"}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.petID, tc.in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_Expire_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)

	svc.now = func() time.Time { return now1 }
	v, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:      "Rabies",
		AppliedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	expired, err := svc.Expire(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("Expire error: %v", err)
	}
	if expired.Status != StatusExpired {
		t.Fatalf("expected expired, got %s", expired.Status)
	}
	if expired.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt to advance on expire")
	}

	// segunda vez no cambia nada
	expired2, err := svc.Expire(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("Expire #2 error: %v", err)
	}
	if expired2.Status != StatusExpired || expired2.UpdatedAt != now2 {
		t.Fatalf("expected idempotent expire, got %#v", expired2)
	}
}
