package visits

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Visit
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Visit{}}
}

func (r *testRepo) Create(ctx context.Context, v Visit) error {
	if v.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Visit, error) {
	v, ok := r.byID[id]
	if !ok {
		return Visit{}, errors.New("repo: not found")
	}
	return v, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, _ ListFilter) ([]Visit, error) {
	out := make([]Visit, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestService_Create_NormalizesDates(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	next := time.Date(2026, 6, 1, 14, 0, 0, 0, time.FixedZone("X", 2*3600))
	v, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Date:        time.Date(2026, 2, 28, 23, 30, 0, 0, time.FixedZone("X", -3*3600)),
		Kind:        "consulta",
		Diagnosis:   "otitis",
		Treatment:   "gotas 7 días",
		WeightKg:    12.4,
		NextCheckup: &next,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// 23:30 UTC-3 del 28 ya es 1 de marzo en UTC
	wantDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !v.Date.Equal(wantDate) {
		t.Fatalf("expected civil day %v, got %v", wantDate, v.Date)
	}
	wantNext := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if v.NextCheckup == nil || !v.NextCheckup.Equal(wantNext) {
		t.Fatalf("expected next checkup %v, got %v", wantNext, v.NextCheckup)
	}
	if v.CreatedAt != now {
		t.Fatalf("expected CreatedAt pinned to now")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []struct {
		name  string
		petID string
		in    CreateInput
	}{
		{"empty pet", "", CreateInput{Date: time.Now(), Kind: "consulta", Diagnosis: "x"}},
		{"zero date", "pet-1", CreateInput{Kind: "consulta", Diagnosis: "x"}},
		{"empty kind", "pet-1", CreateInput{Date: time.Now(), Diagnosis: "x"}},
		{"empty diagnosis", "pet-1", CreateInput{Date: time.Now(), Kind: "consulta"}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.petID, tc.in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}
