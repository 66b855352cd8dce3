package pets

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
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fixedLimit int

func (f fixedLimit) PetLimit(_ context.Context, _ string) (int, error) {
	return int(f), nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:    "  Milo  ",
		Species: "dog",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if p.Name != "Milo" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.Sex != SexUnknown {
		t.Fatalf("expected sex defaulted to unknown, got %s", p.Sex)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected timestamps pinned to now")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	cases := []struct {
		name  string
		owner string
		in    CreateInput
	}{
		{"empty owner", "", CreateInput{Name: "Milo", Species: "dog"}},
		{"empty name", "owner-1", CreateInput{Species: "dog"}},
		{"empty species", "owner-1", CreateInput{Name: "Milo"}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.owner, tc.in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_Create_EnforcesPlanLimit(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedLimit(2))

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), "owner-1", CreateInput{
			Name:    "Milo",
			Species: "dog",
		}); err != nil {
			t.Fatalf("Create #%d error: %v", i+1, err)
		}
	}

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:    "Luna",
		Species: "cat",
	}); err != ErrPetLimitReached {
		t.Fatalf("expected ErrPetLimitReached, got %v", err)
	}

	// otro dueño no comparte el límite
	if _, err := svc.Create(context.Background(), "owner-2", CreateInput{
		Name:    "Rocky",
		Species: "dog",
	}); err != nil {
		t.Fatalf("expected create for other owner, got %v", err)
	}
}

func TestService_Create_UnlimitedWhenLimitNonPositive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedLimit(0))

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), "owner-1", CreateInput{
			Name:    "Milo",
			Species: "dog",
		}); err != nil {
			t.Fatalf("Create #%d error: %v", i+1, err)
		}
	}
}

func TestService_UpdateProfile_PatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	bd := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Species:   "dog",
		Breed:     "mixed",
		BirthDate: &bd,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }

	name := "Milo Updated"
	updated, err := svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Name != "Milo Updated" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	// campos no enviados no se tocan
	if updated.Breed != "mixed" || updated.BirthDate == nil {
		t.Fatalf("expected untouched fields preserved, got %#v", updated)
	}
	if updated.UpdatedAt != later {
		t.Fatalf("expected UpdatedAt to advance")
	}

	// birth_date: null limpia la fecha
	cleared, err := svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{
		BirthDate: PatchBirthDate{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("UpdateProfile clear error: %v", err)
	}
	if cleared.BirthDate != nil {
		t.Fatalf("expected birth date cleared, got %v", cleared.BirthDate)
	}
}

func TestService_UpdateProfile_RejectsEmptyName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:    "Milo",
		Species: "dog",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	empty := "   "
	if _, err := svc.UpdateProfile(context.Background(), p.ID, UpdateProfileInput{Name: &empty}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_UpdateProfile_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	name := "Milo"
	if _, err := svc.UpdateProfile(context.Background(), "nope", UpdateProfileInput{Name: &name}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
