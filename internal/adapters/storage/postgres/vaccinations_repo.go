package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, pet_id,
			name, applied_at, next_dose,
			veterinarian, lot, lab, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		v.ID,
		v.PetID,
		v.Name,
		v.AppliedAt,
		toNullDate(v.NextDose),
		v.Veterinarian,
		v.Lot,
		v.Lab,
		string(v.Status),
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			name = $2,
			applied_at = $3,
			next_dose = $4,
			veterinarian = $5,
			lot = $6,
			lab = $7,
			status = $8,
			updated_at = $9
		WHERE id = $1
	`,
		v.ID,
		v.Name,
		v.AppliedAt,
		toNullDate(v.NextDose),
		v.Veterinarian,
		v.Lot,
		v.Lab,
		string(v.Status),
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccinations.Vaccination{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id,
			name, applied_at, next_dose,
			veterinarian, lot, lab, status,
			created_at, updated_at
		FROM vaccinations
		WHERE id = $1
	`, id)

	v, err := scanVaccination(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return vaccinations.Vaccination{}, ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}
	return v, nil
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			name, applied_at, next_dose,
			veterinarian, lot, lab, status,
			created_at, updated_at
		FROM vaccinations
		WHERE pet_id = $1
		ORDER BY applied_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

func scanVaccination(row rowScanner) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	var status string
	var next sql.NullTime

	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.Name,
		&v.AppliedAt,
		&next,
		&v.Veterinarian,
		&v.Lot,
		&v.Lab,
		&status,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}

	v.Status = vaccinations.Status(status)
	v.NextDose = fromNullDate(next)

	return v, nil
}
