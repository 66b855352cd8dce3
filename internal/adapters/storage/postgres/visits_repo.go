package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-care-tracker/internal/domain/visits"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_visits (
			id, pet_id,
			date, kind, veterinarian,
			diagnosis, treatment,
			weight_kg, temperature_c,
			notes, next_checkup,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		v.ID,
		v.PetID,
		v.Date,
		v.Kind,
		v.Veterinarian,
		v.Diagnosis,
		v.Treatment,
		v.WeightKg,
		v.TemperatureC,
		v.Notes,
		toNullDate(v.NextCheckup),
		v.CreatedAt,
	)
	return err
}

func (r *VisitsRepo) GetByID(ctx context.Context, id string) (visits.Visit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return visits.Visit{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id,
			date, kind, veterinarian,
			diagnosis, treatment,
			weight_kg, temperature_c,
			notes, next_checkup,
			created_at
		FROM medical_visits
		WHERE id = $1
	`, id)

	v, err := scanVisit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, ErrNotFound
		}
		return visits.Visit{}, err
	}
	return v, nil
}

func (r *VisitsRepo) ListByPet(ctx context.Context, petID string, filter visits.ListFilter) ([]visits.Visit, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			date, kind, veterinarian,
			diagnosis, treatment,
			weight_kg, temperature_c,
			notes, next_checkup,
			created_at
		FROM medical_visits
		WHERE pet_id = $1
	`)

	args := []any{petID}
	argN := 2

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}
	if strings.TrimSpace(filter.Query) != "" {
		sb.WriteString(fmt.Sprintf(" AND (diagnosis ILIKE $%d OR treatment ILIKE $%d OR notes ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY date DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

func scanVisit(row rowScanner) (visits.Visit, error) {
	var v visits.Visit
	var next sql.NullTime

	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.Date,
		&v.Kind,
		&v.Veterinarian,
		&v.Diagnosis,
		&v.Treatment,
		&v.WeightKg,
		&v.TemperatureC,
		&v.Notes,
		&next,
		&v.CreatedAt,
	); err != nil {
		return visits.Visit{}, err
	}

	v.NextCheckup = fromNullDate(next)
	return v, nil
}
