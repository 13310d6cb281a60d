package postgres

import (
	"context"
	"database/sql"
	"strings"

	"guiapet/internal/domain/vaccines"
)

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

// CreateMany inserta en una transacción: o entran todas o ninguna.
func (r *VaccinesRepo) CreateMany(ctx context.Context, vs []vaccines.Vaccine) error {
	if len(vs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vaccines (
			id, pet_id,
			name, date, next_date, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range vs {
		// date/next_date son DATE: mandamos "YYYY-MM-DD" para no depender de la zona de la sesión
		if _, err := stmt.ExecContext(ctx,
			v.ID,
			v.PetID,
			v.Name,
			vaccines.FormatDate(v.Date),
			vaccines.FormatDate(v.NextDate),
			v.Notes,
			v.CreatedAt,
			v.UpdatedAt,
		); err != nil {
			return mapErr(err)
		}
	}

	return tx.Commit()
}

func (r *VaccinesRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.Vaccine, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return []vaccines.Vaccine{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			name, date, next_date, notes,
			created_at, updated_at
		FROM vaccines
		WHERE pet_id = $1
		ORDER BY next_date ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		var v vaccines.Vaccine
		if err := rows.Scan(
			&v.ID,
			&v.PetID,
			&v.Name,
			&v.Date,
			&v.NextDate,
			&v.Notes,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		// pgx devuelve DATE como medianoche UTC; normalizamos igual por si acaso
		v.Date = vaccines.DateOf(v.Date)
		v.NextDate = vaccines.DateOf(v.NextDate)
		out = append(out, v)
	}

	return out, rows.Err()
}
