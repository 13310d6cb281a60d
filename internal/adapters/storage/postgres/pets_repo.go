package postgres

import (
	"context"
	"database/sql"
	"strings"

	"guiapet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, user_id,
	name, breed, age, weight, photo_url,
	health_status,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING `+petColumns,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Breed,
		p.Age,
		p.Weight,
		p.PhotoURL,
		p.HealthStatus,
		p.CreatedAt,
		p.UpdatedAt,
	)

	saved, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, mapErr(err)
	}
	return saved, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Breed,
		&p.Age,
		&p.Weight,
		&p.PhotoURL,
		&p.HealthStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
