package postgres

import (
	"context"
	"database/sql"

	"guiapet/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, email, full_name, avatar_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.Email,
		p.FullName,
		p.AvatarURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapErr(err)
}
