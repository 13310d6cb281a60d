package rest

import (
	"context"
	"time"

	"guiapet/internal/domain/profiles"
)

type ProfilesRepo struct {
	s *Store
}

type profileRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	return r.s.insert(ctx, "profiles", []profileRow{{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: optional(p.AvatarURL),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}}, nil)
}
