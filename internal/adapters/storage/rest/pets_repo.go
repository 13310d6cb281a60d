package rest

import (
	"context"
	"net/url"
	"strings"
	"time"

	"guiapet/internal/domain/pets"
)

type PetsRepo struct {
	s *Store
}

type petRow struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Breed        string    `json:"breed"`
	Age          *string   `json:"age"`
	Weight       *string   `json:"weight"`
	PhotoURL     *string   `json:"photo_url"`
	HealthStatus string    `json:"health_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toPetRow(p pets.Pet) petRow {
	return petRow{
		ID:           p.ID,
		UserID:       p.OwnerUserID,
		Name:         p.Name,
		Breed:        p.Breed,
		Age:          optional(p.Age),
		Weight:       optional(p.Weight),
		PhotoURL:     optional(p.PhotoURL),
		HealthStatus: p.HealthStatus,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r petRow) toPet() pets.Pet {
	return pets.Pet{
		ID:           r.ID,
		OwnerUserID:  r.UserID,
		Name:         r.Name,
		Breed:        r.Breed,
		Age:          deref(r.Age),
		Weight:       deref(r.Weight),
		PhotoURL:     deref(r.PhotoURL),
		HealthStatus: r.HealthStatus,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	var out []petRow
	if err := r.s.insert(ctx, "pets", []petRow{toPetRow(p)}, &out); err != nil {
		return pets.Pet{}, err
	}
	if len(out) == 0 {
		// sin representación (RLS de select): devolvemos lo que mandamos
		return p, nil
	}
	return out[0].toPet(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", eq(ownerUserID))
	q.Set("order", "created_at.desc")

	var rows []petRow
	if err := r.s.selectRows(ctx, "pets", q, &rows); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toPet())
	}
	return out, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
