package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"guiapet/internal/domain/vaccines"
)

type VaccinesRepo struct {
	s *Store
}

// date y next_date viajan como "YYYY-MM-DD".
type vaccineRow struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	NextDate  string    `json:"next_date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r vaccineRow) toVaccine() (vaccines.Vaccine, error) {
	date, err := vaccines.ParseDate(r.Date)
	if err != nil {
		return vaccines.Vaccine{}, fmt.Errorf("vaccine %s date: %w", r.ID, err)
	}
	next, err := vaccines.ParseDate(r.NextDate)
	if err != nil {
		return vaccines.Vaccine{}, fmt.Errorf("vaccine %s next_date: %w", r.ID, err)
	}
	return vaccines.Vaccine{
		ID:        r.ID,
		PetID:     r.PetID,
		Name:      r.Name,
		Date:      date,
		NextDate:  next,
		Notes:     deref(r.Notes),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// CreateMany manda todas las filas en un solo insert (PostgREST lo hace en una transacción).
func (r *VaccinesRepo) CreateMany(ctx context.Context, vs []vaccines.Vaccine) error {
	if len(vs) == 0 {
		return nil
	}

	rows := make([]vaccineRow, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, vaccineRow{
			ID:        v.ID,
			PetID:     v.PetID,
			Name:      v.Name,
			Date:      vaccines.FormatDate(v.Date),
			NextDate:  vaccines.FormatDate(v.NextDate),
			Notes:     optional(v.Notes),
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		})
	}
	return r.s.insert(ctx, "vaccines", rows, nil)
}

func (r *VaccinesRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.Vaccine, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return []vaccines.Vaccine{}, nil
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("pet_id", eq(petID))
	q.Set("order", "next_date.asc")

	var rows []vaccineRow
	if err := r.s.selectRows(ctx, "vaccines", q, &rows); err != nil {
		return nil, err
	}

	out := make([]vaccines.Vaccine, 0, len(rows))
	for _, row := range rows {
		v, err := row.toVaccine()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
