package vaccines

import "context"

type Repository interface {
	// CreateMany inserta todas las filas en una sola operación.
	CreateMany(ctx context.Context, vs []Vaccine) error
	// ListByPet ordena por next_date ascendente.
	ListByPet(ctx context.Context, petID string) ([]Vaccine, error)
}
