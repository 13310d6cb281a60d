package pets

import "context"

type Repository interface {
	// Create persiste p y devuelve la fila tal como quedó guardada (id/fechas del store si los asigna).
	Create(ctx context.Context, p Pet) (Pet, error)
	// ListByOwner ordena por created_at descendente (más reciente primero).
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
