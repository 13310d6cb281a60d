package pets

import "time"

// HealthyStatus es el estado de salud con el que nace toda mascota.
const HealthyStatus = "Saudável"

// Pet representa el perfil básico de una mascota de un usuario.
type Pet struct {
	ID          string
	OwnerUserID string

	Name  string
	Breed string

	// Texto libre, opcionales.
	Age      string
	Weight   string
	PhotoURL string

	HealthStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}
