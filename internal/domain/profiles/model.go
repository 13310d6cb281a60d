package profiles

import "time"

// Profile es la fila de "profiles" creada al registrarse.
type Profile struct {
	ID        string // mismo id que el usuario de auth
	Email     string
	FullName  string
	AvatarURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
