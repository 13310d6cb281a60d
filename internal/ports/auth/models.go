package auth

import (
	"errors"
	"time"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string

	// Token crudo con el que se resolvieron los claims (vacío en modo dev).
	AccessToken string
}

// User es la identidad opaca emitida por el colaborador de auth.
type User struct {
	ID       string
	Email    string
	FullName string
}

// Session es el par de tokens vigente más el usuario.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}

var (
	// ErrUnauthorized: token ausente, inválido o revocado.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenExpired: token bien formado pero vencido; admite refresh.
	ErrTokenExpired = errors.New("token expired")
	// ErrNotConfigured: el colaborador no tiene URL/key.
	ErrNotConfigured = errors.New("auth provider not configured")
)

// AuthError es un error de autenticación cuyo Message se muestra tal cual al usuario.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "auth error"
	}
	return e.Message
}
