package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// Errores esperables: ErrUnauthorized, ErrTokenExpired; cualquier otro es falla del colaborador.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
