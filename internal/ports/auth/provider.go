package auth

import "context"

// Provider es lo que consumimos del servicio externo de auth.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (User, error)
	// OAuthURL devuelve la URL a la que el navegador debe ir para iniciar el login externo.
	// codeChallenge es el S256 del verifier PKCE; la vuelta trae ?code= para ExchangeCode.
	OAuthURL(ctx context.Context, provider, redirectTo, codeChallenge string) (string, error)
	ExchangeCode(ctx context.Context, authCode, codeVerifier string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (User, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Configured() bool
}
