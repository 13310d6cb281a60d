package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"guiapet/internal/ports/auth"
)

// accessClaims es el subset del JWT de GoTrue que usamos.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier.
// Con JWTSecret verifica localmente (HS256); sin secret chequea exp sin firma y
// delega la validez al endpoint /user.
type Verifier struct {
	client *Client
	secret []byte
	now    func() time.Time
}

func NewVerifier(client *Client, jwtSecret string) *Verifier {
	v := &Verifier{client: client, now: time.Now}
	if s := strings.TrimSpace(jwtSecret); s != "" {
		v.secret = []byte(s)
	}
	return v
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}
	if len(v.secret) > 0 {
		return v.verifyLocal(token)
	}
	return v.verifyRemote(ctx, token)
}

func (v *Verifier) verifyLocal(token string) (auth.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)

	var c accessClaims
	_, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, auth.ErrTokenExpired
		}
		return auth.Claims{}, auth.ErrUnauthorized
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}
	return auth.Claims{UserID: sub, Email: strings.TrimSpace(c.Email), AccessToken: token}, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil || !v.client.Configured() {
		return auth.Claims{}, auth.ErrNotConfigured
	}

	// Sin secret no podemos validar firma, pero sí evitar un round-trip con un token vencido.
	var c accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return auth.Claims{}, auth.ErrUnauthorized
	}
	if c.ExpiresAt != nil && !v.now().Before(c.ExpiresAt.Time) {
		return auth.Claims{}, auth.ErrTokenExpired
	}

	u, err := v.client.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			return auth.Claims{}, err
		}
		return auth.Claims{}, fmt.Errorf("supabase verify failed: %w", err)
	}

	return auth.Claims{UserID: u.ID, Email: u.Email, AccessToken: token}, nil
}
