package auth

import "context"

type ctxKey struct{}

// WithClaims guarda claims en ctx. Los adapters remotos toman de acá el token del usuario.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	return c, ok
}
