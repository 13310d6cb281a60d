package middleware

import (
	"context"
	"strings"

	"guiapet/internal/ports/auth"
)

// GetClaims devuelve los claims que dejó el SessionGate, si el request tiene sesión.
func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := auth.ClaimsFrom(ctx)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return auth.Claims{}, false
	}
	return c, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
