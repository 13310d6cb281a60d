package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"guiapet/internal/ports/auth"
)

const (
	// refresh token vive más que el access token; el colaborador decide cuándo deja de servir
	refreshCookieMaxAge = 30 * 24 * time.Hour
	// el verifier PKCE solo tiene que durar la ida y vuelta al proveedor
	verifierCookieMaxAge = 10 * time.Minute
)

// SessionCookies lee y escribe las cookies de sesión: <prefix>-access-token,
// <prefix>-refresh-token y <prefix>-client (id estable del navegador para los flags de carga).
type SessionCookies struct {
	Prefix string
	Domain string
	Secure bool

	now func() time.Time
}

func NewSessionCookies(prefix, domain string, secure bool) *SessionCookies {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "gp"
	}
	return &SessionCookies{Prefix: prefix, Domain: strings.TrimSpace(domain), Secure: secure, now: time.Now}
}

func (c *SessionCookies) accessName() string  { return c.Prefix + "-access-token" }
func (c *SessionCookies) refreshName() string { return c.Prefix + "-refresh-token" }
func (c *SessionCookies) clientName() string  { return c.Prefix + "-client" }
func (c *SessionCookies) verifierName() string { return c.Prefix + "-code-verifier" }

// AccessToken: primero Authorization: Bearer, después la cookie.
func (c *SessionCookies) AccessToken(r *http.Request) string {
	if tok := bearerToken(r.Header.Get("Authorization")); tok != "" {
		return tok
	}
	return c.read(r, c.accessName())
}

func (c *SessionCookies) RefreshToken(r *http.Request) string {
	return c.read(r, c.refreshName())
}

// Set escribe los dos tokens de s.
func (c *SessionCookies) Set(w http.ResponseWriter, s auth.Session) {
	accessMaxAge := int(s.ExpiresAt.Sub(c.now()).Seconds())
	if accessMaxAge <= 0 {
		accessMaxAge = int(time.Hour.Seconds())
	}
	http.SetCookie(w, c.cookie(c.accessName(), s.AccessToken, accessMaxAge))
	if strings.TrimSpace(s.RefreshToken) != "" {
		http.SetCookie(w, c.cookie(c.refreshName(), s.RefreshToken, int(refreshCookieMaxAge.Seconds())))
	}
}

func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(c.accessName(), "", -1))
	http.SetCookie(w, c.cookie(c.refreshName(), "", -1))
}

// CodeVerifier guarda el verifier PKCE entre el inicio OAuth y la vuelta.
func (c *SessionCookies) SetCodeVerifier(w http.ResponseWriter, verifier string) {
	http.SetCookie(w, c.cookie(c.verifierName(), verifier, int(verifierCookieMaxAge.Seconds())))
}

func (c *SessionCookies) CodeVerifier(r *http.Request) string {
	return c.read(r, c.verifierName())
}

func (c *SessionCookies) ClearCodeVerifier(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(c.verifierName(), "", -1))
}

// ClientKey devuelve el id de cliente de la cookie. Sin cookie válida la key es la IP remota,
// así dos envíos simultáneos de un navegador nuevo comparten el flag; a los navegadores
// se les emite la cookie para los requests siguientes.
func (c *SessionCookies) ClientKey(w http.ResponseWriter, r *http.Request) string {
	if v := c.read(r, c.clientName()); v != "" {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	if w != nil && r.Header.Get("Authorization") == "" {
		http.SetCookie(w, c.cookie(c.clientName(), uuid.NewString(), int((365 * 24 * time.Hour).Seconds())))
	}
	return "ip:" + remoteIP(r)
}

func (c *SessionCookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *SessionCookies) read(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(ck.Value)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
