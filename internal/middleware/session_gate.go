package middleware

import (
	"errors"
	"net/http"
	"path"
	"strings"
	"sync"

	"guiapet/internal/domain/session"
	"guiapet/internal/platform/logger"
	"guiapet/internal/ports/auth"
)

const (
	LoginPath = "/login"
	HomePath  = "/"

	debugUserHeader = "X-Debug-User-ID"
)

var staticExt = map[string]struct{}{
	".svg": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".ico": {},
}

type GateConfig struct {
	Verifier auth.AuthVerifier
	Provider auth.Provider
	Cookies  *SessionCookies
	Hub      *session.Hub
	Log      logger.Logger

	// Configured=false => modo degradado: no se exige sesión (se avisa una vez).
	Configured bool

	// Solo en modo degradado: acepta X-Debug-User-ID como usuario.
	AllowDebugHeader bool
}

type gate struct {
	cfg      GateConfig
	warnOnce sync.Once
}

// SessionGate resuelve la sesión de cada request y aplica las redirecciones:
//   - sin sesión fuera de /login => /login
//   - con sesión en /login => /
//
// Si el colaborador de auth falla el request sigue sin redirección (fail-open) y se loguea.
func SessionGate(cfg GateConfig) func(http.Handler) http.Handler {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.Cookies == nil {
		cfg.Cookies = NewSessionCookies("", "", false)
	}
	g := &gate{cfg: cfg}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if !g.cfg.Configured {
				g.warnOnce.Do(func() {
					g.cfg.Log.Warn("auth collaborator not configured, session gate disabled", nil)
				})
				if g.cfg.AllowDebugHeader {
					if uid := strings.TrimSpace(r.Header.Get(debugUserHeader)); uid != "" {
						r = r.WithContext(auth.WithClaims(r.Context(), auth.Claims{UserID: uid}))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, ok, err := g.resolve(w, r)
			if err != nil {
				g.cfg.Log.Error("session check failed", map[string]any{"path": r.URL.Path, "error": err})
				next.ServeHTTP(w, r)
				return
			}

			onLogin := strings.HasPrefix(r.URL.Path, LoginPath)
			switch {
			case !ok && !onLogin:
				redirect(w, r, LoginPath)
				return
			case ok && onLogin:
				redirect(w, r, HomePath)
				return
			}

			if ok {
				r = r.WithContext(auth.WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolve devuelve (claims, true, nil) con sesión válida, (_, false, nil) sin sesión,
// y error solo cuando el colaborador no pudo responder.
func (g *gate) resolve(w http.ResponseWriter, r *http.Request) (auth.Claims, bool, error) {
	token := g.cfg.Cookies.AccessToken(r)
	refresh := g.cfg.Cookies.RefreshToken(r)

	if token != "" {
		claims, err := g.cfg.Verifier.Verify(r.Context(), token)
		switch {
		case err == nil:
			return claims, true, nil
		case errors.Is(err, auth.ErrTokenExpired):
			// sigue abajo con el refresh
		case errors.Is(err, auth.ErrUnauthorized):
			g.cfg.Cookies.Clear(w)
			return auth.Claims{}, false, nil
		default:
			return auth.Claims{}, false, err
		}
	}

	if refresh == "" || g.cfg.Provider == nil {
		return auth.Claims{}, false, nil
	}

	s, err := g.cfg.Provider.Refresh(r.Context(), refresh)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			g.cfg.Cookies.Clear(w)
			return auth.Claims{}, false, nil
		}
		return auth.Claims{}, false, err
	}

	g.cfg.Cookies.Set(w, s)
	if g.cfg.Hub != nil {
		g.cfg.Hub.Publish(session.Event{Type: session.EventTokenRefreshed, UserID: s.User.ID, Email: s.User.Email})
	}
	return auth.Claims{UserID: s.User.ID, Email: s.User.Email, AccessToken: s.AccessToken}, true, nil
}

func exempt(p string) bool {
	if p == "/health" || strings.HasPrefix(p, "/swagger/") {
		return true
	}
	_, ok := staticExt[strings.ToLower(path.Ext(p))]
	return ok
}

// redirect conserva el query string. GET/HEAD => 302, el resto => 303 (el navegador pasa a GET).
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.URL.RawQuery != "" {
		to += "?" + r.URL.RawQuery
	}
	status := http.StatusSeeOther
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		status = http.StatusFound
	}
	http.Redirect(w, r, to, status)
}
