// Package dashboard es la vista principal: usuario, mascotas, mascota seleccionada,
// onboarding y recordatorios de vacunas. Una View vive lo que vive su request
// (o su conexión SSE) y escucha cambios de sesión mientras está abierta.
package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"guiapet/internal/domain/roster"
	"guiapet/internal/domain/session"
	"guiapet/internal/domain/vaccines"
	"guiapet/internal/platform/logger"
	"guiapet/internal/ports/auth"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrClosed       = errors.New("view closed")
)

type Deps struct {
	Provider  auth.Provider
	Roster    *roster.Service
	Hub       *session.Hub
	Evaluator vaccines.Evaluator
	Log       logger.Logger
}

type View struct {
	deps Deps

	mu         sync.Mutex
	claims     auth.Claims
	user       auth.User
	roster     roster.Roster
	loaded     bool
	selectedID string
	redirect   string
	stale      bool
	closed     bool

	unsubscribe func()
	changes     chan struct{}
}

func NewView(d Deps) *View {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &View{deps: d, changes: make(chan struct{}, 1)}
}

// Open resuelve el usuario, se suscribe al hub y hace la primera carga del roster.
// selectedID es la mascota que el cliente tenía seleccionada (puede ser "").
func (v *View) Open(ctx context.Context, claims auth.Claims, selectedID string) error {
	if strings.TrimSpace(claims.UserID) == "" {
		return ErrUnauthorized
	}

	user := auth.User{ID: claims.UserID, Email: claims.Email}
	if tok := strings.TrimSpace(claims.AccessToken); tok != "" && v.deps.Provider != nil {
		u, err := v.deps.Provider.GetUser(ctx, tok)
		switch {
		case err == nil:
			user = u
		case errors.Is(err, auth.ErrUnauthorized):
			return ErrUnauthorized
		default:
			v.deps.Log.Error("error loading user", map[string]any{"user_id": claims.UserID, "error": err})
		}
	}

	v.mu.Lock()
	v.claims = claims
	v.user = user
	v.selectedID = strings.TrimSpace(selectedID)
	v.mu.Unlock()

	if v.deps.Hub != nil {
		unsub := v.deps.Hub.Subscribe(v.onSessionEvent)
		v.mu.Lock()
		v.unsubscribe = unsub
		v.mu.Unlock()
	}

	_ = v.Reload(ctx)
	return nil
}

// Close suelta la suscripción al hub. Idempotente.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	unsub := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Reload vuelve a cargar el roster. Si falla la carga de mascotas se conserva el roster anterior.
func (v *View) Reload(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	userID := v.claims.UserID
	v.mu.Unlock()

	if userID == "" {
		return ErrUnauthorized
	}

	r, err := v.deps.Roster.Load(ctx, userID)
	if err != nil {
		// el loader ya logueó; la vista se queda con lo que tenía
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.roster = r
	v.loaded = true
	v.stale = false
	if sel, ok := r.Select(v.selectedID); ok {
		v.selectedID = sel.ID
	} else {
		v.selectedID = ""
	}
	return nil
}

// Select cambia la mascota seleccionada si existe en el roster.
func (v *View) Select(petID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.roster.Pets {
		if p.ID == petID {
			v.selectedID = petID
			return true
		}
	}
	return false
}

// Changes avisa cuando un evento de sesión afectó a la vista.
func (v *View) Changes() <-chan struct{} {
	return v.changes
}

// Stale: hubo un SIGNED_IN para este usuario y falta recargar.
func (v *View) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Redirect es "/login" después de un SIGNED_OUT del usuario de la vista.
func (v *View) Redirect() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.redirect
}

// onSessionEvent corre en la goroutine de Publish: solo marca estado y avisa.
func (v *View) onSessionEvent(e session.Event) {
	v.mu.Lock()
	if v.closed || e.UserID != v.claims.UserID {
		v.mu.Unlock()
		return
	}

	switch e.Type {
	case session.EventSignedIn:
		v.stale = true
	case session.EventSignedOut:
		v.claims = auth.Claims{}
		v.user = auth.User{}
		v.roster = roster.Roster{}
		v.loaded = false
		v.selectedID = ""
		v.redirect = "/login"
	default:
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	select {
	case v.changes <- struct{}{}:
	default:
	}
}
