package authflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"guiapet/internal/middleware"
	"guiapet/internal/platform/validation"
	"guiapet/internal/ports/auth"
)

// RegisterRoutes monta /login/* (con los middlewares dados, p.ej. rate limit) y /logout sin ellos:
// cerrar sesión no puede quedar bloqueado.
func RegisterRoutes(r chi.Router, flow *Flow, cookies *middleware.SessionCookies, loginMiddlewares ...func(http.Handler) http.Handler) {
	r.Route("/login", func(lr chi.Router) {
		lr.Use(loginMiddlewares...)
		lr.Get("/", loginSurfaceHandler(flow, cookies))
		lr.Post("/sign-in", signInHandler(flow, cookies))
		lr.Post("/sign-up", signUpHandler(flow, cookies))
		lr.Get("/oauth/{provider}", oauthHandler(flow, cookies))
		lr.Post("/oauth/{provider}", oauthHandler(flow, cookies))
	})
	r.Post("/logout", signOutHandler(flow, cookies))
}

type loginSurfaceResponse struct {
	Loading           bool     `json:"loading"`
	MinPasswordLength int      `json:"min_password_length"`
	OAuthProviders    []string `json:"oauth_providers"`
}

type outcomeResponse struct {
	Redirect        string            `json:"redirect,omitempty"`
	RedirectAfterMS int64             `json:"redirect_after_ms,omitempty"`
	Message         string            `json:"message,omitempty"`
	Error           string            `json:"error,omitempty"`
	Fields          map[string]string `json:"fields,omitempty"`
	ReloadState     bool              `json:"reload_state"`
	User            *userResponse     `json:"user,omitempty"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

func toOutcomeResponse(o Outcome) outcomeResponse {
	resp := outcomeResponse{
		Redirect:        o.Redirect,
		RedirectAfterMS: o.RedirectAfter.Milliseconds(),
		Message:         o.Message,
		Error:           o.Error,
		ReloadState:     o.ReloadState,
	}
	if o.Session != nil {
		u := o.Session.User
		resp.User = &userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName}
	}
	return resp
}

// loginSurfaceHandler godoc
// @Summary Estado de la pantalla de login / vuelta OAuth
// @Description Indica si hay una acción de auth en curso para este navegador y las reglas del formulario.
// @Description Con ?code= (vuelta OAuth PKCE, que el gate reenvía desde "/") canjea el code, setea las cookies y redirige a "/".
// @Tags auth
// @Produce json
// @Param code query string false "Code de la vuelta OAuth"
// @Param error_description query string false "Error devuelto por el proveedor"
// @Success 200 {object} loginSurfaceResponse
// @Success 302 {string} string "Location: /"
// @Failure 400 {object} outcomeResponse "code inválido o rechazado"
// @Router /login [get]
func loginSurfaceHandler(flow *Flow, cookies *middleware.SessionCookies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cookies.ClientKey(w, r)
		q := r.URL.Query()
		if q.Has("code") || q.Has("error") {
			oauthCallback(w, r, flow, cookies, key)
			return
		}
		writeJSON(w, http.StatusOK, loginSurfaceResponse{
			Loading:           flow.Loading(key),
			MinPasswordLength: MinPasswordLength,
			OAuthProviders:    []string{DefaultOAuthProvider},
		})
	}
}

// signInHandler godoc
// @Summary Iniciar sesión con email y contraseña
// @Description En éxito setea las cookies de sesión y responde redirect "/" con reload_state=true. Los errores del colaborador de auth se devuelven tal cual en "error".
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body SignInInput true "Credenciales"
// @Success 200 {object} outcomeResponse
// @Failure 400 {object} outcomeResponse "validación / credenciales inválidas"
// @Failure 409 {object} outcomeResponse "operation already in progress"
// @Failure 502 {object} outcomeResponse "colaborador de auth no disponible"
// @Router /login/sign-in [post]
func signInHandler(flow *Flow, cookies *middleware.SessionCookies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in SignInInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := flow.SignIn(r.Context(), cookies.ClientKey(w, r), in)
		respond(w, cookies, o, err)
	}
}

// signUpHandler godoc
// @Summary Crear cuenta
// @Description Crea la cuenta, intenta crear el perfil, inicia sesión y responde el mensaje de confirmación con redirect "/" diferido (redirect_after_ms).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body SignUpInput true "Datos de registro; password de 6 caracteres o más"
// @Success 200 {object} outcomeResponse
// @Failure 400 {object} outcomeResponse "validación / cuenta existente"
// @Failure 409 {object} outcomeResponse "operation already in progress"
// @Failure 502 {object} outcomeResponse "colaborador de auth no disponible"
// @Router /login/sign-up [post]
func signUpHandler(flow *Flow, cookies *middleware.SessionCookies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in SignUpInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := flow.SignUp(r.Context(), cookies.ClientKey(w, r), in)
		respond(w, cookies, o, err)
	}
}

// oauthHandler godoc
// @Summary Iniciar login con proveedor externo
// @Description Redirige (303) a la URL de autorización del proveedor. La vuelta es la raíz de la app.
// @Tags auth
// @Produce json
// @Param provider path string true "Proveedor (google)"
// @Success 303 {string} string "Location: URL del proveedor"
// @Failure 400 {object} outcomeResponse "proveedor no soportado"
// @Failure 409 {object} outcomeResponse "operation already in progress"
// @Router /login/oauth/{provider} [get]
// @Router /login/oauth/{provider} [post]
func oauthHandler(flow *Flow, cookies *middleware.SessionCookies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := flow.OAuth(r.Context(), cookies.ClientKey(w, r), chi.URLParam(r, "provider"))
		if err != nil {
			respond(w, cookies, o, err)
			return
		}
		cookies.SetCodeVerifier(w, o.CodeVerifier)
		http.Redirect(w, r, o.Redirect, http.StatusSeeOther)
	}
}

// oauthCallback termina el login OAuth: el verifier se usa una sola vez.
func oauthCallback(w http.ResponseWriter, r *http.Request, flow *Flow, cookies *middleware.SessionCookies, key string) {
	verifier := cookies.CodeVerifier(r)
	cookies.ClearCodeVerifier(w)

	q := r.URL.Query()
	if q.Has("error") {
		msg := strings.TrimSpace(q.Get("error_description"))
		if msg == "" {
			msg = MsgOAuthFailed
		}
		writeJSON(w, http.StatusBadRequest, outcomeResponse{Error: msg})
		return
	}

	o, err := flow.CompleteOAuth(r.Context(), key, q.Get("code"), verifier)
	if err != nil {
		respond(w, cookies, o, err)
		return
	}
	cookies.Set(w, *o.Session)
	http.Redirect(w, r, o.Redirect, http.StatusFound)
}

// signOutHandler godoc
// @Summary Cerrar sesión
// @Description Cierra la sesión en el colaborador (best-effort), borra las cookies y responde redirect "/login".
// @Tags auth
// @Produce json
// @Success 200 {object} outcomeResponse
// @Router /logout [post]
func signOutHandler(flow *Flow, cookies *middleware.SessionCookies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if strings.TrimSpace(claims.AccessToken) == "" {
			claims.AccessToken = cookies.AccessToken(r)
		}

		o := flow.SignOut(r.Context(), claims)
		cookies.Clear(w)
		writeJSON(w, http.StatusOK, toOutcomeResponse(o))
	}
}

func respond(w http.ResponseWriter, cookies *middleware.SessionCookies, o Outcome, err error) {
	if err == nil {
		if o.Session != nil {
			cookies.Set(w, *o.Session)
		}
		writeJSON(w, http.StatusOK, toOutcomeResponse(o))
		return
	}

	resp := toOutcomeResponse(o)
	status := http.StatusBadGateway

	var ve *validation.Error
	var ae *auth.AuthError
	switch {
	case errors.Is(err, ErrInvalidInput):
		status = http.StatusBadRequest
		if errors.As(err, &ve) {
			resp.Fields = ve.Fields
		}
		if resp.Error == "" {
			resp.Error = "invalid input"
		}
	case errors.Is(err, ErrBusy):
		status = http.StatusConflict
	case errors.As(err, &ae):
		status = http.StatusBadRequest
		if ae.Status >= 400 && ae.Status < 500 {
			status = ae.Status
		}
	case errors.Is(err, auth.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
